package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hisaab-app/hisaab"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same queries run
// inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	q querier
}

const timeLayout = time.RFC3339Nano

func encodeTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt timestamp %q: %w", s, err)
	}
	return t, nil
}

// --- transactions ---

const transactionColumns = `id, direction, type, amount, currency, account_id, category_id,
	counterparty_id, tx_time, for_self, consumer_id, bill_category,
	remaining_due, status, updated_at, soft_deleted, linked_task_id`

func (s queries) PutTransaction(ctx context.Context, tx hisaab.Transaction) error {
	var counterparty sql.NullString
	if tx.CounterpartyID != "" {
		counterparty = sql.NullString{String: tx.CounterpartyID, Valid: true}
	}
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			direction=excluded.direction, type=excluded.type,
			amount=excluded.amount, currency=excluded.currency,
			account_id=excluded.account_id, category_id=excluded.category_id,
			counterparty_id=excluded.counterparty_id, tx_time=excluded.tx_time,
			for_self=excluded.for_self, consumer_id=excluded.consumer_id,
			bill_category=excluded.bill_category,
			remaining_due=excluded.remaining_due, status=excluded.status,
			updated_at=excluded.updated_at, soft_deleted=excluded.soft_deleted,
			linked_task_id=excluded.linked_task_id`,
		tx.ID, tx.Direction.String(), tx.Type.String(),
		tx.Amount.Decimal().String(), tx.Amount.Currency(),
		tx.AccountID, tx.CategoryID, counterparty, encodeTime(tx.Time),
		tx.ForSelf, tx.ConsumerID, tx.BillCategory,
		tx.RemainingDue.Decimal().String(), tx.Status.String(),
		encodeTime(tx.UpdatedAt), tx.SoftDeleted, tx.LinkedTaskID)
	if err != nil {
		return fmt.Errorf("failed to upsert transaction %s: %w", tx.ID, err)
	}
	return nil
}

func scanTransaction(scan func(dest ...any) error) (hisaab.Transaction, error) {
	var (
		tx                          hisaab.Transaction
		direction, typ, status      string
		amount, currency, remaining string
		counterparty                sql.NullString
		txTime, updatedAt           string
	)
	err := scan(&tx.ID, &direction, &typ, &amount, &currency, &tx.AccountID,
		&tx.CategoryID, &counterparty, &txTime, &tx.ForSelf, &tx.ConsumerID,
		&tx.BillCategory, &remaining, &status, &updatedAt, &tx.SoftDeleted,
		&tx.LinkedTaskID)
	if err != nil {
		return hisaab.Transaction{}, err
	}
	if tx.Direction, err = hisaab.ParseDirection(direction); err != nil {
		return hisaab.Transaction{}, err
	}
	if tx.Type, err = hisaab.ParseTransactionType(typ); err != nil {
		return hisaab.Transaction{}, err
	}
	if tx.Status, err = hisaab.ParseStatus(status); err != nil {
		return hisaab.Transaction{}, err
	}
	if tx.Amount, err = hisaab.ParseMoney(amount, currency); err != nil {
		return hisaab.Transaction{}, err
	}
	if tx.RemainingDue, err = hisaab.ParseMoney(remaining, currency); err != nil {
		return hisaab.Transaction{}, err
	}
	tx.CounterpartyID = counterparty.String
	if tx.Time, err = decodeTime(txTime); err != nil {
		return hisaab.Transaction{}, err
	}
	if tx.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return hisaab.Transaction{}, err
	}
	return tx, nil
}

func (s queries) GetTransaction(ctx context.Context, id string) (hisaab.Transaction, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row.Scan)
	if err == sql.ErrNoRows {
		return hisaab.Transaction{}, fmt.Errorf("transaction %q: %w", id, hisaab.ErrNotFound)
	}
	if err != nil {
		return hisaab.Transaction{}, fmt.Errorf("failed to read transaction %s: %w", id, err)
	}
	return tx, nil
}

func (s queries) ListTransactions(ctx context.Context, f hisaab.TransactionFilter) ([]hisaab.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	var args []any
	if !f.IncludeDeleted {
		query += ` AND soft_deleted = 0`
	}
	if f.CounterpartyID != "" {
		query += ` AND counterparty_id = ?`
		args = append(args, f.CounterpartyID)
	}
	query += ` ORDER BY rowid`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var result []hisaab.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

// --- payments ---

const paymentColumns = `id, transaction_id, amount, currency, direction, method, ts, notes, deleted`

func (s queries) PutPayment(ctx context.Context, p hisaab.PartialPayment) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			transaction_id=excluded.transaction_id, amount=excluded.amount,
			currency=excluded.currency, direction=excluded.direction,
			method=excluded.method, ts=excluded.ts, notes=excluded.notes,
			deleted=excluded.deleted`,
		p.ID, p.TransactionID, p.Amount.Decimal().String(), p.Amount.Currency(),
		p.Direction.String(), p.Method, encodeTime(p.Timestamp), p.Notes, p.Deleted)
	if err != nil {
		return fmt.Errorf("failed to upsert payment %s: %w", p.ID, err)
	}
	return nil
}

func scanPayment(scan func(dest ...any) error) (hisaab.PartialPayment, error) {
	var (
		p                         hisaab.PartialPayment
		amount, currency, dir, ts string
	)
	err := scan(&p.ID, &p.TransactionID, &amount, &currency, &dir, &p.Method, &ts, &p.Notes, &p.Deleted)
	if err != nil {
		return hisaab.PartialPayment{}, err
	}
	if p.Amount, err = hisaab.ParseMoney(amount, currency); err != nil {
		return hisaab.PartialPayment{}, err
	}
	if p.Direction, err = hisaab.ParsePaymentDirection(dir); err != nil {
		return hisaab.PartialPayment{}, err
	}
	if p.Timestamp, err = decodeTime(ts); err != nil {
		return hisaab.PartialPayment{}, err
	}
	return p, nil
}

func (s queries) GetPayment(ctx context.Context, id string) (hisaab.PartialPayment, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id)
	p, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return hisaab.PartialPayment{}, fmt.Errorf("payment %q: %w", id, hisaab.ErrNotFound)
	}
	if err != nil {
		return hisaab.PartialPayment{}, fmt.Errorf("failed to read payment %s: %w", id, err)
	}
	return p, nil
}

func (s queries) ListPayments(ctx context.Context, f hisaab.PaymentFilter) ([]hisaab.PartialPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	var args []any
	if !f.IncludeDeleted {
		query += ` AND deleted = 0`
	}
	if f.TransactionID != "" {
		query += ` AND transaction_id = ?`
		args = append(args, f.TransactionID)
	}
	query += ` ORDER BY rowid`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var result []hisaab.PartialPayment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// --- counterparties ---

func (s queries) PutCounterparty(ctx context.Context, c hisaab.Counterparty) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO counterparties (id, display_name, phone, notes, favorite, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			display_name=excluded.display_name, phone=excluded.phone,
			notes=excluded.notes, favorite=excluded.favorite,
			created_at=excluded.created_at`,
		c.ID, c.DisplayName, c.Phone, c.Notes, c.Favorite, encodeTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert counterparty %s: %w", c.ID, err)
	}
	return nil
}

func scanCounterparty(scan func(dest ...any) error) (hisaab.Counterparty, error) {
	var (
		c         hisaab.Counterparty
		createdAt string
	)
	err := scan(&c.ID, &c.DisplayName, &c.Phone, &c.Notes, &c.Favorite, &createdAt)
	if err != nil {
		return hisaab.Counterparty{}, err
	}
	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return hisaab.Counterparty{}, err
	}
	return c, nil
}

func (s queries) GetCounterparty(ctx context.Context, id string) (hisaab.Counterparty, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT id, display_name, phone, notes, favorite, created_at FROM counterparties WHERE id = ?`, id)
	c, err := scanCounterparty(row.Scan)
	if err == sql.ErrNoRows {
		return hisaab.Counterparty{}, fmt.Errorf("counterparty %q: %w", id, hisaab.ErrNotFound)
	}
	if err != nil {
		return hisaab.Counterparty{}, fmt.Errorf("failed to read counterparty %s: %w", id, err)
	}
	return c, nil
}

func (s queries) ListCounterparties(ctx context.Context) ([]hisaab.Counterparty, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, display_name, phone, notes, favorite, created_at FROM counterparties ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list counterparties: %w", err)
	}
	defer rows.Close()

	var result []hisaab.Counterparty
	for rows.Next() {
		c, err := scanCounterparty(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan counterparty: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// --- reminders ---

func (s queries) PutReminder(ctx context.Context, r hisaab.Reminder) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO reminders (id, target_type, target_id, due_time, repeat_pattern, status, ignored_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			target_type=excluded.target_type, target_id=excluded.target_id,
			due_time=excluded.due_time, repeat_pattern=excluded.repeat_pattern,
			status=excluded.status, ignored_count=excluded.ignored_count`,
		r.ID, r.TargetType.String(), r.TargetID, encodeTime(r.DueTime),
		r.RepeatPattern, r.Status.String(), r.IgnoredCount)
	if err != nil {
		return fmt.Errorf("failed to upsert reminder %s: %w", r.ID, err)
	}
	return nil
}

func scanReminder(scan func(dest ...any) error) (hisaab.Reminder, error) {
	var (
		r                   hisaab.Reminder
		target, due, status string
	)
	err := scan(&r.ID, &target, &r.TargetID, &due, &r.RepeatPattern, &status, &r.IgnoredCount)
	if err != nil {
		return hisaab.Reminder{}, err
	}
	if r.TargetType, err = hisaab.ParseReminderTarget(target); err != nil {
		return hisaab.Reminder{}, err
	}
	if r.Status, err = hisaab.ParseReminderStatus(status); err != nil {
		return hisaab.Reminder{}, err
	}
	if r.DueTime, err = decodeTime(due); err != nil {
		return hisaab.Reminder{}, err
	}
	return r, nil
}

func (s queries) GetReminder(ctx context.Context, id string) (hisaab.Reminder, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT id, target_type, target_id, due_time, repeat_pattern, status, ignored_count
		 FROM reminders WHERE id = ?`, id)
	r, err := scanReminder(row.Scan)
	if err == sql.ErrNoRows {
		return hisaab.Reminder{}, fmt.Errorf("reminder %q: %w", id, hisaab.ErrNotFound)
	}
	if err != nil {
		return hisaab.Reminder{}, fmt.Errorf("failed to read reminder %s: %w", id, err)
	}
	return r, nil
}

func (s queries) ListReminders(ctx context.Context, f hisaab.ReminderFilter) ([]hisaab.Reminder, error) {
	// Filters are applied in memory so every store implementation shares the
	// exact same filter semantics.
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, target_type, target_id, due_time, repeat_pattern, status, ignored_count
		 FROM reminders ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	var result []hisaab.Reminder
	for rows.Next() {
		r, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		if f.Matches(r) {
			result = append(result, r)
		}
	}
	return result, rows.Err()
}

// --- audit log ---

func (s queries) AppendAudit(ctx context.Context, e hisaab.AuditEntry) error {
	var oldVal, newVal sql.NullString
	if len(e.Old) > 0 {
		oldVal = sql.NullString{String: string(e.Old), Valid: true}
	}
	if len(e.New) > 0 {
		newVal = sql.NullString{String: string(e.New), Valid: true}
	}
	// Plain INSERT: the audit log is append-only, a conflicting id is a bug.
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO audit_log (id, action, entity_type, entity_id, old_value, new_value, ts, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Action.String(), e.EntityType, e.EntityID, oldVal, newVal,
		encodeTime(e.Timestamp), e.Details)
	if err != nil {
		return fmt.Errorf("failed to append audit entry %s: %w", e.ID, err)
	}
	return nil
}

func (s queries) ListAudit(ctx context.Context, f hisaab.AuditFilter) ([]hisaab.AuditEntry, error) {
	query := `SELECT id, action, entity_type, entity_id, old_value, new_value, ts, details
		FROM audit_log WHERE 1=1`
	var args []any
	if f.Action != "" {
		query += ` AND action = ?`
		args = append(args, f.Action)
	}
	if f.EntityType != "" {
		query += ` AND entity_type = ?`
		args = append(args, f.EntityType)
	}
	if f.EntityID != "" {
		query += ` AND entity_id = ?`
		args = append(args, f.EntityID)
	}
	if !f.From.IsZero() {
		query += ` AND ts >= ?`
		args = append(args, encodeTime(f.From))
	}
	if !f.To.IsZero() {
		query += ` AND ts <= ?`
		args = append(args, encodeTime(f.To))
	}
	query += ` ORDER BY seq`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var result []hisaab.AuditEntry
	for rows.Next() {
		var (
			e           hisaab.AuditEntry
			action, ts  string
			old, newVal sql.NullString
		)
		if err := rows.Scan(&e.ID, &action, &e.EntityType, &e.EntityID, &old, &newVal, &ts, &e.Details); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if e.Action, err = hisaab.ParseAction(action); err != nil {
			return nil, err
		}
		if e.Timestamp, err = decodeTime(ts); err != nil {
			return nil, err
		}
		if old.Valid {
			e.Old = json.RawMessage(old.String)
		}
		if newVal.Valid {
			e.New = json.RawMessage(newVal.String)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
