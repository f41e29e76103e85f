package hisaab

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// this file contains functions to handle the backup/restore format.
// It should remain human readable, single file and easy to merge back into
// a store.
//
// The format is JSONL: each line is a JSON object with a "kind" property
// naming the entity type, followed by the entity's own fields.

const (
	kindCounterparty = "counterparty"
	kindTransaction  = "transaction"
	kindPayment      = "payment"
	kindReminder     = "reminder"
	kindAudit        = "audit"
)

func writeRecord(w io.Writer, kind string, entity any) error {
	var jw jsonObjectWriter
	jw.Append("kind", kind)
	jw.EmbedFrom(entity)
	b, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot encode %s record: %w", kind, err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("cannot write %s record: %w", kind, err)
	}
	return nil
}

// ExportLedger writes the complete ledger to w, soft-deleted rows included,
// and appends one backup audit entry describing the export.
func (e *Engine) ExportLedger(ctx context.Context, w io.Writer) error {
	var count int

	counterparties, err := e.store.ListCounterparties(ctx)
	if err != nil {
		return fmt.Errorf("cannot list counterparties: %w", err)
	}
	for _, c := range counterparties {
		if err := writeRecord(w, kindCounterparty, c); err != nil {
			return err
		}
		count++
	}

	txs, err := e.store.ListTransactions(ctx, TransactionFilter{IncludeDeleted: true})
	if err != nil {
		return fmt.Errorf("cannot list transactions: %w", err)
	}
	for _, t := range txs {
		if err := writeRecord(w, kindTransaction, t); err != nil {
			return err
		}
		count++
	}

	payments, err := e.store.ListPayments(ctx, PaymentFilter{IncludeDeleted: true})
	if err != nil {
		return fmt.Errorf("cannot list payments: %w", err)
	}
	for _, p := range payments {
		if err := writeRecord(w, kindPayment, p); err != nil {
			return err
		}
		count++
	}

	reminders, err := e.store.ListReminders(ctx, ReminderFilter{})
	if err != nil {
		return fmt.Errorf("cannot list reminders: %w", err)
	}
	for _, r := range reminders {
		if err := writeRecord(w, kindReminder, r); err != nil {
			return err
		}
		count++
	}

	entries, err := e.store.ListAudit(ctx, AuditFilter{})
	if err != nil {
		return fmt.Errorf("cannot list audit entries: %w", err)
	}
	for _, a := range entries {
		if err := writeRecord(w, kindAudit, a); err != nil {
			return err
		}
		count++
	}

	rec := NewRecorder(e.store, e.clock)
	_, err = rec.Record(ctx, ActionBackup, EntityLedger, "", nil, nil, fmt.Sprintf("exported %d records", count))
	return err
}

// ImportLedger reads a backup produced by ExportLedger and loads it into the
// store in one commit, then appends one restore audit entry. Existing rows
// with the same ids are overwritten.
func (e *Engine) ImportLedger(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var count int
	err := e.store.InTx(ctx, func(s Store) error {
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(strings.TrimSpace(string(line))) == 0 {
				continue
			}

			var identifier struct {
				Kind string `json:"kind"`
			}
			if err := json.Unmarshal(line, &identifier); err != nil {
				return fmt.Errorf("cannot identify record in line %q: %w", string(line), err)
			}

			var err error
			switch identifier.Kind {
			case kindCounterparty:
				var c Counterparty
				if err = json.Unmarshal(line, &c); err == nil {
					err = s.PutCounterparty(ctx, c)
				}
			case kindTransaction:
				var t Transaction
				if err = json.Unmarshal(line, &t); err == nil {
					err = s.PutTransaction(ctx, t)
				}
			case kindPayment:
				var p PartialPayment
				if err = json.Unmarshal(line, &p); err == nil {
					err = s.PutPayment(ctx, p)
				}
			case kindReminder:
				var rem Reminder
				if err = json.Unmarshal(line, &rem); err == nil {
					err = s.PutReminder(ctx, rem)
				}
			case kindAudit:
				var a AuditEntry
				if err = json.Unmarshal(line, &a); err == nil {
					err = s.AppendAudit(ctx, a)
				}
			default:
				return fmt.Errorf("unknown record kind %q in line %q", identifier.Kind, string(line))
			}
			if err != nil {
				return fmt.Errorf("cannot restore %s record: %w", identifier.Kind, err)
			}
			count++
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("cannot read backup: %w", err)
		}
		rec := NewRecorder(s, e.clock)
		_, err := rec.Record(ctx, ActionRestore, EntityLedger, "", nil, nil, fmt.Sprintf("restored %d records", count))
		return err
	})
	if err != nil {
		return err
	}
	e.log.Info().Int("records", count).Msg("ledger restored")
	return nil
}
