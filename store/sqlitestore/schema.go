package sqlitestore

// schema defines the SQL statements to create the ledger tables.
//
// Amounts are stored as exact decimal strings next to their currency code;
// they are never stored as floats. Timestamps are RFC 3339 text. Audit rows
// have no update or delete path anywhere in this package.
const schema = `
CREATE TABLE IF NOT EXISTS counterparties (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    favorite INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    direction TEXT NOT NULL,
    type TEXT NOT NULL,
    amount TEXT NOT NULL,              -- exact decimal string
    currency TEXT NOT NULL,
    account_id TEXT NOT NULL,
    category_id TEXT NOT NULL,
    counterparty_id TEXT,              -- NULL means self
    tx_time TEXT NOT NULL,
    for_self INTEGER NOT NULL DEFAULT 0,
    consumer_id TEXT NOT NULL DEFAULT '',
    bill_category TEXT NOT NULL DEFAULT '',
    remaining_due TEXT NOT NULL,       -- exact decimal string, cache of amount - payments
    status TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    soft_deleted INTEGER NOT NULL DEFAULT 0,
    linked_task_id TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_counterparty
    ON transactions(counterparty_id);

CREATE INDEX IF NOT EXISTS idx_transactions_status
    ON transactions(status);

CREATE TABLE IF NOT EXISTS payments (
    id TEXT PRIMARY KEY,
    transaction_id TEXT NOT NULL REFERENCES transactions(id),
    amount TEXT NOT NULL,              -- exact decimal string
    currency TEXT NOT NULL,
    direction TEXT NOT NULL,
    method TEXT NOT NULL DEFAULT '',
    ts TEXT NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    deleted INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_payments_transaction
    ON payments(transaction_id);

CREATE TABLE IF NOT EXISTS reminders (
    id TEXT PRIMARY KEY,
    target_type TEXT NOT NULL,
    target_id TEXT NOT NULL DEFAULT '',
    due_time TEXT NOT NULL,
    repeat_pattern TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    ignored_count INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_reminders_target
    ON reminders(target_type, target_id);

CREATE TABLE IF NOT EXISTS audit_log (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    action TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    entity_id TEXT NOT NULL DEFAULT '',
    old_value TEXT,
    new_value TEXT,
    ts TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_audit_entity
    ON audit_log(entity_type, entity_id);

CREATE INDEX IF NOT EXISTS idx_audit_ts
    ON audit_log(ts);
`
