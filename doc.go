// Package hisaab provides the core types and rules of a personal debt and
// expense ledger. It is designed to be local-first and auditable, ensuring
// users have full control and transparency over the money they lend, borrow
// and spend on behalf of others.
//
// The core functionalities include:
//   - Exact Money: all amounts are decimal values paired with a currency;
//     binary floats never enter any computation.
//   - Settlement Engine: partial payments against a transaction maintain its
//     remaining due and settlement status atomically, including overpayment
//     and payment undo.
//   - Balance Aggregation: pure functions derive per-counterparty net
//     balances, portfolio totals and debtor/creditor rankings from the
//     transaction set.
//   - Audit Trail: every mutation appends an immutable entry with before and
//     after snapshots, queryable by filter, free text or JSONPath.
//   - Reminder Coupling: reminders attached to a transaction are cancelled
//     in the same commit that settles it.
//   - Backup: the whole ledger round-trips through a human-readable JSONL
//     stream.
//
// This package serves as the foundational logic for the `hb` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package hisaab
