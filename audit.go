package hisaab

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
)

// Action identifies the kind of mutation an audit entry records.
type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
	ActionPartialPayment
	ActionBackup
	ActionRestore
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionPartialPayment:
		return "partial-payment"
	case ActionBackup:
		return "backup"
	case ActionRestore:
		return "restore"
	default:
		return "unknown"
	}
}

// ParseAction parses a string into an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "create":
		return ActionCreate, nil
	case "update":
		return ActionUpdate, nil
	case "delete":
		return ActionDelete, nil
	case "partial-payment":
		return ActionPartialPayment, nil
	case "backup":
		return ActionBackup, nil
	case "restore":
		return ActionRestore, nil
	default:
		return 0, fmt.Errorf("unknown audit action: %q", s)
	}
}

func (a Action) MarshalJSON() ([]byte, error)  { return marshalEnum(a.String()) }
func (a *Action) UnmarshalJSON(b []byte) error { return unmarshalEnum(b, a, ParseAction) }

// Entity type names used in audit entries.
const (
	EntityTransaction  = "transaction"
	EntityPayment      = "payment"
	EntityCounterparty = "counterparty"
	EntityReminder     = "reminder"
	EntityLedger       = "ledger"
)

// AuditEntry is one immutable line of the mutation history. Old and New are
// full-field JSON snapshots of the affected entity at that instant; Old is
// absent for creations, New is absent for deletions. Entries are append-only
// and never edited or reordered after write.
type AuditEntry struct {
	ID         string          `json:"id"`
	Action     Action          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Old        json.RawMessage `json:"old,omitempty"`
	New        json.RawMessage `json:"new,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	Details    string          `json:"details,omitempty"`
}

// Recorder appends audit entries to the store. A failing append is an
// infrastructure error, not a domain one: the mutation it describes has
// already been decided.
type Recorder struct {
	store Store
	clock Clock
}

// NewRecorder creates an audit recorder over the given store.
func NewRecorder(store Store, clock Clock) *Recorder {
	return &Recorder{store: store, clock: clock}
}

// Record snapshots old and new (either may be nil) and appends an entry.
func (r *Recorder) Record(ctx context.Context, action Action, entityType, entityID string, old, new any, details string) (AuditEntry, error) {
	e := AuditEntry{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Timestamp:  r.clock.Now(),
		Details:    details,
	}
	var err error
	if old != nil {
		if e.Old, err = json.Marshal(old); err != nil {
			return AuditEntry{}, fmt.Errorf("cannot snapshot old %s %s: %w", entityType, entityID, err)
		}
	}
	if new != nil {
		if e.New, err = json.Marshal(new); err != nil {
			return AuditEntry{}, fmt.Errorf("cannot snapshot new %s %s: %w", entityType, entityID, err)
		}
	}
	if err := r.store.AppendAudit(ctx, e); err != nil {
		return AuditEntry{}, fmt.Errorf("cannot append audit entry for %s %s: %w", entityType, entityID, err)
	}
	return e, nil
}

// AuditQuery is a read-only projection over the audit log. On top of the
// store-level filter it can match free text and a JSON path against the
// snapshots.
type AuditQuery struct {
	AuditFilter
	Text string // substring match over details and snapshots
	Path string // jsonpath that must resolve in old or new snapshot
}

// QueryAudit scans the audit log and returns entries matching the query, in
// append order.
func QueryAudit(ctx context.Context, store Store, q AuditQuery) ([]AuditEntry, error) {
	entries, err := store.ListAudit(ctx, q.AuditFilter)
	if err != nil {
		return nil, fmt.Errorf("cannot list audit entries: %w", err)
	}
	if q.Text == "" && q.Path == "" {
		return entries, nil
	}
	var out []AuditEntry
	for _, e := range entries {
		if q.Text != "" && !auditContains(e, q.Text) {
			continue
		}
		if q.Path != "" {
			ok, err := snapshotMatches(e, q.Path)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func auditContains(e AuditEntry, text string) bool {
	if strings.Contains(e.Details, text) || strings.Contains(e.EntityID, text) {
		return true
	}
	return strings.Contains(string(e.Old), text) || strings.Contains(string(e.New), text)
}

// snapshotMatches reports whether the jsonpath resolves to a non-empty value
// in either snapshot of the entry.
func snapshotMatches(e AuditEntry, path string) (bool, error) {
	for _, raw := range []json.RawMessage{e.Old, e.New} {
		if len(raw) == 0 {
			continue
		}
		var jobj any
		if err := json.Unmarshal(raw, &jobj); err != nil {
			return false, fmt.Errorf("corrupt snapshot in audit entry %s: %w", e.ID, err)
		}
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			// path does not resolve in this snapshot, try the other one.
			continue
		}
		// because jsonpath is never clear about whether it returns a list of
		// one answer or a single answer, unwrap a single-element list.
		if jlist, ok := jval.([]any); ok {
			if len(jlist) == 0 {
				continue
			}
			jval = jlist[0]
		}
		if jval != nil {
			return true, nil
		}
	}
	return false, nil
}
