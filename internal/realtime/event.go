// Package realtime delivers row change events per table to subscribers, in publish order.
package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	Insert EventType = "INSERT"
	Update EventType = "UPDATE"
	Delete EventType = "DELETE"
)

// Row is a record as its JSON representation, keyed by column name.
type Row map[string]interface{}

// ID returns the primary key of the row as a string.
func (r Row) ID() string {
	if r == nil {
		return ""
	}
	return fmt.Sprint(r["id"])
}

// Event is one committed change to a table.
type Event struct {
	Type            EventType `json:"eventType"`
	Table           string    `json:"table"`
	New             Row       `json:"new,omitempty"`
	Old             Row       `json:"old,omitempty"`
	CommitTimestamp time.Time `json:"commit_timestamp"`
}

// Record returns the row the event is about: the new row, or the old one for deletes.
func (e Event) Record() Row {
	if e.Type == Delete {
		return e.Old
	}
	return e.New
}

// NewEvent converts model values into an Event. Either of newRow and oldRow may be nil.
func NewEvent(eventType EventType, table string, newRow, oldRow interface{}) (Event, error) {
	ev := Event{Type: eventType, Table: table, CommitTimestamp: time.Now().UTC()}
	var err error
	if ev.New, err = toRow(newRow); err != nil {
		return Event{}, fmt.Errorf("encode new row: %w", err)
	}
	if ev.Old, err = toRow(oldRow); err != nil {
		return Event{}, fmt.Errorf("encode old row: %w", err)
	}
	return ev, nil
}

func toRow(v interface{}) (Row, error) {
	if v == nil {
		return nil, nil
	}
	if row, ok := v.(Row); ok {
		return row, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var row Row
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, err
	}
	return row, nil
}

// FilterOp compares one column with a literal value.
type FilterOp string

const (
	OpEq  FilterOp = "eq"
	OpNeq FilterOp = "neq"
)

var ErrInvalidFilter = errors.New("invalid filter")

// Filter restricts a subscription to rows whose column matches. The zero Filter matches everything.
type Filter struct {
	Column string
	Op     FilterOp
	Value  string
}

// ParseFilter reads "column=op.value" (e.g. "provider_id=eq.<uuid>") or the
// shorter "column:op:value". An empty string yields the match-all filter.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return Filter{}, nil
	}
	var column, op, value string
	if c, rest, ok := strings.Cut(s, "="); ok {
		o, v, ok := strings.Cut(rest, ".")
		if !ok {
			return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
		}
		column, op, value = c, o, v
	} else {
		parts := strings.SplitN(s, ":", 3)
		if len(parts) != 3 {
			return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
		}
		column, op, value = parts[0], parts[1], parts[2]
	}
	if column == "" {
		return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	switch FilterOp(op) {
	case OpEq, OpNeq:
	default:
		return Filter{}, fmt.Errorf("%w: unsupported operator %q", ErrInvalidFilter, op)
	}
	return Filter{Column: column, Op: FilterOp(op), Value: value}, nil
}

func (f Filter) String() string {
	if f.Column == "" {
		return ""
	}
	return f.Column + "=" + string(f.Op) + "." + f.Value
}

// Match reports whether ev passes the filter.
func (f Filter) Match(ev Event) bool {
	if f.Column == "" {
		return true
	}
	row := ev.Record()
	v, present := row[f.Column]
	equal := present && v != nil && fmt.Sprint(v) == f.Value
	if f.Op == OpNeq {
		return !equal
	}
	return equal
}

// Apply patches a local list with one event, matching rows by id: inserts append,
// updates replace matching rows and deletes remove them. An update for a row the
// list does not hold is ignored. The input slice is not modified.
func Apply(rows []Row, ev Event) []Row {
	out := make([]Row, 0, len(rows)+1)
	switch ev.Type {
	case Insert:
		out = append(out, rows...)
		return append(out, ev.New)
	case Update:
		id := ev.New.ID()
		for _, r := range rows {
			if r.ID() == id {
				out = append(out, ev.New)
				continue
			}
			out = append(out, r)
		}
		return out
	case Delete:
		id := ev.Old.ID()
		for _, r := range rows {
			if r.ID() != id {
				out = append(out, r)
			}
		}
		return out
	}
	return append(out, rows...)
}
