package oai

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Record wraps one database row keyed by column name. Scanned values
// arrive as driver types (strings, []byte, integers, time.Time), so
// accessors normalize on the way out instead of forcing a schema onto
// the row.
type Record struct {
	fields map[string]any
}

func NewRecord(fields map[string]any) Record {
	return Record{fields: fields}
}

// Get returns the column as text. Dates render as YYYY-MM-DD, numbers
// in decimal, missing and NULL columns as the empty string.
func (r Record) Get(name string) string {
	switch v := r.fields[name].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02")
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Value returns the raw column value, for passing back into queries.
func (r Record) Value(name string) any {
	return r.fields[name]
}

// Truthy reports whether the column holds a usable value. NULL, the
// empty string and numeric zero all count as absent.
func (r Record) Truthy(name string) bool {
	switch v := r.fields[name].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case []byte:
		return len(v) > 0
	case bool:
		return v
	case int:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	case time.Time:
		return !v.IsZero()
	default:
		return true
	}
}

// Equal compares the column text against want, case-insensitively when
// fold is set.
func (r Record) Equal(name, want string, fold bool) bool {
	got := r.Get(name)
	if fold {
		return strings.EqualFold(got, want)
	}
	return got == want
}

// Deleted reports whether the row is a tombstone. Deleted rows keep
// their header in responses but carry no metadata.
func (r Record) Deleted() bool {
	return r.Get("status") == "deleted"
}

// Node is a record plus its dependent rows, keyed by relation name.
// The archive's collection records hang items, pids, objects and
// derivatives off each other this way.
type Node struct {
	Record
	Children map[string][]Node
}

// Kids returns the dependent rows under the given relation.
func (n Node) Kids(name string) []Node {
	return n.Children[name]
}
