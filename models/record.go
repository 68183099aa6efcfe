package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Lineage column names carried through from the bronze layer. The upstream
// union step stamps these on every staged row.
const (
	LineageSourceFile = "_source_file_url"
	LineageIngestedAt = "_ingestion_timestamp"
	LineageSourceHash = "_source_hash"
)

// Record is one wide staged row: source field name to raw value.
// Values are nil, string, int64, float64, bool or time.Time depending on
// the staged column type. A Record coming out of the extractor is treated
// as immutable; cleansing works on a Clone.
type Record map[string]any

// Str returns the field as a trimmed-preserving string, or "" when the
// field is absent or NULL.
func (r Record) Str(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Float returns the field as a float64. The second result reports whether
// a numeric value was present.
func (r Record) Float(field string) (float64, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case []byte:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Int returns the field as an int64.
func (r Record) Int(field string) (int64, bool) {
	f, ok := r.Float(field)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// Date returns the field as a date. String values are parsed as
// YYYY-MM-DD; the second result reports whether a usable date was present.
func (r Record) Date(field string) (time.Time, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			return time.Time{}, false
		}
		return d, true
	case string:
		return parseDate(d)
	case []byte:
		return parseDate(string(d))
	default:
		return time.Time{}, false
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsNull reports whether the field is absent, NULL or an empty string.
func (r Record) IsNull(field string) bool {
	v, ok := r[field]
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s) == ""
	}
	if b, isBytes := v.([]byte); isBytes {
		return strings.TrimSpace(string(b)) == ""
	}
	return false
}

// Set stores a value on the record.
func (r Record) Set(field string, value any) {
	r[field] = value
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Fingerprint returns a deterministic string over all fields, used for
// full-row-equality deduplication.
func (r Record) Fingerprint() string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(r.Str(k))
		b.WriteByte('\x1f')
	}
	return b.String()
}

// FlagSet holds the data-quality flags computed for one record.
// Flags are advisory: they never reject or mutate the row they describe.
type FlagSet map[string]bool

// Set records a flag outcome.
func (f FlagSet) Set(name string, value bool) {
	f[name] = value
}

// Is reports a flag's value; an unset flag reads as false.
func (f FlagSet) Is(name string) bool {
	return f[name]
}

// Raised returns the names of all raised flags in deterministic order.
func (f FlagSet) Raised() []string {
	var names []string
	for name, v := range f {
		if v {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Count returns how many flags are raised.
func (f FlagSet) Count() int {
	n := 0
	for _, v := range f {
		if v {
			n++
		}
	}
	return n
}

// CleanedRecord is one staged row after normalization: the (repaired)
// fields plus parsed sub-fields, together with the record's flag set.
type CleanedRecord struct {
	Fields Record
	Flags  FlagSet
}

// Fingerprint covers fields and raised flags, for full-row deduplication
// of cleaned records.
func (c CleanedRecord) Fingerprint() string {
	return c.Fields.Fingerprint() + "|" + strings.Join(c.Flags.Raised(), ",")
}
