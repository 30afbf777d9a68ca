// Package normalize turns storage-native values into their wire form.
//
// Typed records already serialize correctly through their JSON encodings; this
// package exists for the places that read untyped rows (map scans, raw queries).
package normalize

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimestampLayout is ISO-8601 with a numeric offset, e.g. 2025-11-04T07:40:51.405604+00:00.
const TimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// pgTimestamp matches timestamps as Postgres prints them ("2025-11-04 07:40:51.405604+00")
// and the partially normalized variants of the same value.
var pgTimestamp = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})[ T](\d{2}:\d{2}:\d{2}(?:\.\d+)?)([+-]\d{2})(?::?(\d{2}))?$`)

// Row returns a copy of row with every value normalized.
func Row(row map[string]any) map[string]any {
	if row == nil {
		return nil
	}
	out := make(map[string]any, len(row))
	for key, value := range row {
		out[key] = Value(value)
	}
	return out
}

// Rows normalizes each row in place and returns the slice, never nil.
func Rows(rows []map[string]any) []map[string]any {
	if rows == nil {
		return []map[string]any{}
	}
	for i := range rows {
		rows[i] = Row(rows[i])
	}
	return rows
}

// Value normalizes a single value. Applying it twice is the same as applying it once.
func Value(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return Timestamp(val)
	case []byte:
		return Timestamp(string(val))
	case uuid.UUID:
		return val.String()
	case [16]byte:
		return uuid.UUID(val).String()
	case time.Time:
		return val.Format(TimestampLayout)
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.Format(TimestampLayout)
	case datamodel.Date:
		return val.String()
	case decimal.Decimal:
		return val.InexactFloat64()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return val
	case fmt.Stringer:
		return val.String()
	}

	// Named string types (status and type enums) lose their wrapper.
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}

// Timestamp rewrites a Postgres-style timestamp string to strict ISO-8601:
// the date/time separator becomes "T" and a bare "+00" offset becomes "+00:00".
// Strings that are not timestamps are returned unchanged.
func Timestamp(s string) string {
	m := pgTimestamp.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	minutes := m[4]
	if minutes == "" {
		minutes = "00"
	}
	var b strings.Builder
	b.Grow(len(s) + 3)
	b.WriteString(m[1])
	b.WriteByte('T')
	b.WriteString(m[2])
	b.WriteString(m[3])
	b.WriteByte(':')
	b.WriteString(minutes)
	return b.String()
}
