package wire

import (
	"strconv"
	"strings"
	"time"
)

// Epoch is the sentinel for vendor date fields that fail to parse.
var Epoch = time.Unix(0, 0).UTC()

// Str reads a string field, resolving the #text/scalar ambiguity, or def when
// empty/absent.
func Str(n map[string]any, key, def string) string {
	if s := strings.TrimSpace(Text(n[key])); s != "" {
		return s
	}
	return def
}

// OptStr reads an optional string field; nil when empty/absent.
func OptStr(n map[string]any, key string) *string {
	if s := strings.TrimSpace(Text(n[key])); s != "" {
		return &s
	}
	return nil
}

// Int reads an integer field (numeric or numeric-string), or def.
func Int(n map[string]any, key string, def int) int {
	return int(Int64(n, key, int64(def)))
}

// Int64 reads an int64 field (numeric or numeric-string), or def.
func Int64(n map[string]any, key string, def int64) int64 {
	switch v := n[key].(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	}
	s := strings.TrimSpace(Text(n[key]))
	if s == "" {
		return def
	}
	if x, err := strconv.ParseInt(s, 10, 64); err == nil {
		return x
	}
	// some vendors send "3.0" for counts
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return def
}

// Float reads a float field (numeric or numeric-string, comma decimals
// tolerated), or def.
func Float(n map[string]any, key string, def float64) float64 {
	switch v := n[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	s := strings.TrimSpace(strings.ReplaceAll(Text(n[key]), ",", "."))
	if s == "" {
		return def
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return def
}

// FloatVal coerces a bare scalar to float64, or def.
func FloatVal(v any, def float64) float64 {
	return Float(map[string]any{"v": v}, "v", def)
}

// Bool reads a boolean field, or def when absent. XML flags are numeric-truthy:
// any non-zero number counts as true, not just "1".
func Bool(n map[string]any, key string, def bool) bool {
	switch v := n[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case int:
		return v != 0
	case nil:
	default:
	}
	s := strings.ToLower(strings.TrimSpace(Text(n[key])))
	if s == "" {
		return def
	}
	switch s {
	case "true", "yes", "y":
		return true
	case "false", "no", "n":
		return false
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return x != 0
	}
	return def
}

// Time reads a timestamp in layout, falling back to def (usually Epoch) when
// absent or malformed.
func Time(n map[string]any, key, layout string, def time.Time) time.Time {
	s := strings.TrimSpace(Text(n[key]))
	if s == "" {
		return def
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return def
	}
	return t
}

// OptTime reads an optional timestamp; nil when absent or malformed. Used for
// fields that are legitimately nullable on the wire (the calendar-changes
// anchor time of an empty change set).
func OptTime(n map[string]any, key, layout string) *time.Time {
	s := strings.TrimSpace(Text(n[key]))
	if s == "" {
		return nil
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil
	}
	return &t
}
