package backend

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// formatRecords renders a slice of records as one numbered line each, capped
// at maxRows. The cap keeps a runaway query from flooding the answer context;
// the trailing note tells the model the set was cut.
func formatRecords(records []map[string]any, maxRows int) string {
	total := len(records)
	if total > maxRows {
		records = records[:maxRows]
	}
	var b strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&b, "%d. %s\n", i+1, formatRecord(rec))
	}
	if total > maxRows {
		fmt.Fprintf(&b, "(showing first %d of %d records)\n", maxRows, total)
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatRecord renders one record as "key: value" pairs in stable key order.
func formatRecord(rec map[string]any) string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, formatValue(rec[k])))
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case []byte:
		return string(val)
	case map[string]any:
		return formatRecord(val)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		if raw, err := json.Marshal(val); err == nil {
			return string(raw)
		}
		return fmt.Sprintf("%v", val)
	}
}
