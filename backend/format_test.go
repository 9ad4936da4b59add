package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRecordsOrdersKeysAndNumbersRows(t *testing.T) {
	got := formatRecords([]map[string]any{
		{"name": "Priya Sharma", "role": "Backend Engineer", "id": int64(1)},
		{"name": "Marcus Webb", "role": "Engineering Manager", "id": int64(2)},
	}, 50)

	assert.Equal(t,
		"1. id: 1, name: Priya Sharma, role: Backend Engineer\n"+
			"2. id: 2, name: Marcus Webb, role: Engineering Manager",
		got)
}

func TestFormatRecordsCapsRows(t *testing.T) {
	records := make([]map[string]any, 5)
	for i := range records {
		records[i] = map[string]any{"n": i}
	}
	got := formatRecords(records, 2)
	assert.Contains(t, got, "1. n: 0")
	assert.Contains(t, got, "2. n: 1")
	assert.NotContains(t, got, "n: 2")
	assert.Contains(t, got, "showing first 2 of 5 records")
}

func TestFormatValueNestedStructures(t *testing.T) {
	rec := map[string]any{
		"title":   "Retrieval-Augmented Generation at Scale",
		"authors": []any{"Wei Zhang", "Sofia Marques"},
		"year":    nil,
		"pub":     map[string]any{"journal": "JMLR", "type": "Journal"},
	}
	got := formatRecord(rec)
	assert.Equal(t,
		"authors: [Wei Zhang, Sofia Marques], pub: journal: JMLR, type: Journal, title: Retrieval-Augmented Generation at Scale, year: null",
		got)
}
