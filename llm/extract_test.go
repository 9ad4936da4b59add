package llm

import "testing"

func TestExtractBetweenMarkers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "plain body",
			text: "reasoning...\nSTART\nSELECT 1;\nEND\n",
			want: "SELECT 1;",
			ok:   true,
		},
		{
			name: "uses last end marker",
			text: "START\nfirst END trailing END",
			want: "first END trailing",
			ok:   true,
		},
		{
			name: "missing start",
			text: "no markers here END",
			ok:   false,
		},
		{
			name: "missing end",
			text: "START but never closed",
			ok:   false,
		},
		{
			name: "markers out of order",
			text: "END before START",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBetweenMarkers(tt.text, "START", "END")
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{
			name: "bare object",
			text: `{"data_source": "relational"}`,
			want: `{"data_source": "relational"}`,
			ok:   true,
		},
		{
			name: "object embedded in prose",
			text: `Sure! Here is the decision: {"data_source": "graph"} Hope that helps.`,
			want: `{"data_source": "graph"}`,
			ok:   true,
		},
		{
			name: "nested object",
			text: `{"filter": {"year": {"$gt": 2020}}}`,
			want: `{"filter": {"year": {"$gt": 2020}}}`,
			ok:   true,
		},
		{
			name: "braces inside strings",
			text: `{"description": "uses {braces} and \"quotes\""}`,
			want: `{"description": "uses {braces} and \"quotes\""}`,
			ok:   true,
		},
		{
			name: "skips invalid candidate, takes next valid",
			text: `{broken} then {"ok": true}`,
			want: `{"ok": true}`,
			ok:   true,
		},
		{
			name: "no object at all",
			text: "just text",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tt.text)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanPayload(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "  SELECT 1;  ", want: "SELECT 1;"},
		{name: "fenced with language", in: "```sql\nSELECT 1;\n```", want: "SELECT 1;"},
		{name: "fenced without language", in: "```\n{\"a\": 1}\n```", want: "{\"a\": 1}"},
		{name: "fence on same line as payload", in: "```{\"a\": 1}```", want: "{\"a\": 1}"},
		{name: "empty", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanPayload(tt.in); got != tt.want {
				t.Errorf("CleanPayload(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
