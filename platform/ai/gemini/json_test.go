package gemini

import "testing"

func TestRepairJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"verdict":"real"}`, `{"verdict":"real"}`},
		{"json fence", "```json\n{\"verdict\":\"fake\"}\n```", `{"verdict":"fake"}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around object", "Sure, here is the analysis: {\"a\":1} hope that helps", `{"a":1}`},
		{"nested braces", `{"a":{"b":2}}`, `{"a":{"b":2}}`},
		{"no object", "I cannot analyze this content.", ""},
		{"empty", "", ""},
		{"closing before opening", "} then {", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RepairJSON(tc.raw); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
