package services

import "testing"

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"other language tag", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"single line json fence", "```json{\"a\": 1}```", `{"a": 1}`},
		{"fence with leading whitespace", "  ```json\n{\"a\": 1}\n```  ", `{"a": 1}`},
		{"content on fence line kept", "```{\"a\": 1}\n{\"b\": 2}```", "{\"a\": 1}\n{\"b\": 2}"},
		{"opening fence only", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"empty string", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.in); got != tc.expected {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.expected)
			}
		})
	}
}
