package utils

import (
	"strings"
	"testing"
)

func TestCleanMarkdown(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Revenue grew 12%.", "Revenue grew 12%."},
		{"markdown fence stripped", "```markdown\n# Summary\n```", "# Summary"},
		{"generic fence stripped", "```\ncontent\n```", "content"},
		{"whitespace trimmed", "  padded  ", "padded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanMarkdown(tc.input); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMarkdownToPlain(t *testing.T) {
	input := "# Summary\n\nRevenue grew **12%** over the *prior* year.\n\n- point one\n- point two"
	got := MarkdownToPlain(input)

	for _, marker := range []string{"#", "**", "*", "-"} {
		if strings.Contains(got, marker) {
			t.Errorf("output still contains markdown marker %q: %q", marker, got)
		}
	}
	for _, text := range []string{"Summary", "Revenue grew 12%", "point one", "point two"} {
		if !strings.Contains(got, text) {
			t.Errorf("output missing %q: %q", text, got)
		}
	}
}
