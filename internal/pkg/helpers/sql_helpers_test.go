package helpers

import "testing"

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
		{"%_%", `\%\_\%`},
	}
	for _, tc := range cases {
		if got := EscapeLike(tc.in); got != tc.want {
			t.Errorf("EscapeLike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainsPattern(t *testing.T) {
	if got := ContainsPattern("  CS10% "); got != `%CS10\%%` {
		t.Fatalf("ContainsPattern trimmed+escaped = %q", got)
	}
}
