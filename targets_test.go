package testuri

import (
	"strings"
	"testing"
)

func TestParseTargets(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty yields no targets", "", []string{}},
		{"single", "http://a.test", []string{"http://a.test"}},
		{"ordered", "http://b.test,http://a.test", []string{"http://b.test", "http://a.test"}},
		{"lone comma", ",", []string{"", ""}},
		{"trailing comma", "http://a.test,", []string{"http://a.test", ""}},
		{"spaces kept", " http://a.test ,http://b.test", []string{" http://a.test ", "http://b.test"}},
		{"whitespace only", " ", []string{" "}},
		{"query kept", "http://a.test/?x=1&y=2", []string{"http://a.test/?x=1&y=2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTargets(tt.raw)
			if got == nil {
				t.Fatal("ParseTargets() = nil, want non-nil slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseTargets(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ParseTargets(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestParseTargets_CountMatchesSegments checks that every non-empty input
// yields exactly one target per comma-separated segment.
func TestParseTargets_CountMatchesSegments(t *testing.T) {
	inputs := []string{
		"a",
		"a,b",
		"a,,b",
		",,,",
		"http://x.test:8080/path,https://y.test",
		" , , ",
	}

	for _, raw := range inputs {
		want := strings.Count(raw, ",") + 1
		if got := len(ParseTargets(raw)); got != want {
			t.Errorf("len(ParseTargets(%q)) = %d, want %d", raw, got, want)
		}
	}
}
