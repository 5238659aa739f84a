package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateText fuzzes the TruncateText function with random text and widths.
func FuzzTruncateText(f *testing.F) {
	seeds := []struct {
		text  string
		width int
	}{
		{"https://github.com/modelcontextprotocol/servers", 20},
		{"Servers with NPM weekly downloads", 10},
		{"", 5},
		{"héllo wörld", 4},
		{"short", 0},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.width)
	}

	f.Fuzz(func(t *testing.T, text string, width int) {
		if width > 10000 {
			return
		}
		got := TruncateText(text, width)
		if width > 3 && utf8.RuneCountInString(got) > width {
			t.Errorf("TruncateText(%q, %d) = %q exceeds width", text, width, got)
		}
	})
}
