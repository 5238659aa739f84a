package outwriter

import (
	"os"

	"github.com/huangsam/mcpcensus/internal/contract"
	"golang.org/x/term"
)

// Column width bounds for free-text table cells.
const (
	minTextColumnWidth = 15
	maxTextColumnWidth = 70
)

// terminalWidth returns the --width override, the detected terminal width or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// GetMaxTextColumnWidth calculates the maximum width of a free-text column
// (URLs, labels) given the width already taken by the other columns of a table.
func GetMaxTextColumnWidth(cfg *contract.Config, fixedWidth int) int {
	// Reserve space for table borders, separators, and padding
	available := terminalWidth(cfg) - fixedWidth - 10
	if available < minTextColumnWidth {
		return minTextColumnWidth
	}
	if available > maxTextColumnWidth {
		return maxTextColumnWidth
	}
	return available
}
