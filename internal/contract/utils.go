package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/huangsam/mcpcensus/schema"
)

// Completeness label constants.
const (
	HighValue   = "High"   // High value
	MediumValue = "Medium" // Medium value
	LowValue    = "Low"    // Low value
)

// Color variables for console output.
var (
	HighColor   = color.New(color.FgGreen)            // HighColor marks well-populated fields.
	MediumColor = color.New(color.FgYellow)           // MediumColor marks partially populated fields.
	LowColor    = color.New(color.FgRed)              // LowColor marks sparse fields.
	HeaderColor = color.New(color.FgCyan, color.Bold) // HeaderColor marks section headers.
)

// tierColors maps health tiers to their console colors.
var tierColors = map[schema.HealthTier]*color.Color{
	schema.ExcellentTier: color.New(color.FgGreen, color.Bold),
	schema.GoodTier:      color.New(color.FgGreen),
	schema.MediumTier:    color.New(color.FgYellow),
	schema.PoorTier:      color.New(color.FgRed, color.Bold),
	schema.UnknownTier:   color.New(color.FgHiBlack),
}

// GetColorPercentage returns a colored percentage for console output (table).
// It uses schema.GetCompletenessLabel to pick the color.
func GetColorPercentage(percentage float64, text string) string {
	switch schema.GetCompletenessLabel(percentage) {
	case HighValue:
		return HighColor.Sprint(text)
	case MediumValue:
		return MediumColor.Sprint(text)
	default:
		return LowColor.Sprint(text)
	}
}

// GetColorTier returns a colored health tier name for console output.
func GetColorTier(tier schema.HealthTier) string {
	if c, ok := tierColors[tier]; ok {
		return c.Sprint(string(tier))
	}
	return string(tier)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".mcpcensus_history.db"
	}
	return filepath.Join(homeDir, ".mcpcensus_history.db")
}

// DocumentFilePath returns where the Markdown document for a run is written.
func DocumentFilePath(dir string, generatedAt time.Time) string {
	name := schema.DocumentFilePrefix + generatedAt.UTC().Format(time.DateOnly) + schema.DocumentFileExtension
	return filepath.Join(dir, name)
}

// TruncateText truncates text to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 to leave room for the "..." suffix and at least one character.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
