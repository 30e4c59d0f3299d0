package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	multiSpace  = regexp.MustCompile(`\s+`)
	blankLines3 = regexp.MustCompile(`\n\n\n+`)
)

// CleanText normalizes line endings and whitespace while keeping markdown structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLines3.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	leadingSpace := len(line) - len(trimmed)
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return strings.Repeat(" ", leadingSpace) + trimmed
	}

	content := multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", leadingSpace) + content
}

// ReadJob reads and cleans a job description file
func ReadJob(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("job description not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read job description: %w", err)
	}

	cleaned := CleanText(string(content))
	return cleaned, NewMetadata(cleaned, path), nil
}

// ReadProfile returns the text of a profile.
// Profiles are PDFs; a sibling .txt or .md file with the same stem supplies the text.
// Without one the profile is represented by its filename.
func ReadProfile(path string) (string, *Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		return "", nil, fmt.Errorf("profile not found: %w", err)
	}

	stem := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range []string{".txt", ".md"} {
		content, err := os.ReadFile(stem + ext)
		if err != nil {
			continue
		}
		cleaned := CleanText(string(content))
		if cleaned != "" {
			return cleaned, NewMetadata(cleaned, path), nil
		}
	}

	text := "Profile: " + filepath.Base(path)
	return text, NewMetadata(text, path), nil
}
