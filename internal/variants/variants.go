// Package variants compares the cover letter sections that different providers generated
// for the same application.
package variants

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/bewerbung-generator/internal/docs"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

// PreviewLength is the number of characters shown per section
const PreviewLength = 50

// ErrNoOutput is returned when no run directory exists
var ErrNoOutput = errors.New("no output directory found")

// runDir matches {job_date}_{job_id}-{profile_date}_{profile_id}
var runDir = regexp.MustCompile(`^\d{8}_.+-\d{8}_.+$`)

// Section is the size and beginning of one generated section
type Section struct {
	Length  int
	Words   int
	Preview string
}

// Variant is what one provider folder contains
type Variant struct {
	Folder   string
	Provider string
	Model    string
	// FromInfo is false when generation_info.json was missing or invalid
	FromInfo bool
	Sections map[types.ContentType]Section
}

// Report holds the variants of one run directory in folder order
type Report struct {
	Dir      string
	Variants []Variant
}

// LatestRunDir returns the run directory under outputRoot with the greatest job date
func LatestRunDir(outputRoot string) (string, error) {
	entries, err := os.ReadDir(outputRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoOutput, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && runDir.MatchString(e.Name()) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoOutput, outputRoot)
	}
	sort.Strings(names)
	return filepath.Join(outputRoot, names[len(names)-1]), nil
}

// Analyze reads every provider folder of dir
func Analyze(dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	report := &Report{Dir: dir}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		report.Variants = append(report.Variants, analyzeFolder(filepath.Join(dir, e.Name())))
	}
	sort.Slice(report.Variants, func(i, j int) bool {
		return report.Variants[i].Folder < report.Variants[j].Folder
	})
	return report, nil
}

func analyzeFolder(path string) Variant {
	folder := filepath.Base(path)
	v := Variant{Folder: folder, Sections: make(map[types.ContentType]Section)}

	info, err := docs.ReadInfo(filepath.Join(path, docs.InfoFile))
	if err != nil {
		v.Provider, v.Model, _ = strings.Cut(folder, "_")
		return v
	}
	v.FromInfo = true
	v.Provider = info.ClientStats.Provider
	v.Model = info.ClientStats.Model
	for _, ct := range types.CoverLetterTypes() {
		text, ok := info.Sections[string(ct)]
		if !ok {
			continue
		}
		stats := docs.Stats(text)
		v.Sections[ct] = Section{Length: stats.Length, Words: stats.Words, Preview: Preview(text, PreviewLength)}
	}
	return v
}

// Preview returns the first n characters of text on one line, with "..." when cut
func Preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}

// Providers returns the provider folders in report order
func (r *Report) Providers() []string {
	out := make([]string, 0, len(r.Variants))
	for _, v := range r.Variants {
		out = append(out, v.Folder)
	}
	return out
}
