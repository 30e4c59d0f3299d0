// Package ingestion locates the newest input files and loads their text.
package ingestion

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Input file extensions
const (
	ProfileExt = ".pdf"
	JobExt     = ".txt"
)

// datePrefix matches the fixed-width date at the start of every input filename
var datePrefix = regexp.MustCompile(`^\d{8}_`)

// InputFile is a discovered input whose name embeds a date and an identifier
type InputFile struct {
	Path string
	Date string // YYYYMMDD
	ID   string
	Ext  string
}

// Name returns the base filename
func (f InputFile) Name() string {
	return filepath.Base(f.Path)
}

// Stem returns the filename without extension
func (f InputFile) Stem() string {
	return f.Date + "_" + f.ID
}

// NewestFile returns the file in dir whose 8-digit date prefix is greatest.
// Files sharing a date are ordered by full filename, the last one wins.
// A missing directory or no matching file yields ok == false.
func NewestFile(dir, ext string) (path string, ok bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if datePrefix.MatchString(name) && strings.HasSuffix(name, ext) && len(name) > len(ext) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", false
	}

	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return filepath.Join(dir, names[0]), true
}

// ParseInputFile splits path into its date and identifier.
// The filename must match YYYYMMDD_identifier<ext> exactly.
func ParseInputFile(path, ext string) (InputFile, error) {
	name := filepath.Base(path)
	pattern := regexp.MustCompile(`^(\d{8})_(.+)` + regexp.QuoteMeta(ext) + `$`)
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return InputFile{}, &FormatError{
			File:    name,
			Message: "expected YYYYMMDD_identifier" + ext,
		}
	}
	return InputFile{Path: path, Date: m[1], ID: m[2], Ext: ext}, nil
}

// ComposeName is the inverse of ParseInputFile
func ComposeName(date, id, ext string) string {
	return date + "_" + id + ext
}

// ExtractIdentifiers parses the selected profile and job filenames
func ExtractIdentifiers(profilePath, jobPath string) (profile, job InputFile, err error) {
	profile, err = ParseInputFile(profilePath, ProfileExt)
	if err != nil {
		return InputFile{}, InputFile{}, err
	}
	job, err = ParseInputFile(jobPath, JobExt)
	if err != nil {
		return InputFile{}, InputFile{}, err
	}
	return profile, job, nil
}

// OutputDirName names the run directory {job_date}_{job_id}-{profile_date}_{profile_id}
func OutputDirName(profile, job InputFile) string {
	return job.Stem() + "-" + profile.Stem()
}
