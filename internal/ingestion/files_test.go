package ingestion

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func TestNewestFile(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		ext   string
		want  string
	}{
		{
			name:  "greatest date wins",
			files: []string{"20250101_a.pdf", "20250604_dr_setz.pdf", "20240312_old.pdf"},
			ext:   ".pdf",
			want:  "20250604_dr_setz.pdf",
		},
		{
			name:  "other extensions ignored",
			files: []string{"20250101_a.txt", "20991231_future.pdf"},
			ext:   ".txt",
			want:  "20250101_a.txt",
		},
		{
			name:  "undated files ignored",
			files: []string{"profil.pdf", "2025_short.pdf", "20250102_b.pdf"},
			ext:   ".pdf",
			want:  "20250102_b.pdf",
		},
		{
			name:  "same date sorts by full filename",
			files: []string{"20250624_alpha.txt", "20250624_beta.txt"},
			ext:   ".txt",
			want:  "20250624_beta.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			got, ok := NewestFile(dir, tt.ext)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

func TestNewestFile_Absent(t *testing.T) {
	got, ok := NewestFile(filepath.Join(t.TempDir(), "missing"), ".pdf")
	assert.False(t, ok)
	assert.Empty(t, got)

	dir := t.TempDir()
	touch(t, dir, "notes.pdf")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "20250101_dir.pdf"), 0755))
	_, ok = NewestFile(dir, ".pdf")
	assert.False(t, ok)
}

func TestParseInputFile_RoundTrip(t *testing.T) {
	cases := []struct{ date, id, ext string }{
		{"20250604", "dr_setz", ProfileExt},
		{"20250624", "61383_SeniorDevOpsEngineer", JobExt},
		{"19991231", "a.b.c", JobExt},
	}
	for _, c := range cases {
		f, err := ParseInputFile(filepath.Join("dir", ComposeName(c.date, c.id, c.ext)), c.ext)
		require.NoError(t, err)
		assert.Equal(t, c.date, f.Date)
		assert.Equal(t, c.id, f.ID)
	}
}

func TestParseInputFile_Malformed(t *testing.T) {
	for _, name := range []string{"profil.pdf", "2025060_x.pdf", "20250604_x.pdf.bak", "20250604_.pdf", "20250604_x.txt"} {
		_, err := ParseInputFile(name, ProfileExt)
		var formatErr *FormatError
		require.True(t, errors.As(err, &formatErr), name)
		assert.Equal(t, name, formatErr.File)
	}
}

func TestOutputDirName(t *testing.T) {
	profile, job, err := ExtractIdentifiers(
		"profil/20250604_dr_setz.pdf",
		"Stellenbeschreibung/20250624_61383_SeniorDevOpsEngineer.txt",
	)
	require.NoError(t, err)

	name := OutputDirName(profile, job)
	assert.Equal(t, "20250624_61383_SeniorDevOpsEngineer-20250604_dr_setz", name)
	assert.Equal(t, name, OutputDirName(profile, job))
}

func TestExtractIdentifiers_BadJob(t *testing.T) {
	_, _, err := ExtractIdentifiers("20250604_dr_setz.pdf", "job.txt")
	assert.Error(t, err)
}
