package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "structured header with windows line endings",
			input:    "Adressat:  BWI GmbH   Auf dem Steinbüchel 22\r\nStelle:\tSenior DevOps Engineer (m/w/d)\r\nStellen-ID: 61383   \r\n",
			expected: "Adressat: BWI GmbH Auf dem Steinbüchel 22\nStelle: Senior DevOps Engineer (m/w/d)\nStellen-ID: 61383",
		},
		{
			name:     "markdown headings and bullets keep their structure",
			input:    "# Senior DevOps Engineer (m/w/d)\n\n   ## Ihre Aufgaben\n- Betrieb von Kubernetes\n  - Helm Charts\n* Terraform",
			expected: "# Senior DevOps Engineer (m/w/d)\n\n## Ihre Aufgaben\n- Betrieb von Kubernetes\n  - Helm Charts\n* Terraform",
		},
		{
			name:     "indented prose keeps its indentation",
			input:    "Standort\n    Köln   Ehrenfeld",
			expected: "Standort\n    Köln Ehrenfeld",
		},
		{
			name:     "old mac line endings",
			input:    "Wir bieten:\rHomeoffice\rJobticket",
			expected: "Wir bieten:\nHomeoffice\nJobticket",
		},
		{
			name:     "blank line runs collapse to one empty line",
			input:    "Ihr Profil\n\n\n\n\nIhre Aufgaben",
			expected: "Ihr Profil\n\nIhre Aufgaben",
		},
		{
			name:     "umlauts survive whitespace collapsing",
			input:    "Wir  suchen   Verstärkung   für   Köln",
			expected: "Wir suchen Verstärkung für Köln",
		},
		{name: "only whitespace", input: "   \n \t \n", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestReadJob_Success(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "20250624_61383_SeniorDevOpsEngineer.txt")
	err := os.WriteFile(testFile, []byte("Adressat: BWI GmbH\r\n\r\n\r\n\r\nStelle:   DevOps"), 0644)
	require.NoError(t, err)

	text, metadata, err := ReadJob(testFile)
	require.NoError(t, err)

	assert.Equal(t, "Adressat: BWI GmbH\n\nStelle: DevOps", text)
	assert.Equal(t, "20250624_61383_SeniorDevOpsEngineer.txt", metadata.File)
	assert.Len(t, metadata.Hash, 64)
}

func TestReadJob_FileNotFound(t *testing.T) {
	text, metadata, err := ReadJob("/nonexistent/file.txt")

	assert.Error(t, err)
	assert.Empty(t, text)
	assert.Nil(t, metadata)
	assert.Contains(t, err.Error(), "job description not found")
}

func TestReadProfile_UsesSiblingText(t *testing.T) {
	tmpDir := t.TempDir()
	pdf := filepath.Join(tmpDir, "20250604_dr_setz.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "20250604_dr_setz.md"), []byte("# Dr. Setz\n\nDevOps   Architekt"), 0644))

	text, metadata, err := ReadProfile(pdf)
	require.NoError(t, err)
	assert.Equal(t, "# Dr. Setz\n\nDevOps Architekt", text)
	assert.Equal(t, "20250604_dr_setz.pdf", metadata.File)
}

func TestReadProfile_FallsBackToFilename(t *testing.T) {
	tmpDir := t.TempDir()
	pdf := filepath.Join(tmpDir, "20250604_dr_setz.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0644))

	text, _, err := ReadProfile(pdf)
	require.NoError(t, err)
	assert.Equal(t, "Profile: 20250604_dr_setz.pdf", text)
}

func TestReadProfile_Missing(t *testing.T) {
	_, _, err := ReadProfile(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
