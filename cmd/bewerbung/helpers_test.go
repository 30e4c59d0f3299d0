package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command in-process with fresh flag values
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	baseDir, verbose = ".", false
	genClearCache, genNoCache, genKeepCache, genNoPDF = false, false, false, false
	providersTest, providersPull = false, false
	templatesForce = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// sampleEnv pins every setting that could otherwise leak in from the host
func sampleEnv(t *testing.T) {
	t.Helper()
	for k, v := range map[string]string{
		"AI_PROVIDER":                   "sample",
		"AI_ENABLE_FALLBACK":            "true",
		"GENERATE_ALL_PROVIDERS":        "false",
		"CLEAR_CACHE_ON_START":          "false",
		"GENERATE_DOCUMENTATION":        "false",
		"GENERATE_REGENERATION_SCRIPTS": "true",
		"INCLUDE_GENERATION_METADATA":   "true",
		"OUTPUT_STRUCTURE":              "by_model",
		"OLLAMA_HOST":                   "http://127.0.0.1:1",
		"LOG_LEVEL":                     "error",
	} {
		t.Setenv(k, v)
	}
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("LOG_FILE", "")
}

// newProject creates a project directory with one profile, one job description and a .env
func newProject(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	files := map[string]string{
		"profil/20250604_dr_setz.pdf": "%PDF",
		"Stellenbeschreibung/20250624_61383_SeniorDevOpsEngineer.txt": "Adressat: BWI GmbH Auf dem Steinbüchel 22 53340 Meckenheim Deutschland\n" +
			"Stelle: Senior DevOps Engineer (m/w/d)\n\nWir suchen Verstärkung.",
		".env": "ABSENDER_VORNAME=Max\nABSENDER_NACHNAME=Mustermann\n",
	}
	for name, content := range files {
		path := filepath.Join(base, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return base
}
