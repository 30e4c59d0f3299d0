package docs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/bewerbung-generator/internal/types"
)

func testInput() InfoInput {
	header := types.DefaultJobHeader()
	header.SetCompany("BWI GmbH")
	header.SetPosition("Senior DevOps Engineer")

	return InfoInput{
		RunID:       "3f1c2b7e-0000-4000-8000-000000000001",
		Timestamp:   time.Date(2025, 6, 24, 10, 30, 0, 0, time.UTC),
		OutputDir:   "20250624_61383-20250604_dr_setz",
		Provider:    types.ProviderDescriptor{Provider: "llama", Model: "llama3.2:3b", Folder: "llama_3-2-3b", Available: true},
		ProfileFile: "20250604_dr_setz.pdf",
		JobFile:     "20250624_61383.txt",
		Header:      header,
		Responses: map[types.ContentType]*types.ContentResponse{
			types.ContentEinstiegstext: {
				ContentType:   types.ContentEinstiegstext,
				GeneratedText: "mit großem Interesse",
				TokensUsed:    10,
				Metadata:      map[string]any{types.MetaProvider: "llama", types.MetaCached: true},
			},
			types.ContentAbschlusstext: {
				ContentType:   types.ContentAbschlusstext,
				GeneratedText: "Ich freue mich auf Ihre Antwort.",
				Metadata:      map[string]any{types.MetaProvider: "llama_fallback", types.MetaSource: types.SourceSample},
			},
		},
		CacheEnabled: true,
		Elapsed:      1500 * time.Millisecond,
	}
}

func TestBuildInfo(t *testing.T) {
	info := BuildInfo(testInput())

	assert.Equal(t, "2025-06-24T10:30:00Z", info.Generation.Timestamp)
	assert.Equal(t, "llama_3-2-3b", info.Generation.ClientFolder)
	assert.Equal(t, "BWI GmbH", info.Generation.Company)
	assert.Equal(t, "Senior DevOps Engineer", info.Generation.Position)

	assert.Equal(t, 1, info.ClientStats.CachedItems)
	assert.True(t, info.ClientStats.FallbackUsed)
	assert.Equal(t, 10, info.ClientStats.TokensUsed)

	assert.Equal(t, types.SectionStats{Length: 20, Words: 3}, info.Content.Sections["einstiegstext"])
	assert.Equal(t, "1.50s", info.Content.GenerationTime)
	assert.Equal(t, "Ich freue mich auf Ihre Antwort.", info.Sections["abschlusstext"])
}

func TestBuildInfo_PlaceholdersOmitted(t *testing.T) {
	in := testInput()
	in.Header = types.DefaultJobHeader()

	info := BuildInfo(in)
	assert.Empty(t, info.Generation.Company)
	assert.Empty(t, info.Generation.Position)
}

func TestWriteAndReadInfo(t *testing.T) {
	dir := t.TempDir()
	info := BuildInfo(testInput())

	path, err := WriteInfo(dir, info)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, InfoFile), path)

	loaded, err := ReadInfo(path)
	require.NoError(t, err)
	assert.Equal(t, info, *loaded)
}

func TestWriteInfo_InvalidDocumentRejected(t *testing.T) {
	info := BuildInfo(testInput())
	info.Generation.RunID = ""

	_, err := WriteInfo(t.TempDir(), info)
	assert.Error(t, err)
}

func TestReadInfo_Errors(t *testing.T) {
	_, err := ReadInfo(filepath.Join(t.TempDir(), InfoFile))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), InfoFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"generation_info": {}}`), 0644))
	_, err = ReadInfo(path)
	assert.Error(t, err)
}

func TestWriteReadme(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter("/projekt")

	path, err := w.WriteReadme(dir, BuildInfo(testInput()))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	readme := string(data)

	assert.Contains(t, readme, "**KI-Anbieter:** llama (llama3.2:3b)")
	assert.Contains(t, readme, "`20250604_dr_setz.pdf`")
	assert.Contains(t, readme, "**Unternehmen:** BWI GmbH")
	assert.Contains(t, readme, "| einstiegstext | 20 | 3 |")
	assert.Contains(t, readme, `export LLAMA_MODEL='llama3.2:3b'`)
	assert.Contains(t, readme, "cd '/projekt'")
	assert.Contains(t, readme, "**Vollständigkeit:** 40%")
	assert.Contains(t, readme, "ollama pull")
	assert.Contains(t, readme, "KI-generiert, teilweise Beispielinhalte")
}

func TestWriteScripts(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter("/projekt")

	paths, err := w.WriteScripts(dir, BuildInfo(testInput()))
	require.NoError(t, err)
	require.Len(t, paths, 2)

	st, err := os.Stat(filepath.Join(dir, ScriptSh))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), st.Mode().Perm())

	sh, err := os.ReadFile(filepath.Join(dir, ScriptSh))
	require.NoError(t, err)
	assert.Contains(t, string(sh), "#!/bin/bash")
	assert.Contains(t, string(sh), `export AI_PROVIDER='llama'`)
	assert.Contains(t, string(sh), `bewerbung generate --base-dir '/projekt'`)

	bat, err := os.ReadFile(filepath.Join(dir, ScriptBat))
	require.NoError(t, err)
	assert.Contains(t, string(bat), "set AI_PROVIDER=llama")
}

func TestWriteScripts_QuotesShellWords(t *testing.T) {
	dir := t.TempDir()
	base := `/home/max/Bewerbung "2025" $HOME` + "`id`" + `/it's`

	_, err := NewWriter(base).WriteScripts(dir, BuildInfo(testInput()))
	require.NoError(t, err)

	sh, err := os.ReadFile(filepath.Join(dir, ScriptSh))
	require.NoError(t, err)
	quoted := `'/home/max/Bewerbung "2025" $HOME` + "`id`" + `/it'\''s'`
	assert.Contains(t, string(sh), "cd "+quoted+"\n")
	assert.Contains(t, string(sh), "bewerbung generate --base-dir "+quoted+"\n")
	assert.NotContains(t, string(sh), `"`+base)
}

func TestShquote(t *testing.T) {
	assert.Equal(t, `''`, shquote(""))
	assert.Equal(t, `'llama3.2:3b'`, shquote("llama3.2:3b"))
	assert.Equal(t, `'it'\''s'`, shquote("it's"))
}

func TestEnv(t *testing.T) {
	env := Env(types.GenerationInfo{ClientStats: types.ClientStats{Provider: "claude", Model: "claude-3-5-sonnet-20241022"}})
	assert.Contains(t, env, EnvVar{Key: "CLAUDE_MODEL", Value: "claude-3-5-sonnet-20241022"})
	assert.Contains(t, env, EnvVar{Key: "AI_PROVIDER", Value: "claude"})
}
