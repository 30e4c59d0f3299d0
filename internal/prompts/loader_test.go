package prompts

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contentKeys = []string{
	"einstiegstext",
	"fachliche_passung",
	"motivationstext",
	"mehrwert",
	"abschlusstext",
	"berufserfahrung_enhanced",
	"ausbildung_enhanced",
	"fachkenntnisse_enhanced",
}

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(ContentFile, "einstiegstext")
	require.NoError(t, err)
	assert.Contains(t, prompt, "Einstiegstext")
	assert.Contains(t, prompt, "{{.JobDescription}}")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(ContentFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestContentFile_CoversEveryContentType(t *testing.T) {
	for _, key := range append([]string{SystemKey}, contentKeys...) {
		prompt, err := Get(ContentFile, key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, prompt, key)
	}
}

func TestFirst_FallsBackAcrossFiles(t *testing.T) {
	ClearCache()

	local, err := First("einstiegstext", LocalFile, ContentFile)
	require.NoError(t, err)
	assert.Equal(t, MustGet(LocalFile, "einstiegstext"), local)

	cv, err := First("ausbildung_enhanced", LocalFile, ContentFile)
	require.NoError(t, err)
	assert.Equal(t, MustGet(ContentFile, "ausbildung_enhanced"), cv)

	_, err = First("missing", LocalFile, ContentFile)
	assert.Error(t, err)
}

func TestRender_FillsAllPlaceholders(t *testing.T) {
	data := map[string]string{
		"JobDescription": "Wir suchen DevOps",
		"ProfileContent": "10 Jahre Kubernetes",
		"CompanyName":    "BWI GmbH",
		"PositionTitle":  "Senior DevOps Engineer",
	}
	leftover := regexp.MustCompile(`\{\{\.[A-Za-z]+\}\}`)

	for _, file := range []string{ContentFile, LocalFile} {
		keys, err := List(file)
		require.NoError(t, err)
		for _, key := range keys {
			prompt, err := Render(file, key, data)
			require.NoError(t, err)
			assert.False(t, leftover.MatchString(prompt), "%s/%s", file, key)
		}
	}
}

func TestFormat(t *testing.T) {
	template := "Hallo {{.Name}}, willkommen bei {{.Company}}!"
	data := map[string]string{
		"Name":    "Max",
		"Company": "BWI GmbH",
	}

	assert.Equal(t, "Hallo Max, willkommen bei BWI GmbH!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hallo {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestList_Sorted(t *testing.T) {
	ClearCache()

	keys, err := List(ExtractionFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"company-position", "position", "position-system", "system"}, keys)
}

func TestCaching(t *testing.T) {
	ClearCache()

	prompt1, err := Get(ContentFile, "mehrwert")
	require.NoError(t, err)
	prompt2, err := Get(ContentFile, "mehrwert")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
