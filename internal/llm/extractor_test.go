package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildExtractionPrompt(t *testing.T) {
	prompt := BuildExtractionPrompt(JobHeaderSchema(), freeTextJob)

	assert.Contains(t, prompt, `"company_name": "string" (Pflicht)`)
	assert.Contains(t, prompt, `"position_title": "string" (Pflicht)`)
	assert.Contains(t, prompt, "STELLENAUSSCHREIBUNG:")
	assert.Contains(t, prompt, freeTextJob)
}

func TestBuildExtractionPrompt_OptionalField(t *testing.T) {
	schema := ExtractionSchema{
		Description: "Finde den Ort.",
		Fields:      []SchemaField{{Name: "city"}},
	}
	prompt := BuildExtractionPrompt(schema, "Job in Köln")

	assert.Contains(t, prompt, "Finde den Ort.")
	assert.Contains(t, prompt, `"city": string`)
	assert.NotContains(t, prompt, "Pflicht")
}
