// Package llm - extractor.go builds structured extraction prompts.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/bewerbung-generator/internal/prompts"
)

// ExtractionSchema defines the structure for provider-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobHeader")
	Description string        // Task description placed before the output schema
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the model
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Antworte NUR mit gültigem JSON in genau dieser Struktur:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (Pflicht)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("WICHTIG:\n")
	sb.WriteString("- Übernimm die Angaben wörtlich aus dem Text, erfinde nichts.\n")
	sb.WriteString("- Gib NUR das JSON-Objekt zurück, ohne Markdown, Erklärungen oder Codeblöcke.\n\n")

	sb.WriteString("STELLENAUSSCHREIBUNG:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// JobHeaderSchema returns the extraction schema for employer and position of a job posting.
func JobHeaderSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "JobHeader",
		Description: prompts.MustGet(prompts.ExtractionFile, "company-position"),
		Fields: []SchemaField{
			{
				Name:        "company_name",
				Type:        "\"string\"",
				Description: "Name des ausschreibenden Unternehmens inklusive Rechtsform",
				Required:    true,
			},
			{
				Name:        "position_title",
				Type:        "\"string\"",
				Description: "Genaue Positionsbezeichnung wie in der Anzeige",
				Required:    true,
			},
		},
	}
}
