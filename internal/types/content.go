// Package types provides type definitions for structured data used throughout the application generator.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// ContentType identifies one generated text section of an application
type ContentType string

// Cover letter sections
const (
	ContentEinstiegstext    ContentType = "einstiegstext"
	ContentFachlichePassung ContentType = "fachliche_passung"
	ContentMotivationstext  ContentType = "motivationstext"
	ContentMehrwert         ContentType = "mehrwert"
	ContentAbschlusstext    ContentType = "abschlusstext"
)

// CV enhancement sections
const (
	ContentBerufserfahrung ContentType = "berufserfahrung_enhanced"
	ContentAusbildung      ContentType = "ausbildung_enhanced"
	ContentFachkenntnisse  ContentType = "fachkenntnisse_enhanced"
)

var coverLetterTypes = []ContentType{
	ContentEinstiegstext,
	ContentFachlichePassung,
	ContentMotivationstext,
	ContentMehrwert,
	ContentAbschlusstext,
}

var cvTypes = []ContentType{
	ContentBerufserfahrung,
	ContentAusbildung,
	ContentFachkenntnisse,
}

// CoverLetterTypes returns the five cover letter sections in document order.
func CoverLetterTypes() []ContentType {
	return append([]ContentType(nil), coverLetterTypes...)
}

// CVTypes returns the three CV enhancement sections.
func CVTypes() []ContentType {
	return append([]ContentType(nil), cvTypes...)
}

// AllContentTypes returns all eight content types, cover letter sections first.
func AllContentTypes() []ContentType {
	all := make([]ContentType, 0, len(coverLetterTypes)+len(cvTypes))
	all = append(all, coverLetterTypes...)
	return append(all, cvTypes...)
}

// Valid reports whether c is one of the known content types
func (c ContentType) Valid() bool {
	for _, t := range AllContentTypes() {
		if t == c {
			return true
		}
	}
	return false
}

// IsCoverLetter reports whether c belongs to the cover letter
func (c ContentType) IsCoverLetter() bool {
	for _, t := range coverLetterTypes {
		if t == c {
			return true
		}
	}
	return false
}

// ParseContentType converts a string into a ContentType
func ParseContentType(s string) (ContentType, error) {
	c := ContentType(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return c, nil
}

// ContentRequest describes one generation call
type ContentRequest struct {
	ContentType    ContentType       `json:"content_type"`
	JobDescription string            `json:"job_description"`
	ProfileContent string            `json:"profile_content"`
	CompanyName    string            `json:"company_name"`
	PositionTitle  string            `json:"position_title"`
	Context        map[string]string `json:"additional_context,omitempty"`
}

// ContentResponse is the result of one generation call.
// ProcessingTime is measured in seconds.
type ContentResponse struct {
	ContentType    ContentType    `json:"content_type"`
	GeneratedText  string         `json:"generated_text"`
	Confidence     float64        `json:"confidence"`
	TokensUsed     int            `json:"tokens_used"`
	ProcessingTime float64        `json:"processing_time"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// Metadata keys shared by providers and the cache
const (
	MetaProvider       = "provider"
	MetaModel          = "model"
	MetaSource         = "source"
	MetaFallbackReason = "fallback_reason"
	MetaCached         = "cached"
	SourceSample       = "sample_content"
)

// FallbackSuffix marks the provider of a response that a real provider could not serve
const FallbackSuffix = "_fallback"

// IsFallback reports whether a real provider failed and sample content was substituted.
// Responses of the sample provider itself are not fallbacks.
func (r *ContentResponse) IsFallback() bool {
	if r == nil || r.Metadata == nil {
		return false
	}
	provider, _ := r.Metadata[MetaProvider].(string)
	return strings.HasSuffix(provider, FallbackSuffix)
}

// IsSample reports whether the text is sample content, substituted or not
func (r *ContentResponse) IsSample() bool {
	if r == nil || r.Metadata == nil {
		return false
	}
	src, _ := r.Metadata[MetaSource].(string)
	return src == SourceSample
}
