// Package llm provides the content providers: a local Ollama model, the Anthropic API
// and a deterministic sample provider, plus the factory that selects among them.
package llm

import "time"

// CallKind represents the purpose of a provider call
type CallKind string

const (
	// KindContent generates one application text section
	KindContent CallKind = "content"
	// KindExtraction extracts company and position from free text
	KindExtraction CallKind = "extraction"
	// KindPosition extracts only the position title
	KindPosition CallKind = "position"
)

// CallProfile holds sampling parameters and the deadline of one call kind
type CallProfile struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Profiles maps call kinds to their parameters
type Profiles map[CallKind]CallProfile

// LocalProfiles returns the call parameters for a local model
func LocalProfiles(temperature float64, maxTokens int) Profiles {
	return Profiles{
		KindContent:    {Temperature: temperature, MaxTokens: maxTokens, Timeout: 60 * time.Second},
		KindExtraction: {Temperature: 0.1, MaxTokens: 100, Timeout: 30 * time.Second},
		KindPosition:   {Temperature: 0.1, MaxTokens: 50, Timeout: 20 * time.Second},
	}
}

// CloudProfiles returns the call parameters for the Anthropic API
func CloudProfiles(temperature float64, maxTokens int) Profiles {
	return Profiles{
		KindContent:    {Temperature: temperature, MaxTokens: maxTokens, Timeout: 60 * time.Second},
		KindExtraction: {Temperature: 0.1, MaxTokens: 200, Timeout: 30 * time.Second},
		KindPosition:   {Temperature: 0.1, MaxTokens: 50, Timeout: 20 * time.Second},
	}
}

// Get returns the profile for a kind, falling back to the content profile
func (p Profiles) Get(kind CallKind) CallProfile {
	if profile, ok := p[kind]; ok {
		return profile
	}
	if profile, ok := p[KindContent]; ok {
		return profile
	}
	return CallProfile{Temperature: 0.3, MaxTokens: 1000, Timeout: 60 * time.Second}
}
