package config

import (
	"sort"
	"strings"
)

var staticPrefixes = []string{"ABSENDER_", "ADRESSAT_"}

var staticKeys = map[string]bool{
	"DATUM":                        true,
	"BERUFSERFAHRUNG":              true,
	"AUSBILDUNG":                   true,
	"FACHKENNTNISSE":               true,
	"SPRACHKENNTNISSE":             true,
	"ZUSAETZLICHE_QUALIFIKATIONEN": true,
	"INTERESSEN":                   true,
	"STELLE":                       true,
	"STELLEN_ID":                   true,
}

// StaticFields holds the upper-case template variables shared by every document of a run.
// It is never mutated after loading; use With to derive a variant.
type StaticFields map[string]string

// IsStaticKey reports whether key is a template field taken from the environment
func IsStaticKey(key string) bool {
	if staticKeys[key] {
		return true
	}
	for _, prefix := range staticPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// LoadStaticFields collects template fields from env file values and the process environment.
// The process environment wins over file values.
func LoadStaticFields(fileValues map[string]string, environ []string) StaticFields {
	fields := make(StaticFields)
	for key, value := range fileValues {
		if IsStaticKey(key) {
			fields[key] = value
		}
	}
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !IsStaticKey(key) {
			continue
		}
		fields[key] = value
	}
	return fields
}

// With returns a copy of s with overrides applied
func (s StaticFields) With(overrides map[string]string) StaticFields {
	out := make(StaticFields, len(s)+len(overrides))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Keys returns the field names in sorted order
func (s StaticFields) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
