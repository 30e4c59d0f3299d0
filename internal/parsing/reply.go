package parsing

import (
	"encoding/json"
	"strings"
)

// ExtractionReply is the company and position a provider found in free text
type ExtractionReply struct {
	CompanyName   string `json:"company_name"`
	PositionTitle string `json:"position_title"`
}

// line labels accepted in plain-text replies
var (
	companyLabels  = []string{"unternehmen:", "company:", "firma:"}
	positionLabels = []string{"position:", "stelle:"}
)

// ParseExtractionReply reads a provider reply as JSON, falling back to "Unternehmen:"/"Position:" lines.
func ParseExtractionReply(reply string) (ExtractionReply, error) {
	text := cleanJSONBlock(reply)

	var out ExtractionReply
	if strings.HasPrefix(text, "{") {
		if err := json.Unmarshal([]byte(text), &out); err == nil {
			out.CompanyName = cleanValue(out.CompanyName)
			out.PositionTitle = cleanValue(out.PositionTitle)
			if out.CompanyName != "" || out.PositionTitle != "" {
				return out, nil
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		if v, ok := labelled(line, companyLabels); ok && out.CompanyName == "" {
			out.CompanyName = v
		}
		if v, ok := labelled(line, positionLabels); ok && out.PositionTitle == "" {
			out.PositionTitle = v
		}
	}

	if out.CompanyName == "" && out.PositionTitle == "" {
		return out, &ParseError{Message: "no company or position in reply"}
	}
	return out, nil
}

// ParsePositionReply reads a position-only reply: the first non-empty line, label removed.
func ParsePositionReply(reply string) (string, error) {
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if v, ok := labelled(line, positionLabels); ok {
			line = v
		}
		if v := cleanValue(line); v != "" {
			return v, nil
		}
	}
	return "", &ParseError{Message: "empty position reply"}
}

func labelled(line string, labels []string) (string, bool) {
	lower := strings.ToLower(line)
	for _, label := range labels {
		if strings.HasPrefix(lower, label) {
			return cleanValue(line[len(label):]), true
		}
	}
	return "", false
}

// cleanValue strips whitespace, quotes and markdown emphasis
func cleanValue(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"'*` ")
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return text
}
