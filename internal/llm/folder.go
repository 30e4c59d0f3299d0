package llm

import (
	"regexp"
	"strings"
)

var folderReplacer = strings.NewReplacer(
	":", "-",
	"/", "-",
	"\\", "-",
	" ", "_",
	".", "-",
)

// FolderName builds the filesystem-safe directory name {provider}_{model}
func FolderName(provider, model string) string {
	return folderReplacer.Replace(provider + "_" + model)
}

// LocalModelName shortens an Ollama model tag for display: "llama3.2:3b" becomes "3-2-3b".
func LocalModelName(model string) string {
	if model == "" {
		return "unknown"
	}
	name := strings.TrimPrefix(model, "llama")
	name = strings.NewReplacer(".", "-", ":", "-").Replace(name)
	name = strings.Trim(name, "-")
	if name == "" {
		return "latest"
	}
	return name
}

var datePart = regexp.MustCompile(`^\d{8}$`)

// CloudModelName shortens an Anthropic model id for display, family first:
// "claude-3-5-sonnet-20241022" becomes "sonnet-3-5" and "claude-sonnet-4-20250514" becomes "sonnet-4".
func CloudModelName(model string) string {
	if model == "" {
		return "unknown"
	}

	var family string
	var version []string
	for _, part := range strings.Split(strings.TrimPrefix(model, "claude-"), "-") {
		switch {
		case part == "" || part == "latest" || datePart.MatchString(part):
			continue
		case family == "" && strings.Trim(part, "0123456789") != "":
			family = part
		default:
			version = append(version, part)
		}
	}

	parts := version
	if family != "" {
		parts = append([]string{family}, version...)
	}
	if len(parts) == 0 {
		return model
	}
	return strings.Join(parts, "-")
}
