// Package observability provides formatted output utilities for verbose CLI mode
// and the report commands.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/bewerbung-generator/internal/cache"
	"github.com/jonathan/bewerbung-generator/internal/rendering"
	"github.com/jonathan/bewerbung-generator/internal/types"
	"github.com/jonathan/bewerbung-generator/internal/variants"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// previewLength is the number of characters of a section shown in verbose mode
	previewLength = 120
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		for _, part := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(part, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrap breaks a line at spaces so that no part exceeds width runes.
// Continuation parts keep the line's indentation plus two spaces.
func wrap(line string, width int) []string {
	if utf8.RuneCountInString(line) <= width {
		return []string{line}
	}
	indent := line[:len(line)-len(strings.TrimLeft(line, " "))] + "  "

	var parts []string
	current := ""
	for _, word := range strings.Fields(line) {
		prefix := indent
		if len(parts) == 0 {
			prefix = indent[:len(indent)-2]
		}
		switch {
		case current == "":
			current = prefix + word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			parts = append(parts, current)
			current = indent + word
		}
		for utf8.RuneCountInString(current) > width {
			runes := []rune(current)
			parts = append(parts, string(runes[:width]))
			current = indent + string(runes[width:])
		}
	}
	return append(parts, current)
}

// pad fills s with spaces to width runes; %-*s counts bytes
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintJobHeader outputs the addressee and position used for a provider folder.
func (p *Printer) PrintJobHeader(header types.JobHeader) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Unternehmen:  %s\n", header.CompanyName))
	sb.WriteString(fmt.Sprintf("Position:     %s\n", header.PositionTitle))
	sb.WriteString(fmt.Sprintf("Straße:       %s\n", header.AdressatStrasse))
	sb.WriteString(fmt.Sprintf("PLZ Ort:      %s\n", header.AdressatPLZOrt))
	sb.WriteString(fmt.Sprintf("Land:         %s\n", header.AdressatLand))
	if header.StellenID != "" {
		sb.WriteString(fmt.Sprintf("Stellen-ID:   %s\n", header.StellenID))
	}

	p.printBox("JOB HEADER", sb.String())
}

// PrintProviderStatuses outputs the factory report, one provider per line.
func (p *Printer) PrintProviderStatuses(statuses []types.ProviderStatus) {
	if len(statuses) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range statuses {
		icon := "✗"
		switch s.State {
		case types.StateAvailable:
			icon = "✓"
		case types.StateSkipped:
			icon = "-"
		}
		line := fmt.Sprintf("%s %-7s %-12s", icon, s.Provider, s.State)
		if s.Folder != "" {
			line += " " + s.Folder
		}
		sb.WriteString(line + "\n")
		if s.Reason != "" {
			sb.WriteString("    " + s.Reason + "\n")
		}
	}

	p.printBox("AI PROVIDERS", sb.String())
}

// PrintSections outputs a preview of every generated section of one provider folder.
func (p *Printer) PrintSections(folder string, responses map[types.ContentType]*types.ContentResponse) {
	if len(responses) == 0 {
		return
	}

	var sb strings.Builder
	for _, ct := range types.AllContentTypes() {
		resp, ok := responses[ct]
		if !ok || resp == nil {
			continue
		}
		marker := ""
		if resp.IsFallback() {
			marker = " [fallback]"
		} else if resp.IsSample() {
			marker = " [sample]"
		} else if cached, _ := resp.Metadata[types.MetaCached].(bool); cached {
			marker = " [cache]"
		}
		sb.WriteString(fmt.Sprintf("%s%s (%d tokens)\n", ct, marker, resp.TokensUsed))
		sb.WriteString(fmt.Sprintf("  %s\n", variants.Preview(resp.GeneratedText, previewLength)))
	}

	p.printBox("GENERATED CONTENT: "+folder, sb.String())
}

// PrintVariants outputs one box per cover letter section comparing all provider folders.
func (p *Printer) PrintVariants(report *variants.Report) {
	if report == nil {
		return
	}
	if len(report.Variants) == 0 {
		p.printBox("CONTENT VARIANTS", "No provider folders in "+report.Dir)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Directory: %s\n", report.Dir))
	for _, v := range report.Variants {
		source := "generation_info.json"
		if !v.FromInfo {
			source = "folder name only"
		}
		sb.WriteString(fmt.Sprintf("  • %s: %s %s (%s)\n", v.Folder, v.Provider, v.Model, source))
	}
	p.printBox("CONTENT VARIANTS", sb.String())

	for _, ct := range types.CoverLetterTypes() {
		sb.Reset()
		for _, v := range report.Variants {
			s, ok := v.Sections[ct]
			if !ok {
				sb.WriteString(fmt.Sprintf("%s: -\n", v.Folder))
				continue
			}
			sb.WriteString(fmt.Sprintf("%s: %d Zeichen, %d Wörter\n", v.Folder, s.Length, s.Words))
			sb.WriteString(fmt.Sprintf("  %s\n", s.Preview))
		}
		p.printBox(strings.ToUpper(string(ct)), sb.String())
	}
}

// PrintCacheStats outputs the size of the content cache.
func (p *Printer) PrintCacheStats(path string, stats cache.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Entries:  %d\n", stats.Entries))
	sb.WriteString(fmt.Sprintf("Tokens:   %d\n", stats.TotalTokens))

	if len(stats.ByType) > 0 {
		keys := make([]string, 0, len(stats.ByType))
		for ct := range stats.ByType {
			keys = append(keys, string(ct))
		}
		sort.Strings(keys)
		sb.WriteString("\n")
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %-26s %d\n", k, stats.ByType[types.ContentType(k)]))
		}
	}

	p.printBox("CONTENT CACHE", sb.String())
}

// PrintTemplateInfo outputs where a template comes from and which variables it uses.
func (p *Printer) PrintTemplateInfo(info rendering.TemplateInfo) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", info.Source))
	sb.WriteString(fmt.Sprintf("Global:   %s\n", joinOrDash(info.Global)))
	sb.WriteString(fmt.Sprintf("Dynamic:  %s\n", joinOrDash(info.Dynamic)))
	if len(info.Missing) > 0 {
		sb.WriteString("\nNot set in .env:\n")
		for _, v := range info.Missing {
			sb.WriteString(fmt.Sprintf("  • %s\n", v))
		}
	}

	p.printBox("TEMPLATE: "+info.Name, sb.String())
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
