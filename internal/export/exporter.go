// Package export converts the rendered markdown documents of a provider folder to PDF,
// keeping an HTML preview next to every PDF.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PDFDir is the subdirectory of a provider folder that receives PDFs and previews
const PDFDir = "pdf"

// skipped are markdown files of a provider folder that are not application documents
var skipped = map[string]bool{"README.md": true}

// Result lists the files written for one folder and the documents that failed
type Result struct {
	PDFs    []string
	Preview []string
	Failed  map[string]error
}

// Exporter writes pdf/<name>.pdf and pdf/<name>.html for the documents of a folder.
type Exporter struct {
	printer Printer
	css     string
	logger  *slog.Logger
}

// New creates an exporter using the stylesheet at cssPath, or the built-in one if it is missing
func New(printer Printer, cssPath string, logger *slog.Logger) (*Exporter, error) {
	css, err := LoadCSS(cssPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{printer: printer, css: css, logger: logger}, nil
}

// Available reports whether PDFs can be produced
func (e *Exporter) Available() error {
	if e.printer == nil {
		return ErrBackendUnavailable
	}
	return e.printer.Available()
}

// Documents returns the markdown documents directly inside dir in name order
func Documents(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var docs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".md" || skipped[name] {
			continue
		}
		docs = append(docs, name)
	}
	sort.Strings(docs)
	return docs, nil
}

// ExportDir converts every document of dir. Failures are per document and collected in
// Result.Failed; an unavailable backend still yields the HTML previews.
func (e *Exporter) ExportDir(ctx context.Context, dir string) (Result, error) {
	result := Result{Failed: make(map[string]error)}

	docs, err := Documents(dir)
	if err != nil {
		return result, fmt.Errorf("failed to list documents: %w", err)
	}
	outDir := filepath.Join(dir, PDFDir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return result, fmt.Errorf("failed to create pdf directory: %w", err)
	}

	// callers report a missing backend once per run
	backendErr := e.Available()
	if backendErr != nil {
		e.logger.Debug("PDF generation skipped", "dir", dir, "reason", backendErr)
	}

	for _, name := range docs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		stem := strings.TrimSuffix(name, ".md")

		md, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			result.Failed[name] = err
			continue
		}
		page, err := MarkdownToHTML(string(md), TitleFromFilename(name), e.css)
		if err != nil {
			result.Failed[name] = err
			continue
		}

		htmlPath := filepath.Join(outDir, stem+".html")
		if err := os.WriteFile(htmlPath, []byte(page), 0644); err != nil {
			result.Failed[name] = err
			continue
		}
		result.Preview = append(result.Preview, htmlPath)

		if backendErr != nil {
			continue
		}
		pdf, err := e.printer.PrintPDF(ctx, page)
		if err != nil {
			e.logger.Warn("PDF conversion failed", "file", name, "error", err)
			result.Failed[name] = err
			continue
		}
		pdfPath := filepath.Join(outDir, stem+".pdf")
		if err := os.WriteFile(pdfPath, pdf, 0644); err != nil {
			result.Failed[name] = err
			continue
		}
		result.PDFs = append(result.PDFs, pdfPath)
		e.logger.Debug("PDF written", "path", pdfPath)
	}
	return result, nil
}
