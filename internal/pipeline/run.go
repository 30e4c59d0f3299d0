// Package pipeline provides the high-level orchestration of an application run:
// input selection, per-provider generation and rendering, and PDF export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/bewerbung-generator/internal/cache"
	"github.com/jonathan/bewerbung-generator/internal/config"
	"github.com/jonathan/bewerbung-generator/internal/docs"
	"github.com/jonathan/bewerbung-generator/internal/export"
	"github.com/jonathan/bewerbung-generator/internal/ingestion"
	"github.com/jonathan/bewerbung-generator/internal/llm"
	"github.com/jonathan/bewerbung-generator/internal/rendering"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

// LogFile is the per-provider log inside every provider folder
const LogFile = "generation.log"

// TotalSteps is the number of numbered steps reported through progress events
const TotalSteps = 6

var (
	// ErrInputNotFound is returned when no profile or job description matches YYYYMMDD_*.ext
	ErrInputNotFound = errors.New("input file not found")
	// ErrNoDocuments is returned when every provider failed
	ErrNoDocuments = errors.New("no documents were generated")
)

// Progress categories
const (
	CategorySetup      = "setup"
	CategoryInput      = "input"
	CategoryGeneration = "generation"
	CategoryExport     = "export"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Provider string `json:"provider,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the per-invocation switches of a run
type RunOptions struct {
	ClearCache bool // force clearing the content cache
	KeepCache  bool // overrides CLEAR_CACHE_ON_START
	NoCache    bool // generate without reading or writing the cache
	OnProgress ProgressCallback
}

// FolderResult describes one provider folder written by a run
type FolderResult struct {
	Provider  types.ProviderDescriptor
	Dir       string
	Files     []string
	Header    types.JobHeader
	Responses map[types.ContentType]*types.ContentResponse
	Export    *export.Result
}

// Result is the outcome of a run
type Result struct {
	RunID     string
	OutputDir string
	Profile   ingestion.InputFile
	Job       ingestion.InputFile
	Folders   map[string]*FolderResult
	Failed    map[string]error
	Statuses  []types.ProviderStatus
}

// FolderNames returns the provider folders of the result in name order
func (r *Result) FolderNames() []string {
	names := make([]string, 0, len(r.Folders))
	for name := range r.Folders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generator runs the application pipeline for one project directory.
type Generator struct {
	cfg      *config.Config
	paths    config.Paths
	logger   *slog.Logger
	printer  export.Printer
	renderer *rendering.Renderer
	docs     *docs.Writer
	llmOpts  []llm.FactoryOption
	now      func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the run logger
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithPrinter sets the PDF backend
func WithPrinter(p export.Printer) Option {
	return func(g *Generator) { g.printer = p }
}

// WithProviderOptions passes extra options to the provider factory
func WithProviderOptions(opts ...llm.FactoryOption) Option {
	return func(g *Generator) { g.llmOpts = append(g.llmOpts, opts...) }
}

// WithClock replaces time.Now for dates and timestamps
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a generator for cfg. Without WithPrinter, PDFs are printed with headless Chrome.
func New(cfg *config.Config, opts ...Option) *Generator {
	paths := cfg.Paths()
	g := &Generator{
		cfg:      cfg,
		paths:    paths,
		logger:   slog.Default(),
		printer:  export.NewChromePrinter(0),
		renderer: rendering.NewRenderer(paths.Templates),
		docs:     docs.NewWriter(paths.Base),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// runInput is what every provider pass shares
type runInput struct {
	runID       string
	outputDir   string
	outputName  string
	profile     ingestion.InputFile
	job         ingestion.InputFile
	profileText string
	jobText     string
	profileMeta *ingestion.Metadata
	jobMeta     *ingestion.Metadata
	cacheOn     bool
}

func (g *Generator) emit(opts *RunOptions, step int, category, message string, content any) {
	g.logger.Info(message, "step", fmt.Sprintf("%d/%d", step, TotalSteps))
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     fmt.Sprintf("Step %d/%d", step, TotalSteps),
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// ShouldClearCache applies the cache policy: --clear-cache forces a clear,
// --keep-cache suppresses CLEAR_CACHE_ON_START.
func ShouldClearCache(cfg *config.Config, opts RunOptions) bool {
	if opts.ClearCache {
		return true
	}
	return cfg.ClearCacheOnStart && !opts.KeepCache
}

// Run executes steps 0 to 6 and returns the folders that were produced.
// Missing inputs, malformed filenames and an empty result are fatal; everything
// that goes wrong for a single provider or a single PDF is logged and skipped.
func (g *Generator) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	runID := uuid.NewString()
	scoped := *g
	scoped.logger = g.logger.With("run_id", runID)
	return scoped.run(ctx, runID, opts)
}

func (g *Generator) run(ctx context.Context, runID string, opts RunOptions) (*Result, error) {
	if g.cfg.LegacyOutputRequested() {
		g.logger.Warn("OUTPUT_STRUCTURE is deprecated, writing the by_model layout", "output_structure", g.cfg.OutputStructure)
	}

	// Step 0: content cache
	contentCache := g.openCache(opts)

	// Steps 1-2: newest inputs
	profilePath, ok := ingestion.NewestFile(g.paths.Profiles, ingestion.ProfileExt)
	if !ok {
		return nil, fmt.Errorf("%w: no YYYYMMDD_*%s in %s", ErrInputNotFound, ingestion.ProfileExt, g.paths.Profiles)
	}
	g.emit(&opts, 1, CategoryInput, "Selected profile "+filepath.Base(profilePath), profilePath)

	jobPath, ok := ingestion.NewestFile(g.paths.Jobs, ingestion.JobExt)
	if !ok {
		return nil, fmt.Errorf("%w: no YYYYMMDD_*%s in %s", ErrInputNotFound, ingestion.JobExt, g.paths.Jobs)
	}
	g.emit(&opts, 2, CategoryInput, "Selected job description "+filepath.Base(jobPath), jobPath)

	// Step 3: output directory
	profile, job, err := ingestion.ExtractIdentifiers(profilePath, jobPath)
	if err != nil {
		return nil, err
	}
	name := ingestion.OutputDirName(profile, job)
	outputDir := filepath.Join(g.paths.Output, name)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	g.emit(&opts, 3, CategorySetup, "Output directory "+name, outputDir)

	profileText, profileMeta, err := ingestion.ReadProfile(profilePath)
	if err != nil {
		return nil, err
	}
	jobText, jobMeta, err := ingestion.ReadJob(jobPath)
	if err != nil {
		return nil, err
	}

	in := runInput{
		runID:       runID,
		outputDir:   outputDir,
		outputName:  name,
		profile:     profile,
		job:         job,
		profileText: profileText,
		jobText:     jobText,
		profileMeta: profileMeta,
		jobMeta:     jobMeta,
		cacheOn:     contentCache != nil,
	}
	result := &Result{
		RunID:     runID,
		OutputDir: outputDir,
		Profile:   profile,
		Job:       job,
		Folders:   make(map[string]*FolderResult),
		Failed:    make(map[string]error),
	}

	// Step 4: providers
	factoryOpts := append([]llm.FactoryOption{llm.WithLogger(g.logger), llm.WithCache(contentCache)}, g.llmOpts...)
	factory := llm.NewFactory(g.cfg, factoryOpts...)

	var providers []llm.Provider
	if g.cfg.GenerateAllProviders {
		providers = factory.CreateAll(ctx)
	} else {
		p, err := factory.Create(ctx)
		result.Statuses = factory.Statuses()
		if err != nil {
			return result, err
		}
		providers = []llm.Provider{p}
	}
	result.Statuses = factory.Statuses()
	g.emit(&opts, 4, CategoryGeneration, fmt.Sprintf("Generating with %d provider(s)", len(providers)), result.Statuses)

	for _, p := range providers {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		desc := p.Descriptor()
		folder, err := g.generateFolder(ctx, p, in)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			g.logger.Error("provider failed, continuing", "provider", desc.Provider, "folder", desc.Folder, "error", err)
			result.Failed[desc.Folder] = err
			continue
		}
		result.Folders[desc.Folder] = folder
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{
				Step:     fmt.Sprintf("Step 4/%d", TotalSteps),
				Category: CategoryGeneration,
				Message:  fmt.Sprintf("Wrote %d documents to %s", len(folder.Files), desc.Folder),
				RunID:    runID,
				Provider: desc.Provider,
			})
		}
	}
	if len(result.Folders) == 0 {
		return result, ErrNoDocuments
	}

	// Step 5: pdf/ inside every provider folder
	for _, name := range result.FolderNames() {
		if err := os.MkdirAll(filepath.Join(result.Folders[name].Dir, export.PDFDir), 0755); err != nil {
			g.logger.Warn("failed to create pdf directory", "folder", name, "error", err)
		}
	}
	g.emit(&opts, 5, CategoryExport, "Prepared pdf directories", nil)

	// Step 6: export
	g.export(ctx, result)
	g.emit(&opts, 6, CategoryExport, fmt.Sprintf("Finished %d provider folder(s)", len(result.Folders)), result.FolderNames())

	return result, nil
}

// openCache applies the clear policy and returns the cache to use, or nil when caching is off
func (g *Generator) openCache(opts RunOptions) *cache.Cache {
	clearIt := ShouldClearCache(g.cfg, opts)
	if opts.NoCache && !clearIt {
		return nil
	}

	c, err := cache.Open(g.paths.Cache, g.logger)
	if err != nil {
		g.logger.Warn("content cache unavailable, continuing without", "error", err)
		return nil
	}
	if clearIt {
		if err := c.Clear(); err != nil {
			g.logger.Warn("failed to clear content cache", "error", err)
		} else {
			g.logger.Info("content cache cleared", "path", c.Path())
		}
	}
	if opts.NoCache {
		return nil
	}
	return c
}

// generateFolder extracts the header, generates all sections and writes the documents of one provider
func (g *Generator) generateFolder(ctx context.Context, p llm.Provider, in runInput) (*FolderResult, error) {
	desc := p.Descriptor()
	dir := filepath.Join(in.outputDir, desc.Folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create provider folder: %w", err)
	}

	base := g.logger.With("provider", desc.Provider, "folder", desc.Folder)
	logger, closeLog, err := config.WithFileSink(base, filepath.Join(dir, LogFile), config.ParseLevel(g.cfg.LogLevel))
	if err != nil {
		base.Warn("per-provider log unavailable", "error", err)
	}
	defer func() { _ = closeLog() }()

	start := time.Now()
	logger.Info("provider pass started", "model", desc.Model)

	header := p.ExtractCompanyAndPosition(ctx, in.jobText)
	logger.Info("job header", "company", header.CompanyName, "position", header.PositionTitle, "stellen_id", header.StellenID)

	contentTypes := types.CoverLetterTypes()
	if g.cfg.GenerateCVEnhancements {
		contentTypes = types.AllContentTypes()
	}
	responses, err := llm.GenerateSet(ctx, p, types.ContentRequest{
		JobDescription: in.jobText,
		ProfileContent: in.profileText,
		CompanyName:    header.CompanyName,
		PositionTitle:  header.PositionTitle,
	}, contentTypes)
	if err != nil {
		return nil, &llm.ProviderError{Provider: desc.Provider, Operation: "generate content", Cause: err}
	}

	content := make(map[types.ContentType]string, len(responses))
	for ct, resp := range responses {
		content[ct] = resp.GeneratedText
		if resp.IsFallback() {
			logger.Warn("section uses sample content", "content_type", ct, "reason", resp.Metadata[types.MetaFallbackReason])
		}
	}

	rendered, err := g.renderer.RenderAll(rendering.RenderContext{
		Static:      g.cfg.Static,
		Header:      header,
		Content:     content,
		ProfileFile: in.profile.Name(),
		JobFile:     in.job.Name(),
		Provider:    desc.Provider,
		Model:       desc.Model,
		Date:        g.now(),
	})
	if err != nil {
		return nil, err
	}

	folder := &FolderResult{Provider: desc, Dir: dir, Header: header, Responses: responses}
	for _, name := range rendering.Documents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(rendered[name]), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
		folder.Files = append(folder.Files, path)
	}

	info := docs.BuildInfo(docs.InfoInput{
		RunID:        in.runID,
		Timestamp:    g.now(),
		OutputDir:    in.outputName,
		Provider:     desc,
		ProfileFile:  in.profile.Name(),
		JobFile:      in.job.Name(),
		ProfileHash:  in.profileMeta.Hash,
		JobHash:      in.jobMeta.Hash,
		Header:       header,
		Responses:    responses,
		CacheEnabled: in.cacheOn,
		Elapsed:      time.Since(start),
	})
	g.writeDocs(logger, dir, info, folder)

	logger.Info("provider pass finished",
		"documents", len(folder.Files),
		"tokens", info.ClientStats.TokensUsed,
		"cached", info.ClientStats.CachedItems,
		"fallback", info.ClientStats.FallbackUsed,
		"duration", info.Content.GenerationTime)
	return folder, nil
}

// writeDocs writes the optional metadata and documentation files; failures are warnings
func (g *Generator) writeDocs(logger *slog.Logger, dir string, info types.GenerationInfo, folder *FolderResult) {
	if g.cfg.IncludeGenerationMetadata {
		if path, err := docs.WriteInfo(dir, info); err != nil {
			logger.Warn("failed to write generation info", "error", err)
		} else {
			folder.Files = append(folder.Files, path)
		}
	}
	if g.cfg.GenerateDocumentation {
		if path, err := g.docs.WriteReadme(dir, info); err != nil {
			logger.Warn("failed to write README", "error", err)
		} else {
			folder.Files = append(folder.Files, path)
		}
	}
	if g.cfg.GenerateRegenerationScripts {
		if paths, err := g.docs.WriteScripts(dir, info); err != nil {
			logger.Warn("failed to write regeneration scripts", "error", err)
		} else {
			folder.Files = append(folder.Files, paths...)
		}
	}
}

// export converts the documents of every provider folder; nothing here fails the run
func (g *Generator) export(ctx context.Context, result *Result) {
	exporter, err := export.New(g.printer, g.paths.CSS, g.logger)
	if err != nil {
		g.logger.Warn("export skipped", "error", err)
		return
	}
	if err := exporter.Available(); err != nil {
		g.logger.Warn("PDF backend unavailable, writing HTML previews only", "reason", err)
	}

	for _, name := range result.FolderNames() {
		folder := result.Folders[name]
		res, err := exporter.ExportDir(ctx, folder.Dir)
		if err != nil {
			g.logger.Warn("export failed", "folder", name, "error", err)
			continue
		}
		for doc, ferr := range res.Failed {
			g.logger.Warn("document not converted", "folder", name, "file", doc, "error", ferr)
		}
		folder.Export = &res
	}
}
