package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jonathan/bewerbung-generator/internal/cache"
	"github.com/jonathan/bewerbung-generator/internal/parsing"
	"github.com/jonathan/bewerbung-generator/internal/prompts"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

// Provider generates application content with one backend.
//
// GenerateContent never reports provider failures: a failed or empty call yields
// sample content whose metadata names the fallback reason. Errors are returned only
// for an unknown content type or a cancelled context.
type Provider interface {
	Descriptor() types.ProviderDescriptor
	IsAvailable() bool
	ModelFolder() string
	GenerateContent(ctx context.Context, req types.ContentRequest) (*types.ContentResponse, error)
	GenerateAllCoverLetterContent(ctx context.Context, job, profile, company, position string) (map[types.ContentType]string, error)
	ExtractCompanyAndPosition(ctx context.Context, jobText string) types.JobHeader
}

// Call is one prompt sent to a backend
type Call struct {
	Kind   CallKind
	System string
	Prompt string
}

// Completion is the raw reply of a backend
type Completion struct {
	Text   string
	Tokens int
}

// completer performs a single backend call
type completer interface {
	complete(ctx context.Context, call Call) (Completion, error)
}

// engine implements the Provider behaviour shared by the local and cloud providers:
// caching, prompt selection, sample fallback and two-tier header extraction.
type engine struct {
	desc        types.ProviderDescriptor
	confidence  float64
	promptFiles []string
	backend     completer
	cache       *cache.Cache
	logger      *slog.Logger
}

// Descriptor returns provider name, model, folder and availability
func (e *engine) Descriptor() types.ProviderDescriptor {
	return e.desc
}

// IsAvailable reports the result of the availability check done at construction
func (e *engine) IsAvailable() bool {
	return e.desc.Available
}

// ModelFolder returns the sanitized output folder name
func (e *engine) ModelFolder() string {
	return e.desc.Folder
}

// GenerateContent produces one text section, consulting the cache first
func (e *engine) GenerateContent(ctx context.Context, req types.ContentRequest) (*types.ContentResponse, error) {
	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("unknown content type %q", req.ContentType)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if !e.desc.Available {
		return e.fallback(req, start, "provider unavailable: "+e.desc.Reason), nil
	}

	if e.cache != nil {
		if resp, ok := e.cache.Get(e.desc.Folder, req); ok {
			e.logger.Debug("cache hit", "provider", e.desc.Provider, "content_type", req.ContentType)
			return resp, nil
		}
	}

	system, prompt, err := contentPrompt(req, e.promptFiles)
	if err != nil {
		return e.fallback(req, start, err.Error()), nil
	}

	completion, err := e.backend.complete(ctx, Call{Kind: KindContent, System: system, Prompt: prompt})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		perr := &ProviderError{Provider: e.desc.Provider, Operation: "generate " + string(req.ContentType), Cause: err}
		e.logger.Warn("content generation failed, using sample content", "error", perr)
		return e.fallback(req, start, perr.Error()), nil
	}

	text := strings.TrimSpace(completion.Text)
	if text == "" {
		e.logger.Warn("empty provider response, using sample content", "provider", e.desc.Provider, "content_type", req.ContentType)
		return e.fallback(req, start, "empty response"), nil
	}

	tokens := completion.Tokens
	if tokens <= 0 {
		tokens = len(strings.Fields(text))
	}
	resp := &types.ContentResponse{
		ContentType:    req.ContentType,
		GeneratedText:  text,
		Confidence:     e.confidence,
		TokensUsed:     tokens,
		ProcessingTime: time.Since(start).Seconds(),
		Metadata: map[string]any{
			types.MetaProvider: e.desc.Provider,
			types.MetaModel:    e.desc.Model,
			types.MetaSource:   e.desc.Folder,
		},
	}

	if e.cache != nil {
		if err := e.cache.Set(e.desc.Folder, req, resp); err != nil {
			e.logger.Warn("failed to cache response", "error", err)
		}
	}
	return resp, nil
}

// fallback returns sample content annotated with the reason the provider could not serve the request
func (e *engine) fallback(req types.ContentRequest, start time.Time, reason string) *types.ContentResponse {
	resp := sampleResponse(req.ContentType, start)
	resp.Metadata[types.MetaProvider] = e.desc.Provider + types.FallbackSuffix
	resp.Metadata[types.MetaModel] = e.desc.Model
	resp.Metadata[types.MetaFallbackReason] = reason
	return resp
}

// GenerateAllCoverLetterContent produces the five cover letter sections
func (e *engine) GenerateAllCoverLetterContent(ctx context.Context, job, profile, company, position string) (map[types.ContentType]string, error) {
	return coverLetterTexts(ctx, e, job, profile, company, position)
}

// ExtractCompanyAndPosition reads the structured header and asks the backend only for what it lacks.
// With a company in the header only a missing position is requested; without one both are.
func (e *engine) ExtractCompanyAndPosition(ctx context.Context, jobText string) types.JobHeader {
	header := parsing.ParseJobHeader(jobText)

	if header.HasCompany() {
		if header.HasStelle || !e.desc.Available {
			return header
		}
		title, err := e.extractPosition(ctx, jobText)
		if err != nil {
			e.logger.Warn("position extraction failed", "provider", e.desc.Provider, "error", err)
			return header
		}
		header.SetPosition(title)
		return header
	}

	if !e.desc.Available {
		return header
	}

	reply, err := e.extractHeader(ctx, jobText)
	if err != nil {
		e.logger.Warn("company extraction failed", "provider", e.desc.Provider, "error", err)
		return header
	}
	if reply.CompanyName != "" {
		header.SetCompany(reply.CompanyName)
	}
	if reply.PositionTitle != "" && !header.HasStelle {
		header.SetPosition(reply.PositionTitle)
	}
	return header
}

func (e *engine) extractHeader(ctx context.Context, jobText string) (parsing.ExtractionReply, error) {
	system, err := prompts.Get(prompts.ExtractionFile, prompts.SystemKey)
	if err != nil {
		return parsing.ExtractionReply{}, err
	}
	completion, err := e.backend.complete(ctx, Call{
		Kind:   KindExtraction,
		System: system,
		Prompt: BuildExtractionPrompt(JobHeaderSchema(), jobText),
	})
	if err != nil {
		return parsing.ExtractionReply{}, &ProviderError{Provider: e.desc.Provider, Operation: "extract", Cause: err}
	}

	reply, err := parsing.ParseExtractionReply(CleanJSONBlock(completion.Text))
	if err != nil {
		reply, err = parsing.ParseExtractionReply(completion.Text)
	}
	return reply, err
}

func (e *engine) extractPosition(ctx context.Context, jobText string) (string, error) {
	system, err := prompts.Get(prompts.ExtractionFile, "position-system")
	if err != nil {
		return "", err
	}
	prompt, err := prompts.Render(prompts.ExtractionFile, "position", map[string]string{"JobDescription": jobText})
	if err != nil {
		return "", err
	}
	completion, err := e.backend.complete(ctx, Call{Kind: KindPosition, System: system, Prompt: prompt})
	if err != nil {
		return "", &ProviderError{Provider: e.desc.Provider, Operation: "extract position", Cause: err}
	}
	return parsing.ParsePositionReply(completion.Text)
}

// contentPrompt selects system and user prompt for a request from the first file defining them
func contentPrompt(req types.ContentRequest, files []string) (string, string, error) {
	system, err := prompts.First(prompts.SystemKey, files...)
	if err != nil {
		return "", "", err
	}
	template, err := prompts.First(string(req.ContentType), files...)
	if err != nil {
		return "", "", err
	}
	return system, prompts.Format(template, map[string]string{
		"JobDescription": req.JobDescription,
		"ProfileContent": req.ProfileContent,
		"CompanyName":    req.CompanyName,
		"PositionTitle":  req.PositionTitle,
	}), nil
}

// GenerateSet runs one request per content type against p.
// Calls are independent; the first hard error (cancellation) stops the set.
func GenerateSet(ctx context.Context, p Provider, base types.ContentRequest, contentTypes []types.ContentType) (map[types.ContentType]*types.ContentResponse, error) {
	out := make(map[types.ContentType]*types.ContentResponse, len(contentTypes))
	for _, ct := range contentTypes {
		req := base
		req.ContentType = ct
		resp, err := p.GenerateContent(ctx, req)
		if err != nil {
			return nil, err
		}
		out[ct] = resp
	}
	return out, nil
}

func coverLetterTexts(ctx context.Context, p Provider, job, profile, company, position string) (map[types.ContentType]string, error) {
	responses, err := GenerateSet(ctx, p, types.ContentRequest{
		JobDescription: job,
		ProfileContent: profile,
		CompanyName:    company,
		PositionTitle:  position,
	}, types.CoverLetterTypes())
	if err != nil {
		return nil, err
	}
	texts := make(map[types.ContentType]string, len(responses))
	for ct, resp := range responses {
		texts[ct] = resp.GeneratedText
	}
	return texts, nil
}

func descriptorFor(provider, model, displayName string) types.ProviderDescriptor {
	return types.ProviderDescriptor{
		Provider: provider,
		Model:    model,
		Folder:   FolderName(provider, displayName),
	}
}

// isTimeout reports whether err is a deadline overrun
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
