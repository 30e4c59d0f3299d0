// Package docs writes the per-folder documentation of a run: generation_info.json,
// README.md and the regeneration scripts.
package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/bewerbung-generator/internal/schemas"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

// Output file names
const (
	InfoFile   = "generation_info.json"
	ReadmeFile = "README.md"
	ScriptSh   = "regenerate.sh"
	ScriptBat  = "regenerate.bat"
)

// InfoInput collects what a provider pass knows about itself
type InfoInput struct {
	RunID       string
	Timestamp   time.Time
	OutputDir   string
	Provider    types.ProviderDescriptor
	ProfileFile string
	JobFile     string
	ProfileHash string
	JobHash     string
	Header      types.JobHeader

	Responses    map[types.ContentType]*types.ContentResponse
	CacheEnabled bool
	Elapsed      time.Duration
}

// BuildInfo assembles the generation_info.json document for one provider folder
func BuildInfo(in InfoInput) types.GenerationInfo {
	info := types.GenerationInfo{
		Generation: types.RunInfo{
			RunID:        in.RunID,
			Timestamp:    in.Timestamp.Format(time.RFC3339),
			ClientFolder: in.Provider.Folder,
			OutputDir:    in.OutputDir,
			AIProvider:   in.Provider.Provider,
			AIModel:      in.Provider.Model,
			ProfileFile:  in.ProfileFile,
			JobFile:      in.JobFile,
			ProfileHash:  in.ProfileHash,
			JobHash:      in.JobHash,
		},
		ClientStats: types.ClientStats{
			Provider:     in.Provider.Provider,
			Model:        in.Provider.Model,
			Folder:       in.Provider.Folder,
			Available:    in.Provider.Available,
			CacheEnabled: in.CacheEnabled,
		},
		Content: types.ContentStats{
			Sections:       make(map[string]types.SectionStats, len(in.Responses)),
			GenerationTime: fmt.Sprintf("%.2fs", in.Elapsed.Seconds()),
		},
		Sections: make(map[string]string, len(in.Responses)),
	}
	if in.Header.HasCompany() {
		info.Generation.Company = in.Header.CompanyName
	}
	if in.Header.PositionTitle != types.PlaceholderPosition {
		info.Generation.Position = in.Header.PositionTitle
	}

	for ct, resp := range in.Responses {
		if resp == nil {
			continue
		}
		info.Content.Sections[string(ct)] = Stats(resp.GeneratedText)
		info.Sections[string(ct)] = resp.GeneratedText
		info.ClientStats.TokensUsed += resp.TokensUsed
		if cached, _ := resp.Metadata[types.MetaCached].(bool); cached {
			info.ClientStats.CachedItems++
		}
		if resp.IsFallback() {
			info.ClientStats.FallbackUsed = true
		}
	}
	return info
}

// Stats counts characters and words of a text
func Stats(text string) types.SectionStats {
	return types.SectionStats{
		Length: utf8.RuneCountInString(text),
		Words:  len(strings.Fields(text)),
	}
}

// WriteInfo validates info and writes it to dir/generation_info.json
func WriteInfo(dir string, info types.GenerationInfo) (string, error) {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal generation info: %w", err)
	}
	if err := schemas.ValidateDocument(schemas.GenerationInfoSchema, data); err != nil {
		return "", err
	}
	path := filepath.Join(dir, InfoFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write generation info: %w", err)
	}
	return path, nil
}

// ReadInfo loads and validates a generation_info.json file
func ReadInfo(path string) (*types.GenerationInfo, error) {
	if err := schemas.ValidateFile(schemas.GenerationInfoSchema, path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation info: %w", err)
	}
	var info types.GenerationInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse generation info: %w", err)
	}
	return &info, nil
}
