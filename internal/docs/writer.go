package docs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"text/template"

	"github.com/jonathan/bewerbung-generator/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("docs").
	Funcs(template.FuncMap{"shquote": shquote}).
	ParseFS(templateFS, "templates/*.tmpl"))

// shquote quotes s as a single POSIX shell word
func shquote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

var providerSetup = map[string]string{
	"claude": "API-Schlüssel unter https://console.anthropic.com/ anlegen und in `.env.local` eintragen:\n\n" +
		"```bash\necho \"ANTHROPIC_API_KEY=sk-...\" >> .env.local\n```",
	"llama": "Ollama installieren, starten und das Modell laden:\n\n" +
		"```bash\nollama serve\nollama pull llama3.2:3b\n```",
	"sample": "Keine Einrichtung nötig. Es werden eingebaute Beispielinhalte verwendet.",
}

// EnvVar is one exported variable of the regeneration instructions
type EnvVar struct {
	Key   string
	Value string
}

// Writer produces README.md and the regeneration scripts of a provider folder.
type Writer struct {
	baseDir string
}

// NewWriter creates a writer for the project rooted at baseDir
func NewWriter(baseDir string) *Writer {
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	return &Writer{baseDir: baseDir}
}

type readmeData struct {
	Info         types.GenerationInfo
	Env          []EnvVar
	BaseDir      string
	Method       string
	Rows         []row
	TotalLength  int
	TotalWords   int
	Completeness int
	Setup        string
	OS           string
	GoVersion    string
	Hostname     string
}

type row struct {
	Name   string
	Length int
	Words  int
}

// Env returns the settings that reproduce the run described by info
func Env(info types.GenerationInfo) []EnvVar {
	env := []EnvVar{
		{Key: "AI_PROVIDER", Value: info.ClientStats.Provider},
		{Key: "GENERATE_ALL_PROVIDERS", Value: "false"},
		{Key: "OUTPUT_STRUCTURE", Value: "by_model"},
		{Key: "INCLUDE_GENERATION_METADATA", Value: "true"},
	}
	switch info.ClientStats.Provider {
	case "llama":
		env = append(env, EnvVar{Key: "LLAMA_MODEL", Value: info.ClientStats.Model})
	case "claude":
		env = append(env, EnvVar{Key: "CLAUDE_MODEL", Value: info.ClientStats.Model})
	}
	return env
}

// WriteReadme writes README.md into dir
func (w *Writer) WriteReadme(dir string, info types.GenerationInfo) (string, error) {
	data := readmeData{
		Info:      info,
		Env:       Env(info),
		BaseDir:   w.baseDir,
		Method:    method(info.ClientStats),
		Setup:     providerSetup[info.ClientStats.Provider],
		OS:        runtime.GOOS + "/" + runtime.GOARCH,
		GoVersion: runtime.Version(),
	}
	if host, err := os.Hostname(); err == nil {
		data.Hostname = host
	}

	names := make([]string, 0, len(info.Content.Sections))
	for name := range info.Content.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	filled := 0
	for _, name := range names {
		s := info.Content.Sections[name]
		data.Rows = append(data.Rows, row{Name: name, Length: s.Length, Words: s.Words})
		data.TotalLength += s.Length
		data.TotalWords += s.Words
	}
	for _, ct := range types.CoverLetterTypes() {
		if info.Content.Sections[string(ct)].Length > 0 {
			filled++
		}
	}
	data.Completeness = filled * 100 / len(types.CoverLetterTypes())

	return w.write(dir, ReadmeFile, "README.md.tmpl", data, 0644)
}

// WriteScripts writes regenerate.sh (executable) and regenerate.bat into dir
func (w *Writer) WriteScripts(dir string, info types.GenerationInfo) ([]string, error) {
	data := readmeData{Info: info, Env: Env(info), BaseDir: w.baseDir}

	sh, err := w.write(dir, ScriptSh, "regenerate.sh.tmpl", data, 0755)
	if err != nil {
		return nil, err
	}
	bat, err := w.write(dir, ScriptBat, "regenerate.bat.tmpl", data, 0644)
	if err != nil {
		return nil, err
	}
	return []string{sh, bat}, nil
}

func (w *Writer) write(dir, name, tmpl string, data readmeData, perm os.FileMode) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", name, err)
	}
	if err := templates.ExecuteTemplate(f, tmpl, data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	// OpenFile only applies perm on creation
	if err := os.Chmod(path, perm); err != nil {
		return "", err
	}
	return path, nil
}

func method(stats types.ClientStats) string {
	switch {
	case stats.Provider == "sample":
		return "Beispielinhalte"
	case stats.FallbackUsed:
		return "KI-generiert, teilweise Beispielinhalte"
	case stats.CachedItems > 0:
		return "KI-generiert, teilweise aus dem Cache"
	default:
		return "KI-generiert"
	}
}
