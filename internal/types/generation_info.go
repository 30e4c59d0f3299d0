package types

// GenerationInfo is the document written to generation_info.json in each provider folder
type GenerationInfo struct {
	Generation  RunInfo           `json:"generation_info"`
	ClientStats ClientStats       `json:"ai_client_stats"`
	Content     ContentStats      `json:"generated_content"`
	Sections    map[string]string `json:"content,omitempty"`
}

// RunInfo describes the run that produced a provider folder
type RunInfo struct {
	RunID        string `json:"run_id"`
	Timestamp    string `json:"timestamp"` // RFC3339
	ClientFolder string `json:"client_folder"`
	OutputDir    string `json:"output_dir"`
	AIProvider   string `json:"ai_provider"`
	AIModel      string `json:"ai_model"`
	ProfileFile  string `json:"profile_file"`
	JobFile      string `json:"job_file"`
	ProfileHash  string `json:"profile_hash,omitempty"`
	JobHash      string `json:"job_hash,omitempty"`
	Company      string `json:"company,omitempty"`
	Position     string `json:"position,omitempty"`
}

// ClientStats summarizes the provider used for a folder
type ClientStats struct {
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	Folder       string `json:"folder"`
	Available    bool   `json:"available"`
	CacheEnabled bool   `json:"cache_enabled"`
	CachedItems  int    `json:"cached_items"`
	FallbackUsed bool   `json:"fallback_used"`
	TokensUsed   int    `json:"tokens_used"`
}

// ContentStats holds per-section size statistics
type ContentStats struct {
	Sections       map[string]SectionStats `json:"sections"`
	GenerationTime string                  `json:"generation_time"`
}

// SectionStats holds the size of one generated section
type SectionStats struct {
	Length int `json:"length"`
	Words  int `json:"words"`
}
