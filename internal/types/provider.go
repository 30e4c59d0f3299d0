package types

// ProviderState is the outcome of constructing and probing a provider
type ProviderState string

const (
	StateAvailable   ProviderState = "available"
	StateUnavailable ProviderState = "unavailable"
	StateError       ProviderState = "error"
	StateSkipped     ProviderState = "skipped"
)

// ProviderDescriptor identifies a provider and its output folder
type ProviderDescriptor struct {
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	Folder    string `json:"folder"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ProviderStatus is one row of the factory report
type ProviderStatus struct {
	Provider string        `json:"provider"`
	Model    string        `json:"model,omitempty"`
	Folder   string        `json:"folder,omitempty"`
	State    ProviderState `json:"state"`
	Reason   string        `json:"reason,omitempty"`
}
