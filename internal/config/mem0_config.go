package config

// Mem0Config identifies the upstream mem0 API and the credentials used
// against it. The API key is only ever read from the environment or a config
// file, never logged.
type Mem0Config struct {
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty" validate:"required"`
	Host      string `json:"host,omitempty" yaml:"host,omitempty" validate:"required,url"`
	OrgID     string `json:"org_id,omitempty" yaml:"org_id,omitempty"`
	ProjectID string `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	// Memories are stored and queried under this user id.
	UserID string `json:"user_id,omitempty" yaml:"user_id,omitempty" validate:"required"`
	// Page size used when listing all memories.
	PageSize int `json:"page_size,omitempty" yaml:"page_size,omitempty" validate:"gt=0"`
}

// NewDefaultMem0Config creates default mem0 API configuration. The API key
// has no default and must come from MEM0_API_KEY or the config file.
func NewDefaultMem0Config() Mem0Config {
	return Mem0Config{
		Host:     DefaultAPIHost,
		UserID:   DefaultUserID,
		PageSize: DefaultSearchPageSize,
	}
}
