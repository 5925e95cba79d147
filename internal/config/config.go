package config

// Config represents the full application configuration.
type Config struct {
	Providers     map[string]ProviderConfig `yaml:"providers"`
	GitHub        GitHubConfig              `yaml:"github"`
	Review        ReviewConfig              `yaml:"review"`
	HTTP          HTTPConfig                `yaml:"http"`
	Git           GitConfig                 `yaml:"git"`
	Output        OutputConfig              `yaml:"output"`
	Store         StoreConfig               `yaml:"store"`
	Observability ObservabilityConfig       `yaml:"observability"`
}

// ProviderConfig configures a single model provider. The provider key
// selects the adapter: openai, azure, anthropic, or custom.
type ProviderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"apiKey"`

	// BaseURL overrides the provider endpoint. Required for the custom
	// provider, optional elsewhere.
	BaseURL string `yaml:"baseURL,omitempty"`

	// Deployment is the Azure OpenAI deployment name. Ignored by other
	// providers.
	Deployment string `yaml:"deployment,omitempty"`

	// HTTP overrides (optional, use global HTTP config if not set)
	Timeout    *string `yaml:"timeout,omitempty"`
	MaxRetries *int    `yaml:"maxRetries,omitempty"`
}

// GitHubConfig holds GitHub API access and posting settings.
type GitHubConfig struct {
	Token string `yaml:"token"`
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
}

// ReviewConfig configures the review pipeline, including the
// deduplication thresholds. The threshold defaults are empirically
// tuned; they are exposed here so deployments can adjust them without a
// rebuild.
type ReviewConfig struct {
	// Instructions are custom instructions included in all review prompts.
	Instructions string `yaml:"instructions"`

	// MaxCommentsPerFile caps how many accepted comments a single file
	// may receive. Zero means no cap.
	MaxCommentsPerFile int `yaml:"maxCommentsPerFile"`

	// Proximity is the dedup line-distance window.
	Proximity int `yaml:"proximity"`

	// KeywordThreshold, SimilarityThreshold and TemplateThreshold tune
	// the dedup fuzzy layers. Zero values mean "use the default".
	KeywordThreshold    float64 `yaml:"keywordThreshold"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	TemplateThreshold   float64 `yaml:"templateThreshold"`
}

// HTTPConfig holds global HTTP client settings.
type HTTPConfig struct {
	Timeout           string  `yaml:"timeout"`
	MaxRetries        int     `yaml:"maxRetries"`
	InitialBackoff    string  `yaml:"initialBackoff"`
	MaxBackoff        string  `yaml:"maxBackoff"`
	BackoffMultiplier float64 `yaml:"backoffMultiplier"`
}

type GitConfig struct {
	RepositoryDir string `yaml:"repositoryDir"`
}

type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// StoreConfig configures the optional run-history store. The review
// pipeline itself is stateless; the store is an audit log only.
type StoreConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// ObservabilityConfig configures logging.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures request/response logging.
type LoggingConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Level         string `yaml:"level"`         // debug, info, error
	Format        string `yaml:"format"`        // json, human; empty picks by terminal
	RedactAPIKeys bool   `yaml:"redactAPIKeys"` // Redact API keys in logs
}
