package config

import (
	"strings"
	"time"
)

// Config is the full inkwell configuration.
type Config struct {
	LLM      LLMConfig      `mapstructure:"llm" yaml:"llm"`
	Chapters ChaptersConfig `mapstructure:"chapters" yaml:"chapters"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Notify   NotifyConfig   `mapstructure:"notify" yaml:"notify"`
	Worker   WorkerConfig   `mapstructure:"worker" yaml:"worker"`
}

// LLMConfig configures the completion provider.
type LLMConfig struct {
	APIKey      string  `mapstructure:"api_key" yaml:"api_key"`
	BaseURL     string  `mapstructure:"base_url" yaml:"base_url"`
	Model       string  `mapstructure:"model" yaml:"model"`
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// ResolvedAPIKey expands any ${ENV_VAR} reference in the API key.
func (c LLMConfig) ResolvedAPIKey() string {
	return ResolveEnvVars(c.APIKey)
}

// ChaptersConfig controls chapter generation.
type ChaptersConfig struct {
	// TargetCount is the exact number of chapters requested from the
	// outline prompt and used as the generation bound.
	TargetCount int `mapstructure:"target_count" yaml:"target_count"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// StorageConfig selects and configures the artifact store.
type StorageConfig struct {
	// Provider is "local" or "azure".
	Provider string       `mapstructure:"provider" yaml:"provider"`
	Local    LocalStorage `mapstructure:"local" yaml:"local"`
	Azure    AzureStorage `mapstructure:"azure" yaml:"azure"`
}

// LocalStorage writes artifacts to a directory on disk.
type LocalStorage struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// AzureStorage uploads artifacts to an Azure Blob Storage container.
type AzureStorage struct {
	ConnectionString string `mapstructure:"connection_string" yaml:"connection_string"`
	Container        string `mapstructure:"container" yaml:"container"`
}

// NotifyConfig holds the optional notification channels.
type NotifyConfig struct {
	Email   EmailConfig   `mapstructure:"email" yaml:"email"`
	Webhook WebhookConfig `mapstructure:"webhook" yaml:"webhook"`
}

// EmailConfig is the SMTP channel. Configuration is all-or-nothing: any
// missing field disables the channel.
type EmailConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	To       string `mapstructure:"to" yaml:"to"`
}

// Configured reports whether every required SMTP field is present.
func (c EmailConfig) Configured() bool {
	return c.Host != "" && c.User != "" && c.ResolvedPassword() != "" && c.To != ""
}

// ResolvedPassword expands ${ENV_VAR} references and strips stray quotes
// that tend to sneak into copy-pasted app passwords.
func (c EmailConfig) ResolvedPassword() string {
	p := strings.TrimSpace(ResolveEnvVars(c.Password))
	return strings.Trim(p, `"'`)
}

// WebhookConfig is the chat webhook channel.
type WebhookConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// Configured reports whether the webhook URL is set.
func (c WebhookConfig) Configured() bool {
	return ResolveEnvVars(c.URL) != ""
}

// WorkerConfig controls the discovery worker.
type WorkerConfig struct {
	Limit    int           `mapstructure:"limit" yaml:"limit"`
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
	// Delay is the fixed pause between books within one pass.
	Delay time.Duration `mapstructure:"delay" yaml:"delay"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:      "${OPENAI_API_KEY}",
			Model:       "gpt-4.1-mini",
			Temperature: 0.7,
		},
		Chapters: ChaptersConfig{
			TargetCount: 5,
		},
		Database: DatabaseConfig{
			Path: "inkwell.db",
		},
		Storage: StorageConfig{
			Provider: "local",
			Local:    LocalStorage{Dir: "output"},
			Azure: AzureStorage{
				ConnectionString: "${AZURE_STORAGE_CONNECTION_STRING}",
				Container:        "books-output",
			},
		},
		Notify: NotifyConfig{
			Email: EmailConfig{
				Port:     587,
				Password: "${SMTP_PASS}",
			},
			Webhook: WebhookConfig{
				URL: "${CHAT_WEBHOOK_URL}",
			},
		},
		Worker: WorkerConfig{
			Limit:    5,
			Interval: 60 * time.Second,
			Delay:    2 * time.Second,
		},
	}
}
