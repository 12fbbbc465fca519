package config

import "fmt"

// Config represents the entire YAML configuration.
type Config struct {
	Model    string `yaml:"model" json:"model"`
	Provider string `yaml:"provider" json:"provider"`
	Timezone string `yaml:"timezone" json:"timezone"`

	Agent struct {
		MaxSteps    int     `yaml:"maxSteps" json:"maxSteps"`
		Temperature float64 `yaml:"temperature" json:"temperature"`
		Debug       bool    `yaml:"debug" json:"debug"`
	} `yaml:"agent" json:"agent"`

	Evidence struct {
		Enabled        bool    `yaml:"enabled" json:"enabled"`
		EmbeddingModel string  `yaml:"embeddingModel" json:"embeddingModel"`
		TopK           int     `yaml:"topK" json:"topK"`
		Threshold      float64 `yaml:"threshold" json:"threshold"`
	} `yaml:"evidence" json:"evidence"`

	FreshPrompt struct {
		CheckPremise bool `yaml:"checkPremise" json:"checkPremise"`
	} `yaml:"freshprompt" json:"freshprompt"`

	Eval struct {
		Model string `yaml:"model" json:"model"`
	} `yaml:"eval" json:"eval"`
}

// ConfigProvider is an interface for loading a configuration.
type ConfigProvider interface {
	LoadConfig(path string) (*Config, error)
}

// Global references
var (
	provider     ConfigProvider
	loadedConfig *Config
)

// SetProvider sets the configuration provider.
func SetProvider(p ConfigProvider) {
	provider = p
}

// Load uses the current provider to load configuration from the given path.
func Load(path string) error {
	if provider == nil {
		return fmt.Errorf("no config provider set")
	}
	cfg, err := provider.LoadConfig(path)
	if err != nil {
		return err
	}
	loadedConfig = cfg
	return nil
}

func GetLoadedConfig() *Config {
	return loadedConfig
}

// Defaults returns the built-in configuration used when no file is loaded.
func Defaults() *Config {
	cfg := &Config{
		Model:    "gpt-4o",
		Provider: "serper",
		Timezone: "America/Chicago",
	}
	cfg.Agent.MaxSteps = 8
	cfg.Agent.Temperature = 0.0
	cfg.Evidence.EmbeddingModel = "text-embedding-3-small"
	cfg.Evidence.TopK = 8
	cfg.Evidence.Threshold = 0.2
	cfg.FreshPrompt.CheckPremise = true
	cfg.Eval.Model = "gpt-4o"
	return cfg
}

// Current returns the loaded configuration, falling back to Defaults.
func Current() *Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return Defaults()
}
