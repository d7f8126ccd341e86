package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible
// embeddings endpoint.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// GeneratorConfig configures the chat-completions collaborator.
type GeneratorConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// RetrievalConfig bounds retrieval and prompt construction.
type RetrievalConfig struct {
	TopK            int `yaml:"top_k"`
	MaxContextDocs  int `yaml:"max_context_docs"`
	DocCharBudget   int `yaml:"doc_char_budget"`
	ContextCharCap  int `yaml:"context_char_cap"`
	PromptCharCap   int `yaml:"prompt_char_cap"`
	AnswerMaxTokens int `yaml:"answer_max_tokens"`
}

// EstimatorConfig holds the per-unit cost constants for material
// estimation. Zero values fall back to the standard constants.
type EstimatorConfig struct {
	CementPerCubicMeterRs float64 `yaml:"cement_per_cubic_meter_rs"`
	BrickPerUnitRs        float64 `yaml:"brick_per_unit_rs"`
	SwitchgearLineupCr    float64 `yaml:"switchgear_lineup_cr"`
	TransformerUnitCr     float64 `yaml:"transformer_unit_cr"`
	CoolingUnitCr         float64 `yaml:"cooling_unit_cr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Estimator   EstimatorConfig   `yaml:"estimator"`
	CatalogPath string            `yaml:"catalog_path"`
	KnownPlaces []string          `yaml:"known_places"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then
// ~/.config/vendorrag/config.yaml. If neither exists, it writes defaults
// to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vendorrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Embedder:    EmbedderConfig{Type: "tfidf"},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Generator: GeneratorConfig{
			APIKeyEnv: "GROQ_API_KEY",
		},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
		if cfg.Embedder.OpenAI.TimeoutSecs == 0 {
			cfg.Embedder.OpenAI.TimeoutSecs = 30
		}
	}
	if cfg.Generator.BaseURL == "" {
		cfg.Generator.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = "llama-3.3-70b-versatile"
	}
	if cfg.Generator.Temperature == 0 {
		cfg.Generator.Temperature = 0.7
	}
	if cfg.Generator.TimeoutSecs == 0 {
		cfg.Generator.TimeoutSecs = 60
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 10
	}
	if cfg.Retrieval.MaxContextDocs == 0 {
		cfg.Retrieval.MaxContextDocs = 3
	}
	if cfg.Retrieval.DocCharBudget == 0 {
		cfg.Retrieval.DocCharBudget = 500
	}
	if cfg.Retrieval.ContextCharCap == 0 {
		cfg.Retrieval.ContextCharCap = 3000
	}
	if cfg.Retrieval.PromptCharCap == 0 {
		cfg.Retrieval.PromptCharCap = 6000
	}
	if cfg.Retrieval.AnswerMaxTokens == 0 {
		cfg.Retrieval.AnswerMaxTokens = 2048
	}
	if cfg.Estimator.CementPerCubicMeterRs == 0 {
		cfg.Estimator.CementPerCubicMeterRs = 6000
	}
	if cfg.Estimator.BrickPerUnitRs == 0 {
		cfg.Estimator.BrickPerUnitRs = 0.08
	}
	if cfg.Estimator.SwitchgearLineupCr == 0 {
		cfg.Estimator.SwitchgearLineupCr = 0.2
	}
	if cfg.Estimator.TransformerUnitCr == 0 {
		cfg.Estimator.TransformerUnitCr = 6.67
	}
	if cfg.Estimator.CoolingUnitCr == 0 {
		cfg.Estimator.CoolingUnitCr = 0.3
	}
	if len(cfg.KnownPlaces) == 0 {
		cfg.KnownPlaces = []string{"Navi Mumbai"}
	}
}
