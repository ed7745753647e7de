// Package config holds the assistant's configuration: the corpus map plus
// chunking, retrieval and service parameters.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/dRAOUF1/RAG-Assistant/rag"
)

const (
	DefaultIndexPath = "books_index.db"
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
)

type Config struct {
	// Books maps a display title to the source file path.
	Books     map[string]string `yaml:"books"`
	IndexPath string            `yaml:"index_path"`
	Chunking  ChunkingConfig    `yaml:"chunking"`
	Retrieval RetrievalConfig   `yaml:"retrieval"`
	Service   ServiceConfig     `yaml:"service"`
}

type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

type RetrievalConfig struct {
	TopK                int     `yaml:"top_k"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	ContextBudget       int     `yaml:"context_budget"`
	AllowNoContext      bool    `yaml:"allow_no_context"`
}

type ServiceConfig struct {
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	EmbeddingModel string  `yaml:"embedding_model"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	Concurrency    int     `yaml:"concurrency"`
	EmbedRate      float64 `yaml:"embed_rate"`
}

func Default() *Config {
	return &Config{
		Books:     map[string]string{},
		IndexPath: DefaultIndexPath,
		Chunking: ChunkingConfig{
			Size:    rag.DefaultChunkSize,
			Overlap: rag.DefaultChunkOverlap,
		},
		Retrieval: RetrievalConfig{
			TopK:          rag.DefaultTopK,
			ContextBudget: rag.DefaultContextBudget,
		},
		Service: ServiceConfig{
			APIKeyEnv: DefaultAPIKeyEnv,
		},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return c, nil
}

// APIKey resolves the service credential from the configured environment
// variable.
func (c *Config) APIKey() (string, error) {
	env := c.Service.APIKeyEnv
	if env == "" {
		env = DefaultAPIKeyEnv
	}
	key := os.Getenv(env)
	if key == "" {
		return "", errors.Errorf("%s is not set", env)
	}
	return key, nil
}

// SourceIDs translates display titles to document ids (source file base
// names). Unknown titles are returned for the caller to report.
func (c *Config) SourceIDs(titles []string) (ids, unknown []string) {
	for _, title := range titles {
		path, ok := c.Books[title]
		if !ok {
			unknown = append(unknown, title)
			continue
		}
		ids = append(ids, filepath.Base(path))
	}
	return ids, unknown
}
