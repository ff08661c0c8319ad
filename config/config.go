package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	Development = "development"
	Production  = "production"

	ParserProse = "prose"
	ParserSpacy = "spacy"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	CORS       CORSConfig       `yaml:"cors"`
	Parser     ParserConfig     `yaml:"parser"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Chunking   ChunkingConfig   `yaml:"chunking"`
	Extraction ExtractionConfig `yaml:"extraction"`
}

type AppConfig struct {
	Env            string        `yaml:"env"`
	Port           int           `yaml:"port"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type ParserConfig struct {
	Backend  string        `yaml:"backend"`
	SpacyURL string        `yaml:"spacy_url"`
	Model    string        `yaml:"model"`
	Timeout  time.Duration `yaml:"timeout"`
}

type EmbeddingConfig struct {
	URL       string        `yaml:"url"`
	Model     string        `yaml:"model"`
	Timeout   time.Duration `yaml:"timeout"`
	BatchSize int           `yaml:"batch_size"`
	Workers   int           `yaml:"workers"`
	CachePath string        `yaml:"cache_path"`
}

type ChunkingConfig struct {
	ChunkSize     int    `yaml:"chunk_size"`
	ChunkOverlap  int    `yaml:"chunk_overlap"`
	TokenizerFile string `yaml:"tokenizer_file"`
}

type ExtractionConfig struct {
	TopN              int     `yaml:"top_n"`
	Diversity         float64 `yaml:"diversity"`
	MinDF             int     `yaml:"min_df"`
	Threshold         float64 `yaml:"threshold"`
	MaxKeywords       int     `yaml:"max_keywords"`
	LowConfidenceKeep int     `yaml:"low_confidence_keep"`
	FallbackTopN      int     `yaml:"fallback_top_n"`
	CacheSize         int     `yaml:"cache_size"`
	StemVocabulary    bool    `yaml:"stem_vocabulary"`
}

func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:            Development,
			Port:           5001,
			RequestTimeout: 60 * time.Second,
			MaxUploadBytes: 10 << 20,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:8080", "http://frontend:8080"},
		},
		Parser: ParserConfig{
			Backend:  ParserProse,
			SpacyURL: "http://localhost:8000",
			Model:    "en",
			Timeout:  30 * time.Second,
		},
		Embedding: EmbeddingConfig{
			URL:       "http://localhost:8080",
			Model:     "all-MiniLM-L6-v2",
			Timeout:   30 * time.Second,
			BatchSize: 32,
			Workers:   4,
		},
		Chunking: ChunkingConfig{
			ChunkSize:    1000,
			ChunkOverlap: 100,
		},
		Extraction: ExtractionConfig{
			TopN:              10,
			Diversity:         0.3,
			MinDF:             1,
			Threshold:         0.05,
			MaxKeywords:       5,
			LowConfidenceKeep: 2,
			FallbackTopN:      5,
			CacheSize:         1000,
			StemVocabulary:    true,
		},
	}
}

// Load layers defaults, .env, an optional YAML file and environment
// variables, in that order, then validates the result. An empty path falls
// back to $KEYPHRASE_CONFIG.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("KEYPHRASE_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.App.Env = strings.ToLower(v)
	}
	if v := os.Getenv("APP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid APP_PORT %q: %w", v, err)
		}
		c.App.Port = port
	}
	setString(&c.App.LogLevel, "LOG_LEVEL")
	setString(&c.Parser.Backend, "PARSER_BACKEND")
	setString(&c.Parser.SpacyURL, "SPACY_URL")
	setString(&c.Embedding.URL, "EMBEDDING_URL")
	setString(&c.Embedding.Model, "EMBEDDING_MODEL")
	setString(&c.Embedding.CachePath, "EMBEDDING_CACHE_PATH")
	setString(&c.Chunking.TokenizerFile, "TOKENIZER_FILE_PATH")
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORS.AllowedOrigins = origins
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env != Development && c.App.Env != Production {
		errs = append(errs, fmt.Errorf("app.env must be %q or %q, got %q", Development, Production, c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port out of range: %d", c.App.Port))
	}
	if c.App.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("app.max_upload_bytes must be positive"))
	}
	switch c.Parser.Backend {
	case ParserProse:
	case ParserSpacy:
		if c.Parser.SpacyURL == "" {
			errs = append(errs, errors.New("parser.spacy_url is required for the spacy backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown parser backend %q", c.Parser.Backend))
	}
	if c.Embedding.URL == "" {
		errs = append(errs, errors.New("embedding.url is required"))
	}
	if c.Embedding.BatchSize <= 0 || c.Embedding.Workers <= 0 {
		errs = append(errs, errors.New("embedding.batch_size and embedding.workers must be positive"))
	}
	if c.Chunking.ChunkSize <= 0 || c.Chunking.ChunkOverlap < 0 || c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		errs = append(errs, fmt.Errorf("invalid chunking window: size %d overlap %d", c.Chunking.ChunkSize, c.Chunking.ChunkOverlap))
	}

	e := c.Extraction
	if e.TopN <= 0 || e.MaxKeywords <= 0 || e.FallbackTopN <= 0 || e.LowConfidenceKeep <= 0 {
		errs = append(errs, errors.New("extraction limits must be positive"))
	}
	if e.Diversity < 0 || e.Diversity > 1 {
		errs = append(errs, fmt.Errorf("extraction.diversity must be in [0,1], got %v", e.Diversity))
	}
	if e.MinDF < 1 {
		errs = append(errs, errors.New("extraction.min_df must be at least 1"))
	}
	if e.CacheSize <= 0 {
		errs = append(errs, errors.New("extraction.cache_size must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Env == Production
}
