package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	LLM       LLMConfig       `yaml:"llm"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Stats     StatsConfig     `yaml:"stats"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
	Version      string        `yaml:"version"`
}

// LLMConfig contains the remote chat-completion settings. An empty APIKey
// disables the remote tier.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxTokens   int           `yaml:"maxTokens"`
	Timeout     time.Duration `yaml:"timeout"`
	Persona     string        `yaml:"persona"`
	Guidelines  string        `yaml:"guidelines"`
}

// KnowledgeConfig selects where the knowledge document is loaded from.
type KnowledgeConfig struct {
	// Path to a YAML document; empty uses the embedded café data.
	Path     string         `yaml:"path"`
	Venue    string         `yaml:"venue"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"maxConns"`
}

// StatsConfig controls keyword analytics storage.
type StatsConfig struct {
	Limit  int          `yaml:"limit"`
	Valkey ValkeyConfig `yaml:"valkey"`
}

// ValkeyConfig contains connection information for the counters.
type ValkeyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// RemoteEnabled reports whether a credential for the remote tier is set.
func (c LLMConfig) RemoteEnabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// Load reads .env, then a YAML file, then environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Address = ":" + v
		}
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxTokens = parsed
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.Timeout = parsed
		}
	}
	if v := os.Getenv("KNOWLEDGE_PATH"); v != "" {
		cfg.Knowledge.Path = v
	}
	if v := os.Getenv("KNOWLEDGE_VENUE"); v != "" {
		cfg.Knowledge.Venue = v
	}
	if v := os.Getenv("KNOWLEDGE_POSTGRES_DSN"); v != "" {
		cfg.Knowledge.Postgres.DSN = v
	}
	if v := os.Getenv("STATS_LIMIT"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Stats.Limit = parsed
		}
	}
	if v := os.Getenv("STATS_VALKEY_ENABLED"); v != "" {
		cfg.Stats.Valkey.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("STATS_VALKEY_ADDR"); v != "" {
		cfg.Stats.Valkey.Addr = v
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 40 * time.Second,
			Version:      "2.0.0",
		},
		LLM: LLMConfig{
			Model:       "llama3-8b-8192",
			Temperature: 0.7,
			MaxTokens:   300,
			Timeout:     20 * time.Second,
			Persona:     "Bạn là trợ lý AI của quán Cà Phê Bụi.\nHãy trả lời câu hỏi của khách hàng dựa trên thông tin sau:",
			Guidelines:  "Trả lời ngắn gọn, thân thiện, bằng tiếng Việt.\nNếu không biết thông tin, hãy lịch sự nói không rõ và đề nghị khách liên hệ trực tiếp.",
		},
		Knowledge: KnowledgeConfig{
			Venue: "Cà Phê Bụi",
			Postgres: PostgresConfig{
				MaxConns: 2,
			},
		},
		Stats: StatsConfig{
			Limit: 10,
			Valkey: ValkeyConfig{
				Prefix: "cafebui",
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.maxTokens must be positive")
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm.timeout cannot be negative")
	}
	if strings.TrimSpace(c.Knowledge.Postgres.DSN) != "" && strings.TrimSpace(c.Knowledge.Venue) == "" {
		return errors.New("knowledge.venue cannot be empty when postgres is configured")
	}
	if c.Stats.Limit < 0 {
		return errors.New("stats.limit cannot be negative")
	}
	if c.Stats.Valkey.Enabled && strings.TrimSpace(c.Stats.Valkey.Addr) == "" {
		return errors.New("stats.valkey.addr cannot be empty when valkey stats are enabled")
	}
	return nil
}
