package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider  string `toml:"provider"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	MaxTokens int    `toml:"max_tokens"`
}

// ModelsConfig maps the four role slots to model names. The iteration order
// of Ordered matters: role assignment tie-breaks follow it.
type ModelsConfig struct {
	Solver1 string `toml:"solver_1"`
	Solver2 string `toml:"solver_2"`
	Solver3 string `toml:"solver_3"`
	Judge   string `toml:"judge"`
}

type SlotModel struct {
	Slot  string
	Model string
}

func (m ModelsConfig) Ordered() []SlotModel {
	return []SlotModel{
		{Slot: "solver_1", Model: m.Solver1},
		{Slot: "solver_2", Model: m.Solver2},
		{Slot: "solver_3", Model: m.Solver3},
		{Slot: "judge", Model: m.Judge},
	}
}

type TemperaturesConfig struct {
	Solver   float64 `toml:"solver"`
	Reviewer float64 `toml:"reviewer"`
	Judge    float64 `toml:"judge"`
}

type RetryConfig struct {
	MaxAttempts         int     `toml:"max_attempts"`
	InitialDelaySeconds float64 `toml:"initial_delay_seconds"`
}

type PathsConfig struct {
	ProblemsFile   string `toml:"problems_file"`
	RawOutputsDir  string `toml:"raw_outputs_dir"`
	ResultsDir     string `toml:"results_dir"`
	CheckpointFile string `toml:"checkpoint_file"`
}

// PromptsConfig holds the user prompt templates for each stage. Empty fields
// fall back to the built-in defaults in prompts.go.
type PromptsConfig struct {
	RoleAssessment string `toml:"role_assessment"`
	Solver         string `toml:"solver"`
	Reviewer       string `toml:"reviewer"`
	Refiner        string `toml:"refiner"`
	Judge          string `toml:"judge"`
}

// GraphConfig enables the optional export of batch results into a
// Memgraph/Neo4j instance. Empty URI disables it.
type GraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ConcurrencyConfig struct {
	StageCalls int `toml:"stage_calls"`
}

type Config struct {
	LLM          LLMConfig          `toml:"llm"`
	Models       ModelsConfig       `toml:"models"`
	Temperatures TemperaturesConfig `toml:"temperatures"`
	Retry        RetryConfig        `toml:"retry"`
	Paths        PathsConfig        `toml:"paths"`
	Prompts      PromptsConfig      `toml:"prompts"`
	Graph        GraphConfig        `toml:"graph"`
	Concurrency  ConcurrencyConfig  `toml:"concurrency"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "openai"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.Models.Solver1 == "" {
		c.Models.Solver1 = "gpt-4"
	}
	if c.Models.Solver2 == "" {
		c.Models.Solver2 = "gpt-4-turbo-preview"
	}
	if c.Models.Solver3 == "" {
		c.Models.Solver3 = "gpt-4"
	}
	if c.Models.Judge == "" {
		c.Models.Judge = "gpt-4-turbo-preview"
	}
	if c.Temperatures.Solver == 0 {
		c.Temperatures.Solver = 0.7
	}
	if c.Temperatures.Reviewer == 0 {
		c.Temperatures.Reviewer = 0.5
	}
	if c.Temperatures.Judge == 0 {
		c.Temperatures.Judge = 0.3
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}
	if c.Retry.InitialDelaySeconds == 0 {
		c.Retry.InitialDelaySeconds = 2
	}
	if c.Paths.ProblemsFile == "" {
		c.Paths.ProblemsFile = "data/problems.json"
	}
	if c.Paths.RawOutputsDir == "" {
		c.Paths.RawOutputsDir = "data/raw_outputs"
	}
	if c.Paths.ResultsDir == "" {
		c.Paths.ResultsDir = "data/results"
	}
	if c.Paths.CheckpointFile == "" {
		c.Paths.CheckpointFile = "data/results/progress.json"
	}
	if c.Prompts.RoleAssessment == "" {
		c.Prompts.RoleAssessment = DefaultRoleAssessmentPrompt
	}
	if c.Prompts.Solver == "" {
		c.Prompts.Solver = DefaultSolverPrompt
	}
	if c.Prompts.Reviewer == "" {
		c.Prompts.Reviewer = DefaultReviewerPrompt
	}
	if c.Prompts.Refiner == "" {
		c.Prompts.Refiner = DefaultRefinerPrompt
	}
	if c.Prompts.Judge == "" {
		c.Prompts.Judge = DefaultJudgePrompt
	}
	if c.Concurrency.StageCalls == 0 {
		c.Concurrency.StageCalls = 3
	}
}

// ApplyEnv overrides config fields from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("PROBLEMS_FILE"); v != "" {
		c.Paths.ProblemsFile = v
	}
	if v := os.Getenv("RAW_OUTPUTS_DIR"); v != "" {
		c.Paths.RawOutputsDir = v
	}
	if v := os.Getenv("RESULTS_DIR"); v != "" {
		c.Paths.ResultsDir = v
	}
	if v := os.Getenv("GRAPH_URI"); v != "" {
		c.Graph.URI = v
	}
	if v := os.Getenv("GRAPH_USER"); v != "" {
		c.Graph.User = v
	}
	if v := os.Getenv("GRAPH_PASSWORD"); v != "" {
		c.Graph.Password = v
	}
}
