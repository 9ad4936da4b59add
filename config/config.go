package config

// Config is the top-level configuration for the askdb service.
type Config struct {
	LLM      LLMConfig      `json:"llm" yaml:"llm"`
	Backends BackendsConfig `json:"backends" yaml:"backends"`
	Limits   LimitsConfig   `json:"limits,omitempty" yaml:"limits,omitempty"`
}

// LLMConfig defines the text-generation collaborator. Any OpenAI-compatible
// endpoint works; base_url selects the vendor (Together, DashScope, ...).
type LLMConfig struct {
	Provider    string  `json:"provider" yaml:"provider"` // Available options: openai, together, dashscope
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// BackendsConfig holds one section per data backend. A backend with an empty
// config is simply not served; routing to it yields an execution error.
type BackendsConfig struct {
	Relational  RelationalConfig  `json:"relational" yaml:"relational"`
	Document    DocumentConfig    `json:"document" yaml:"document"`
	SearchIndex SearchIndexConfig `json:"search_index" yaml:"search_index"`
	Graph       GraphConfig       `json:"graph" yaml:"graph"`
}

// RelationalConfig points at the SQLite database file.
type RelationalConfig struct {
	Path string `json:"path" yaml:"path"`
}

// DocumentConfig points at a MongoDB collection.
type DocumentConfig struct {
	URI        string `json:"uri" yaml:"uri"`
	Database   string `json:"database" yaml:"database"`
	Collection string `json:"collection" yaml:"collection"`
}

// SearchIndexConfig points at a MeiliSearch index.
type SearchIndexConfig struct {
	Host   string `json:"host" yaml:"host"`
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Index  string `json:"index" yaml:"index"`
}

// GraphConfig points at a Neo4j instance.
type GraphConfig struct {
	URI      string `json:"uri" yaml:"uri"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// LimitsConfig caps resource usage per cycle.
type LimitsConfig struct {
	// ContextTokenBudget trims retrieved context before answer synthesis so a
	// large result set cannot blow the model's window.
	ContextTokenBudget int `json:"context_token_budget,omitempty" yaml:"context_token_budget,omitempty"`
	// MaxResultRows caps how many records an adapter folds into the context.
	MaxResultRows int `json:"max_result_rows,omitempty" yaml:"max_result_rows,omitempty"`
}

// Default returns a Config with the baseline settings the server starts from
// before the file and environment overlays are applied.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Temperature: 0.2,
			MaxTokens:   1024,
		},
		Backends: BackendsConfig{
			Relational: RelationalConfig{Path: "data/company.db"},
			Document: DocumentConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "research_db",
				Collection: "papers",
			},
			SearchIndex: SearchIndexConfig{
				Host:  "http://localhost:7700",
				Index: "support_tickets",
			},
			Graph: GraphConfig{URI: "bolt://localhost:7687"},
		},
		Limits: LimitsConfig{
			ContextTokenBudget: 3000,
			MaxResultRows:      50,
		},
	}
}
