package generator

import (
	"context"
	"fmt"

	"github.com/askdb/askdb/common/logger"
	"github.com/askdb/askdb/llm"
	"github.com/askdb/askdb/schema"
)

// SchemaSource supplies the schema text embedded in a generation prompt.
// Satisfied by the backend registry.
type SchemaSource interface {
	Describe(ctx context.Context, kind schema.BackendKind) string
}

// Generator turns a routed question into an executable payload for the chosen
// backend. Each backend gets its own prompt; the dispatch is exhaustive over
// the routable kinds so a new backend cannot be wired without a generator.
type Generator struct {
	Provider llm.Provider
	Schemas  SchemaSource
}

// New creates a query generator.
func New(provider llm.Provider, schemas SchemaSource) *Generator {
	return &Generator{Provider: provider, Schemas: schemas}
}

// Generate produces the payload for the routed backend and records it on the
// state. Terminal data sources pass through untouched; the cycle is already
// over for them.
func (g *Generator) Generate(ctx context.Context, st schema.RunState) schema.RunState {
	if st.Error != "" || !st.DataSource.Routable() {
		return st
	}

	kind := st.DataSource
	prompt := g.buildPrompt(ctx, kind, st.Query)

	raw, err := g.Provider.GenerateCompletion(ctx, prompt)
	if err != nil {
		logger.Errorf("generator: %s query generation failed: %v", kind, err)
		st.DataSource = schema.KindEnd
		return st.WithError(fmt.Sprintf("query generation for %s failed: %v", kind, err))
	}

	payload := llm.CleanPayload(raw)
	if payload == "" {
		logger.Errorf("generator: %s query generation returned empty payload", kind)
		st.DataSource = schema.KindEnd
		return st.WithError(fmt.Sprintf("query generation for %s returned an empty query", kind))
	}

	logger.Infof("generator: %s payload: %s", kind, payload)
	st.GeneratedQuery = payload
	if st.InitialGeneratedQuery == "" {
		st.InitialGeneratedQuery = payload
	}
	return st
}

func (g *Generator) buildPrompt(ctx context.Context, kind schema.BackendKind, question string) string {
	switch kind {
	case schema.KindRelational:
		return g.sqlPrompt(ctx, question)
	case schema.KindDocument:
		return g.mongoPrompt(ctx, question)
	case schema.KindSearchIndex:
		return g.searchPrompt(ctx, question)
	case schema.KindGraph:
		return g.cypherPrompt(ctx, question)
	default:
		// Unreachable: Generate only runs for routable kinds.
		return ""
	}
}

func (g *Generator) sqlPrompt(ctx context.Context, question string) string {
	return fmt.Sprintf(`You are an expert SQLite analyst. Write one SQL query that answers the user's question using the schema below.

Database schema:
%s

Rules:
- Output only the SQL query, with no explanation and no markdown fences.
- Use only tables and columns from the schema.
- Prefer explicit column lists over SELECT *.

Example:
Question: Which employees are in the Engineering department?
SQL: SELECT e.name, e.role FROM employees e JOIN departments d ON e.department_id = d.id WHERE d.name = 'Engineering';

Question: %s
SQL:`, g.Schemas.Describe(ctx, schema.KindRelational), question)
}

func (g *Generator) mongoPrompt(ctx context.Context, question string) string {
	return fmt.Sprintf(`You are an expert MongoDB analyst. Write one find() filter, as a JSON object, that answers the user's question against the collection below.

Collection schema:
%s

Rules:
- Output only the JSON filter object, with no explanation and no markdown fences.
- Use MongoDB extended JSON syntax for any operators ($regex, $in, $gte, ...).
- Match array fields with direct equality or $in.

Example:
Question: What papers were published about NLP after 2020?
Filter: {"topic": "Natural Language Processing", "year": {"$gt": 2020}}

Question: %s
Filter:`, g.Schemas.Describe(ctx, schema.KindDocument), question)
}

func (g *Generator) searchPrompt(ctx context.Context, question string) string {
	return fmt.Sprintf(`You are a search query assistant. Turn the user's question into a short keyword phrase for a full-text search engine.

Index schema:
%s

Rules:
- Output only the search phrase, with no explanation, quotes, or markdown.
- Keep it to the essential keywords; drop filler words.

Example:
Question: Are there any open tickets about login failures?
Search phrase: login failure open

Question: %s
Search phrase:`, g.Schemas.Describe(ctx, schema.KindSearchIndex), question)
}

func (g *Generator) cypherPrompt(ctx context.Context, question string) string {
	return fmt.Sprintf(`You are an expert Neo4j analyst. Write one Cypher query that answers the user's question using the graph schema below.

Graph schema:
%s

Rules:
- Output only the Cypher query, with no explanation and no markdown fences.
- Use only the node labels, properties, and relationship types from the schema.
- Return named values, not whole nodes.

Example:
Question: Who does Alice Chen collaborate with?
Cypher: MATCH (r:Researcher {name: 'Alice Chen'})-[:COLLABORATES_WITH]-(c:Researcher) RETURN c.name AS collaborator;

Question: %s
Cypher:`, g.Schemas.Describe(ctx, schema.KindGraph), question)
}
