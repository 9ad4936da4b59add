package seed

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/askdb/askdb/config"
)

var graphStatements = []string{
	`MATCH (n) DETACH DELETE n`,
	`CREATE (ev:Researcher {name: 'Elena Volkov', field: 'Natural Language Processing'}),
		(wz:Researcher {name: 'Wei Zhang', field: 'Natural Language Processing'}),
		(sm:Researcher {name: 'Sofia Marques', field: 'Computational Biology'}),
		(dk:Researcher {name: 'Daniel Kim', field: 'Reinforcement Learning'}),
		(rag:ProjectOrTopic {name: 'Retrieval-Augmented Generation', domain: 'NLP'}),
		(pf:ProjectOrTopic {name: 'Protein Folding', domain: 'Biology'}),
		(rl:ProjectOrTopic {name: 'Sparse Reward Benchmarks', domain: 'Robotics'}),
		(ev)-[:COLLABORATES_WITH]->(wz),
		(wz)-[:COLLABORATES_WITH]->(sm),
		(sm)-[:COLLABORATES_WITH]->(dk),
		(ev)-[:WORKS_ON]->(rag),
		(wz)-[:WORKS_ON]->(rag),
		(sm)-[:WORKS_ON]->(pf),
		(dk)-[:WORKS_ON]->(rl)`,
}

// Graph wipes and reloads the researcher collaboration graph.
func Graph(ctx context.Context, cfg config.GraphConfig) error {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return fmt.Errorf("create neo4j driver: %w", err)
	}
	defer driver.Close(ctx)

	for _, stmt := range graphStatements {
		if _, err := neo4j.ExecuteQuery(ctx, driver, stmt, nil, neo4j.EagerResultTransformer); err != nil {
			return fmt.Errorf("exec graph statement: %w", err)
		}
	}
	return nil
}
