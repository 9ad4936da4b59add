package seed

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/askdb/askdb/config"
)

var samplePapers = []any{
	bson.M{
		"title":    "Attention-Free Retrieval for Long Documents",
		"authors":  bson.A{"Elena Volkov", "Wei Zhang"},
		"year":     2023,
		"topic":    "Natural Language Processing",
		"keywords": bson.A{"retrieval", "long documents", "efficiency"},
		"publication": bson.M{
			"journal": "Proceedings of ACL",
			"type":    "Conference",
		},
	},
	bson.M{
		"title":    "Retrieval-Augmented Generation at Scale",
		"authors":  bson.A{"Wei Zhang", "Sofia Marques"},
		"year":     2024,
		"topic":    "Natural Language Processing",
		"keywords": bson.A{"RAG", "Retrieval-Augmented Generation", "scaling"},
		"publication": bson.M{
			"journal": "Journal of Machine Learning Research",
			"type":    "Journal",
		},
	},
	bson.M{
		"title":    "Graph Neural Networks for Protein Folding",
		"authors":  bson.A{"Sofia Marques", "Daniel Kim"},
		"year":     2022,
		"topic":    "Computational Biology",
		"keywords": bson.A{"GNN", "protein folding", "structure prediction"},
		"publication": bson.M{
			"journal": "Nature Methods",
			"type":    "Journal",
		},
	},
	bson.M{
		"title":    "Benchmarking Sparse Rewards in Robotics",
		"authors":  bson.A{"Daniel Kim"},
		"year":     2021,
		"topic":    "Reinforcement Learning",
		"keywords": bson.A{"sparse rewards", "robotics", "benchmarks"},
		"publication": bson.M{
			"journal": "CoRL",
			"type":    "Conference",
		},
	},
}

// Document drops and reloads the research papers collection.
func Document(ctx context.Context, cfg config.DocumentConfig) error {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	defer client.Disconnect(ctx)

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	if err := coll.Drop(ctx); err != nil {
		return fmt.Errorf("drop collection: %w", err)
	}
	if _, err := coll.InsertMany(ctx, samplePapers); err != nil {
		return fmt.Errorf("insert sample papers: %w", err)
	}
	return nil
}
