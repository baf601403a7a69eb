package source

import (
	"context"
	"strings"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
)

// Source produces a dataset.
//
// Load may be called repeatedly; each call returns a fresh dataset that
// the caller owns.
type Source interface {
	Load(ctx context.Context) (*dataset.Dataset, error)
	Name() string
}

// Open returns the Source for a location:
//
//   - http:// or https:// URLs load over HTTP
//   - sqlite:PATH, or a path ending in .db/.sqlite/.sqlite3, opens SQLite
//   - mongodb:// and mongodb+srv:// URIs read MongoDB (database "kinship"
//     unless the URI path names one)
//   - neo4j://, neo4j+s://, bolt:// URIs read Neo4j
//   - anything else is a file path
func Open(location string) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "dataset location is empty")
	}
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return &HTTP{URL: location}, nil
	case strings.HasPrefix(lower, "sqlite:"):
		return &SQLite{Path: location[len("sqlite:"):]}, nil
	case strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return &SQLite{Path: location}, nil
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return &Mongo{URI: location}, nil
	case strings.HasPrefix(lower, "neo4j://"), strings.HasPrefix(lower, "neo4j+s://"), strings.HasPrefix(lower, "bolt://"):
		return &Neo4j{URI: location}, nil
	default:
		return &File{Path: location}, nil
	}
}

// memberRow and relationRow are the backend-neutral shapes that database
// sources scan into before assembling a dataset.
type memberRow struct {
	name, class string
}

type relationRow struct {
	source, target string
	weight         any
	kind           string
}

func assemble(members []memberRow, rels []relationRow, ranks map[string]float64) *dataset.Dataset {
	ds := &dataset.Dataset{
		Members:       make([]dataset.Member, 0, len(members)),
		Relationships: make([]dataset.Relationship, 0, len(rels)),
	}
	for _, m := range members {
		ds.Members = append(ds.Members, dataset.Member{ID: m.name, Cohort: m.class})
	}
	for _, r := range rels {
		ds.Relationships = append(ds.Relationships, dataset.Relationship{
			From:   r.source,
			To:     r.target,
			Weight: dataset.WeightOf(r.weight),
			Kind:   r.kind,
		})
	}
	if len(ranks) > 0 {
		ds.ClassWeights = ranks
	}
	return ds
}
