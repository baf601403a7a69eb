package source

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
)

// Cypher used by the Neo4j source.
const (
	neo4jMemberQuery = `MATCH (m:Member)
RETURN m.name AS name, coalesce(m.class, '') AS class
ORDER BY id(m)`

	neo4jRelationQuery = `MATCH (a:Member)-[r:RELATED]->(b:Member)
RETURN a.name AS source, b.name AS target, r.weight AS weight, coalesce(r.type, '') AS type
ORDER BY id(r)`
)

// Neo4j loads a dataset from (:Member {name, class}) nodes and
// [:RELATED {weight, type}] relationships. Class weights are not stored in
// the graph.
type Neo4j struct {
	URI      string
	Username string // empty for no auth
	Password string
	Database string // server default when empty
}

// Name returns the URI.
func (n *Neo4j) Name() string { return n.URI }

// Load opens a read session and runs the member and relationship queries.
func (n *Neo4j) Load(ctx context.Context) (*dataset.Dataset, error) {
	auth := neo4j.NoAuth()
	if n.Username != "" {
		auth = neo4j.BasicAuth(n.Username, n.Password, "")
	}
	driver, err := neo4j.NewDriverWithContext(n.URI, auth)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create neo4j driver")
	}
	defer driver.Close(ctx)

	if err := driver.VerifyConnectivity(ctx); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to neo4j")
	}

	session := driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: n.Database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	var members []memberRow
	err = runQuery(ctx, session, neo4jMemberQuery, func(rec recordGetter) error {
		m, err := memberFromRecord(rec)
		members = append(members, m)
		return err
	})
	if err != nil {
		return nil, err
	}

	var rels []relationRow
	err = runQuery(ctx, session, neo4jRelationQuery, func(rec recordGetter) error {
		r, err := relationFromRecord(rec)
		rels = append(rels, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return assemble(members, rels, nil), nil
}

func runQuery(ctx context.Context, session neo4j.SessionWithContext, cypher string, each func(recordGetter) error) error {
	res, err := session.Run(ctx, cypher, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "run cypher")
	}
	for res.Next(ctx) {
		if err := each(res.Record()); err != nil {
			return err
		}
	}
	if err := res.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "read cypher result")
	}
	return nil
}

// recordGetter is the part of a neo4j record the converters need.
type recordGetter interface {
	Get(key string) (any, bool)
}

func memberFromRecord(rec recordGetter) (memberRow, error) {
	name, err := stringField(rec, "name", true)
	if err != nil {
		return memberRow{}, err
	}
	class, err := stringField(rec, "class", false)
	return memberRow{name: name, class: class}, err
}

func relationFromRecord(rec recordGetter) (relationRow, error) {
	var r relationRow
	var err error
	if r.source, err = stringField(rec, "source", true); err != nil {
		return r, err
	}
	if r.target, err = stringField(rec, "target", true); err != nil {
		return r, err
	}
	if r.kind, err = stringField(rec, "type", false); err != nil {
		return r, err
	}
	r.weight, _ = rec.Get("weight")
	return r, nil
}

func stringField(rec recordGetter, key string, required bool) (string, error) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		if required {
			return "", errors.New(errors.ErrCodeInvalidDataset, "record has no %s", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v), nil
	}
	return s, nil
}
