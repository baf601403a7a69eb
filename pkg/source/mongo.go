package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/kinship/pkg/dataset"
	"github.com/matzehuels/kinship/pkg/errors"
)

// DefaultMongoDatabase is used when neither Database nor the URI path name
// a database.
const DefaultMongoDatabase = "kinship"

// Mongo loads a dataset from MongoDB collections:
//
//	members:       {name, class}
//	relationships: {source, target, weight, type}
//	class_weights: {class, weight}   (optional)
//
// Documents are read in _id order. weight may be any BSON number, a
// string, null or missing.
type Mongo struct {
	URI      string
	Database string
	Timeout  time.Duration // connect and query timeout; 10s when zero
}

type mongoMember struct {
	Name  string `bson:"name"`
	Class string `bson:"class"`
}

type mongoRelation struct {
	Source string `bson:"source"`
	Target string `bson:"target"`
	Weight any    `bson:"weight"`
	Type   string `bson:"type"`
}

type mongoClassWeight struct {
	Class  string  `bson:"class"`
	Weight float64 `bson:"weight"`
}

// Name returns "mongodb:<database>".
func (m *Mongo) Name() string { return "mongodb:" + m.database() }

// Load connects, reads all three collections and disconnects.
func (m *Mongo) Load(ctx context.Context) (*dataset.Dataset, error) {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.URI).SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(m.database())
	byID := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	var members []mongoMember
	if err := findAll(ctx, db.Collection("members"), byID, &members); err != nil {
		return nil, err
	}
	var rels []mongoRelation
	if err := findAll(ctx, db.Collection("relationships"), byID, &rels); err != nil {
		return nil, err
	}
	var weights []mongoClassWeight
	if err := findAll(ctx, db.Collection("class_weights"), nil, &weights); err != nil {
		return nil, err
	}
	return fromMongo(members, rels, weights), nil
}

func findAll(ctx context.Context, coll *mongo.Collection, opts *options.FindOptions, out any) error {
	var findOpts []*options.FindOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	cur, err := coll.Find(ctx, bson.D{}, findOpts...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "query %s", coll.Name())
	}
	if err := cur.All(ctx, out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode %s", coll.Name())
	}
	return nil
}

func fromMongo(members []mongoMember, rels []mongoRelation, weights []mongoClassWeight) *dataset.Dataset {
	mrows := make([]memberRow, len(members))
	for i, m := range members {
		mrows[i] = memberRow{name: m.Name, class: m.Class}
	}
	rrows := make([]relationRow, len(rels))
	for i, r := range rels {
		rrows[i] = relationRow{source: r.Source, target: r.Target, weight: r.Weight, kind: r.Type}
	}
	var ranks map[string]float64
	if len(weights) > 0 {
		ranks = make(map[string]float64, len(weights))
		for _, w := range weights {
			ranks[w.Class] = w.Weight
		}
	}
	return assemble(mrows, rrows, ranks)
}

func (m *Mongo) database() string {
	if m.Database != "" {
		return m.Database
	}
	if u, err := url.Parse(m.URI); err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}
	return DefaultMongoDatabase
}

// String hides credentials.
func (m *Mongo) String() string {
	return fmt.Sprintf("Mongo(%s)", m.database())
}
