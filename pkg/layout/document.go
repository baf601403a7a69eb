package layout

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/kinship/pkg/errors"
)

// Document is the serialised form of a layout, used for `kinship layout`
// output and as the cached payload.
type Document struct {
	Provider string         `json:"provider" bson:"provider"`
	Seed     uint64         `json:"seed" bson:"seed"`
	Hash     string         `json:"graph_hash" bson:"graph_hash"`
	Nodes    []NodePosition `json:"nodes" bson:"nodes"`
}

// NodePosition is one member's coordinates.
type NodePosition struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
}

// NewDocument captures pts with their provenance. Nodes are sorted by id.
func NewDocument(provider string, seed uint64, graphHash string, pts Positions) Document {
	doc := Document{Provider: provider, Seed: seed, Hash: graphHash}
	doc.Nodes = make([]NodePosition, 0, len(pts))
	for _, id := range sortedIDs(pts) {
		p := pts[id]
		doc.Nodes = append(doc.Nodes, NodePosition{ID: id, X: p.X, Y: p.Y})
	}
	return doc
}

// Positions converts the document back to a position map.
func (d Document) Positions() Positions {
	pts := make(Positions, len(d.Nodes))
	for _, n := range d.Nodes {
		pts[n.ID] = Point{X: n.X, Y: n.Y}
	}
	return pts
}

// Marshal serialises d as indented JSON.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument parses a layout document. Duplicate node ids are
// rejected.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	seen := make(map[string]struct{}, len(d.Nodes))
	for _, n := range d.Nodes {
		if _, dup := seen[n.ID]; dup {
			return Document{}, errors.New(errors.ErrCodeInvalidFormat, "layout lists member %q twice", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return d, nil
}

// WriteFile writes d to path as JSON.
func (d Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write layout: %w", err)
	}
	return nil
}
