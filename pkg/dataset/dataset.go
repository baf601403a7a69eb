package dataset

import (
	"maps"
	"strings"

	"github.com/matzehuels/kinship/pkg/errors"
)

const (
	// DefaultCohort is assigned to members whose cohort is empty.
	DefaultCohort = "Unknown"

	// DefaultKind is assigned to relationships whose kind is empty.
	DefaultKind = "unknown"

	// UnrankedWeight is the rank used for cohorts missing from ClassWeights,
	// sorting them after every ranked cohort.
	UnrankedWeight = 999
)

// Member is a person in the family tree.
type Member struct {
	ID     string `json:"name" yaml:"name" bson:"name"`
	Cohort string `json:"class,omitempty" yaml:"class,omitempty" bson:"class,omitempty"`
}

// CohortOrDefault returns the member's cohort, or [DefaultCohort] when empty.
func (m Member) CohortOrDefault() string {
	if c := strings.TrimSpace(m.Cohort); c != "" {
		return c
	}
	return DefaultCohort
}

// Relationship is a directed, weighted connection between two members.
type Relationship struct {
	From   string `json:"source" yaml:"source" bson:"source"`
	To     string `json:"target" yaml:"target" bson:"target"`
	Weight Weight `json:"weight" yaml:"weight,omitempty" bson:"-"`
	Kind   string `json:"type,omitempty" yaml:"type,omitempty" bson:"type,omitempty"`
}

// KindOrDefault returns the relationship kind, or [DefaultKind] when empty.
func (r Relationship) KindOrDefault() string {
	if k := strings.TrimSpace(r.Kind); k != "" {
		return k
	}
	return DefaultKind
}

// Dataset is an already-acquired snapshot of members and relationships.
// It is never modified by the graph builder.
type Dataset struct {
	Members       []Member           `json:"nodes" yaml:"nodes"`
	Relationships []Relationship     `json:"edges" yaml:"edges"`
	ClassWeights  map[string]float64 `json:"classWeights,omitempty" yaml:"classWeights,omitempty"`
}

// Validate checks the shape of the dataset: every member needs an id.
// Relationships are not inspected here; the builder checks a relationship's
// weight before its endpoints, and an empty endpoint is simply unknown.
func (d *Dataset) Validate() error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidDataset, "dataset is nil")
	}
	for i, m := range d.Members {
		if strings.TrimSpace(m.ID) == "" {
			return errors.New(errors.ErrCodeInvalidDataset, "member %d has an empty name", i)
		}
	}
	return nil
}

// Rank returns the display rank of a cohort from ClassWeights.
func (d *Dataset) Rank(cohort string) (float64, bool) {
	if d == nil || d.ClassWeights == nil {
		return 0, false
	}
	w, ok := d.ClassWeights[cohort]
	return w, ok
}

// Ranks returns a copy of ClassWeights. The result is never nil.
func (d *Dataset) Ranks() map[string]float64 {
	if d == nil || d.ClassWeights == nil {
		return map[string]float64{}
	}
	return maps.Clone(d.ClassWeights)
}
