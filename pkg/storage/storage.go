// Package storage persists computed layouts as documents.
//
// A [Document] bundles a tree, the layout computed for it and the options
// used, under a random UUID. The HTTP server stores every layout it
// computes so that clients can fetch, list, render and delete it later.
//
// Two backends implement [Store]:
//
//   - [MemoryStore]: process-local, for development and tests
//   - [MongoStore]: a MongoDB collection, for deployments
//
// Both are safe for concurrent use.
package storage

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/treelayout/pkg/generate"
	"github.com/matzehuels/treelayout/pkg/tree"
	"github.com/matzehuels/treelayout/pkg/treelayout"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Default and maximum page sizes for List.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// Document is a stored layout together with its tree.
type Document struct {
	ID        string           `json:"id" bson:"_id"`
	Name      string           `json:"name,omitempty" bson:"name,omitempty"`
	Tree      tree.Data        `json:"tree" bson:"tree"`
	Layout    treelayout.Data  `json:"layout" bson:"layout"`
	Options   generate.Options `json:"options" bson:"options"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}

// NewDocument creates a document with a fresh UUID and the current time.
func NewDocument(name string, t *tree.Tree, l *treelayout.Layout, opts generate.Options) *Document {
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Tree:      t.ToData(),
		Layout:    l.ToData(),
		Options:   opts,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// TreeValue decodes the stored tree.
func (d *Document) TreeValue() (*tree.Tree, error) {
	return tree.FromData(d.Tree)
}

// LayoutValue decodes the stored layout.
func (d *Document) LayoutValue() (*treelayout.Layout, error) {
	return treelayout.FromData(d.Layout)
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := *d
	c.Tree = tree.Data{
		Vertices: slices.Clone(d.Tree.Vertices),
		Parents:  slices.Clone(d.Tree.Parents),
		Labels:   slices.Clone(d.Tree.Labels),
	}
	c.Layout.Vertices = slices.Clone(d.Layout.Vertices)
	return &c
}

// ListOptions pages through documents, newest first.
type ListOptions struct {
	Limit  int
	Offset int
}

// normalize clamps Limit to (0, MaxListLimit] and Offset to >= 0.
func (o ListOptions) normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	o.Limit = min(o.Limit, MaxListLimit)
	o.Offset = max(o.Offset, 0)
	return o
}

// Store persists documents.
type Store interface {
	// Put inserts or replaces the document with d.ID.
	Put(ctx context.Context, d *Document) error

	// Get returns the document with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns documents ordered by CreatedAt, newest first.
	List(ctx context.Context, opts ListOptions) ([]*Document, error)

	// Delete removes the document with the given ID, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
