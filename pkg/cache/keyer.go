package cache

import "strings"

// Key type prefixes. The part of a key before the first colon is reported
// to the cache hooks as its type.
const (
	KeyTypeLayout = "layout"
	KeyTypeRender = "render"
)

// LayoutKeyOpts holds the options that change a computed layout.
// Tuning fingerprints the provider's parameters.
type LayoutKeyOpts struct {
	Provider string `json:"provider"`
	Tuning   string `json:"tuning,omitempty"`
	Seed     uint64 `json:"seed"`
}

// RenderKeyOpts holds the options that change a rendered graph.
// Source and Target are the highlighted path endpoints, empty for a plain render.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Engine   string `json:"engine"`
	Source   string `json:"source,omitempty"`
	Target   string `json:"target,omitempty"`
	Provider string `json:"provider"`
	Tuning   string `json:"tuning,omitempty"`
	Seed     uint64 `json:"seed"`
}

// Keyer derives cache keys from a graph content hash and options.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes the graph hash and options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, graphHash, opts)
}

// RenderKey returns "render:<sha256>".
func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey(KeyTypeRender, graphHash, opts)
}

// ScopedKeyer prefixes every key from an inner Keyer, so several datasets
// can share one backend without colliding.
type ScopedKeyer struct {
	scope string
	inner Keyer
}

// NewScopedKeyer wraps inner. A nil inner selects DefaultKeyer.
func NewScopedKeyer(scope string, inner Keyer) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{scope: scope, inner: inner}
}

// LayoutKey returns the inner key prefixed with the scope.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.scoped(k.inner.LayoutKey(graphHash, opts))
}

// RenderKey returns the inner key prefixed with the scope.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.scoped(k.inner.RenderKey(graphHash, opts))
}

// The scope goes after the type so KeyType still sees "layout" or "render".
func (k *ScopedKeyer) scoped(key string) string {
	if k.scope == "" {
		return key
	}
	typ, rest, ok := strings.Cut(key, ":")
	if !ok {
		return k.scope + ":" + key
	}
	return typ + ":" + k.scope + ":" + rest
}

// KeyType returns the type prefix of key, or "other".
func KeyType(key string) string {
	typ, _, ok := strings.Cut(key, ":")
	if !ok || typ == "" {
		return "other"
	}
	return typ
}

var (
	_ Keyer = DefaultKeyer{}
	_ Keyer = (*ScopedKeyer)(nil)
)
