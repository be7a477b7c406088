package provider

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// nameRe constrains provider names to a lowercase alphanumeric identifier.
var nameRe = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Factory constructs an unconfigured provider instance.
type Factory func() Provider

// Registry owns the lifecycle of configured providers. Factories are
// registered at process start, providers are instantiated and
// connection-validated once, and the registry is read-only afterwards.
//
// The registry is not safe for concurrent mutation; construct it fully
// before serving requests.
type Registry struct {
	defaultName string
	factories   map[string]Factory
	providers   map[string]Provider
	priorities  map[string]int
	order       []string
}

// NewRegistry constructs an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:  make(map[string]Factory),
		providers:  make(map[string]Provider),
		priorities: make(map[string]int),
	}
}

// RegisterFactory associates a provider name with a constructor. Duplicate
// names and malformed names are construction-time errors.
func (r *Registry) RegisterFactory(name string, f Factory) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("provider name %q must match %s", name, nameRe.String())
	}
	if f == nil {
		return fmt.Errorf("provider %q: factory must not be nil", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider factory %q already registered", name)
	}
	r.factories[name] = f
	return nil
}

// Register instantiates the named provider, initializes it with cfg,
// validates its connection, and stores the live instance. A provider whose
// connection validation fails is not stored.
func (r *Registry) Register(ctx context.Context, name string, cfg Config, priority int) error {
	f, ok := r.factories[name]
	if !ok {
		return fmt.Errorf("no factory registered for provider %q", name)
	}
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %q already registered", name)
	}

	p := f()
	if err := p.Initialize(ctx, cfg); err != nil {
		return fmt.Errorf("initialize provider %q: %w", name, err)
	}
	if err := p.ValidateConnection(ctx); err != nil {
		return fmt.Errorf("validate connection to provider %q: %w", name, err)
	}

	r.providers[name] = p
	r.priorities[name] = priority
	r.order = append(r.order, name)
	sort.SliceStable(r.order, func(i, j int) bool {
		return r.priorities[r.order[i]] > r.priorities[r.order[j]]
	})
	return nil
}

// SetDefault names the provider used when a request does not select one.
func (r *Registry) SetDefault(name string) error {
	if _, ok := r.providers[name]; !ok {
		return fmt.Errorf("default provider %q is not registered", name)
	}
	r.defaultName = name
	return nil
}

// DefaultName returns the configured default provider name. When no default
// was set explicitly, the highest-priority registered provider wins.
func (r *Registry) DefaultName() string {
	if r.defaultName != "" {
		return r.defaultName
	}
	if len(r.order) > 0 {
		return r.order[0]
	}
	return ""
}

// Names returns registered provider names in priority order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the named provider without any fallback.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Select resolves a provider for a request. An empty name falls back to the
// default; a malformed or unknown name is a distinct error and never maps to
// the default silently. Selection is deterministic for identical inputs.
func (r *Registry) Select(name string) (Provider, error) {
	if name == "" {
		def := r.DefaultName()
		if def == "" {
			return nil, fmt.Errorf("no providers registered")
		}
		return r.providers[def], nil
	}

	if !nameRe.MatchString(name) {
		return nil, mcperr.Validationf("provider", "name %q must match %s", name, nameRe.String())
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, &mcperr.NotFoundError{Kind: "provider", ID: name, Suggestions: r.Names()}
	}
	return p, nil
}
