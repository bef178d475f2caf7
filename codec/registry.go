package codec

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arloliu/numcodec/errs"
)

// FromConfigFunc constructs a codec from its configuration mapping.
type FromConfigFunc func(Config) (Codec, error)

// Registry maps codec identifiers to constructors.
//
// A Registry is an explicit object passed to call sites; there is no
// process-wide default. Registration typically happens once during setup, but
// the registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]FromConfigFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ctors: make(map[string]FromConfigFunc),
	}
}

// Register adds a codec constructor under the given identifier, replacing any
// previous registration for the same identifier.
func (r *Registry) Register(id string, ctor FromConfigFunc) error {
	if id == "" {
		return fmt.Errorf("%w: empty codec id", errs.ErrInvalidConfig)
	}
	if ctor == nil {
		return fmt.Errorf("%w: nil constructor for codec %q", errs.ErrInvalidConfig, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[id] = ctor

	return nil
}

// Get returns the constructor registered for the identifier.
func (r *Registry) Get(id string) (FromConfigFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, ok := r.ctors[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrCodecNotFound, id)
	}

	return ctor, nil
}

// FromConfig constructs a codec from a configuration mapping, dispatching on
// its "id" entry.
func (r *Registry) FromConfig(cfg Config) (Codec, error) {
	id, err := cfg.ID()
	if err != nil {
		return nil, err
	}

	ctor, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	return ctor(cfg)
}

// IDs returns the sorted identifiers of all registered codecs.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.ctors))
	for id := range r.ctors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}
