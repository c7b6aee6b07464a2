// Package decoder abstracts the vector-animation decoding engine behind a
// small capability interface so the conversion engine never touches a
// concrete decoder directly.
//
// Decoding backends register themselves in a process-wide registry,
// usually from an init function guarded by a build tag (see the rlottie
// subpackage). The conversion engine opens one Animation per worker from
// the same source bytes and cache key, because a decoder's render state is
// not guaranteed safe for concurrent use through a single handle. The
// cache key is an opaque string the backend may use to share parsed
// animation data between handles; callers must pass the identical key for
// every handle opened from the same source within one conversion.
package decoder

import (
	"errors"
	"sort"
	"sync"

	"github.com/vleushin/lottie-converter/raster"
)

// Animation is one decoder handle bound to an in-memory animation source.
//
// A handle is owned by a single goroutine. TotalFrames and FrameRate are
// fixed for the lifetime of the handle.
type Animation interface {
	// TotalFrames returns the number of frames in the source animation.
	TotalFrames() int

	// FrameRate returns the animation's native frame rate in frames per
	// second.
	FrameRate() float64

	// RenderSync renders the source frame at the (possibly fractional)
	// frame position into the surface, blocking until the frame is
	// complete. The surface dimensions select the render size.
	RenderSync(frame float64, target *raster.Surface) error

	// Close releases the handle's decoder resources.
	Close() error
}

// Factory opens a new Animation from raw animation bytes and a cache key.
type Factory func(data []byte, cacheKey string) (Animation, error)

// Entry describes a registered decoder backend.
type Entry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Native-engine bindings register around 100, pure-Go or synthetic
	// backends lower.
	Priority int

	// Factory opens animation handles.
	Factory Factory

	// Available reports if the backend is usable on this system.
	Available func() bool
}

// Registry errors.
var (
	// ErrNoBackend is returned when no decoder backends are registered or
	// available.
	ErrNoBackend = errors.New("decoder: no backend available")
)

// NotFoundError indicates a named backend is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "decoder: backend not found: " + e.Name
}

// globalRegistry is the default registry.
var globalRegistry = &Registry{}

// Registry manages registered decoder backends.
//
// The registry lets decoder bindings live outside the core module: a
// backend package registers itself from init and is pulled in with a
// blank import by whichever binary wants it.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// Register adds a backend to the global registry.
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes a backend from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// Available returns the names of all available backends in the global
// registry, sorted by priority (highest first).
func Available() []string {
	return globalRegistry.Available()
}

// Open opens an animation using the best available backend in the global
// registry.
func Open(data []byte, cacheKey string) (Animation, error) {
	return globalRegistry.Open(data, cacheKey)
}

// OpenWith opens an animation using a specific named backend in the
// global registry.
func OpenWith(name string, data []byte, cacheKey string) (Animation, error) {
	return globalRegistry.OpenWith(name, data, cacheKey)
}

// Register adds a backend to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*Entry)
	}
	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &Entry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if !e.Available() {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Priority > entries[j].Priority
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Open opens an animation using the best available backend, trying
// backends in priority order until one succeeds.
func (r *Registry) Open(data []byte, cacheKey string) (Animation, error) {
	available := r.Available()
	if len(available) == 0 {
		return nil, ErrNoBackend
	}

	var lastErr error
	for _, name := range available {
		a, err := r.OpenWith(name, data, cacheKey)
		if err == nil {
			return a, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// OpenWith opens an animation using a specific named backend.
func (r *Registry) OpenWith(name string, data []byte, cacheKey string) (Animation, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, ErrNoBackend
	}

	return entry.Factory(data, cacheKey)
}
