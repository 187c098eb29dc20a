// Package assets loads the bust model in the background and turns it into
// the vertex set the morph section consumes.
package assets

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrNoGeometry is returned when a model has no position data.
var ErrNoGeometry = errors.New("model has no vertex positions")

// VertexSet is a fixed sample of model vertex positions, normalized so the
// bounding box is centered on the origin with its largest edge equal to 1.
type VertexSet struct {
	Path   string
	Points []mgl32.Vec3
	Source int // vertex count before sampling
}

// Result is the outcome of a background load.
type Result struct {
	Path string
	Set  *VertexSet
	Err  error
}

// Manager loads models and caches the sampled vertex sets by path.
type Manager struct {
	samples int
	cache   *Cache
	log     *zap.Logger
}

// NewManager creates a manager that samples samples points per model.
func NewManager(samples int, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		samples: samples,
		cache:   NewCache(),
		log:     log,
	}
}

// Load parses and samples a model synchronously.
func (m *Manager) Load(path string) (*VertexSet, error) {
	if set, ok := m.cache.Get(path); ok {
		return set, nil
	}

	points, err := ReadGLTFPositions(path)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", path, err)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("loading model %s: %w", path, ErrNoGeometry)
	}

	set := &VertexSet{
		Path:   path,
		Points: Sample(Normalize(points), m.samples),
		Source: len(points),
	}
	m.cache.Set(path, set)
	return set, nil
}

// LoadAsync starts loading path on a goroutine. The render loop polls the
// returned Pending; nothing else touches the result.
func (m *Manager) LoadAsync(ctx context.Context, path string) *Pending {
	p := &Pending{
		path: path,
		ch:   make(chan Result, 1),
	}

	go func() {
		m.log.Info("model load started", zap.String("path", path))
		set, err := m.Load(path)
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			m.log.Warn("model load failed", zap.String("path", path), zap.Error(err))
			p.ch <- Result{Path: path, Err: err}
			return
		}
		m.log.Info("model loaded",
			zap.String("path", path),
			zap.Int("vertices", set.Source),
			zap.Int("samples", len(set.Points)),
		)
		p.ch <- Result{Path: path, Set: set}
	}()

	return p
}

// Pending is a single in-flight load.
type Pending struct {
	path      string
	ch        chan Result
	delivered bool
}

// Path returns the model path being loaded.
func (p *Pending) Path() string { return p.path }

// Poll returns the result once it is available. It reports true exactly once.
func (p *Pending) Poll() (Result, bool) {
	if p == nil || p.delivered {
		return Result{}, false
	}
	select {
	case r := <-p.ch:
		p.delivered = true
		return r, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the result arrives or ctx is done.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	if p.delivered {
		return Result{}, errors.New("result already delivered")
	}
	select {
	case r := <-p.ch:
		p.delivered = true
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Cache is a simple in-memory cache for loaded vertex sets.
type Cache struct {
	data map[string]*VertexSet
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*VertexSet),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (*VertexSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return set, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, set *VertexSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = set
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
