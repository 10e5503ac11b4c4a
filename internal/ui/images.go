package ui

import (
	"context"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"iv/internal/imageio"
	"iv/internal/scan"
)

// Frames is a decoded image uploaded to the GPU, one texture per animation
// frame. Still images carry a single frame and no delays.
type Frames struct {
	Images []*ebiten.Image
	Delays []time.Duration
	Width  int
	Height int
}

// Animated reports whether the frames form an animation.
func (f *Frames) Animated() bool { return len(f.Images) > 1 }

// First returns the first frame, or nil when empty.
func (f *Frames) First() *ebiten.Image {
	if len(f.Images) == 0 {
		return nil
	}
	return f.Images[0]
}

func deallocateFrames(f *Frames) {
	if f == nil {
		return
	}
	for _, img := range f.Images {
		if img != nil {
			img.Deallocate()
		}
	}
}

// NavigationDirection represents the direction of navigation
type NavigationDirection int

const (
	NavigationForward NavigationDirection = iota
	NavigationBackward
	NavigationJump
)

// PreloadRequest represents a request to preload images around an index
type PreloadRequest struct {
	Index     int
	Direction NavigationDirection
}

// PreloadStats provides statistics about preloading
type PreloadStats struct {
	LoadedCount   int
	FailedCount   int
	LastDirection NavigationDirection
}

// preloader loads images around the current index on a worker goroutine so
// navigation does not block on decoding.
type preloader struct {
	requestChan chan PreloadRequest
	ctx         context.Context
	cancel      context.CancelFunc
	manager     *Manager
	mu          sync.RWMutex
	stats       PreloadStats
	maxPreload  int
	enabled     bool
}

func newPreloader(manager *Manager, maxPreload int) *preloader {
	ctx, cancel := context.WithCancel(context.Background())
	p := &preloader{
		requestChan: make(chan PreloadRequest, 100),
		ctx:         ctx,
		cancel:      cancel,
		manager:     manager,
		maxPreload:  maxPreload,
		enabled:     true,
	}

	go p.worker()

	return p
}

func (p *preloader) setEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
}

func (p *preloader) isEnabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

func (p *preloader) getStats() PreloadStats {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stats
}

func (p *preloader) stop() {
	p.cancel()
}

// start queues preloading from the current index in the given direction,
// discarding any requests that are now stale.
func (p *preloader) start(currentIdx int, direction NavigationDirection) {
	if !p.isEnabled() {
		return
	}

drain:
	for {
		select {
		case <-p.requestChan:
			// discard pending requests
		default:
			break drain
		}
	}

	select {
	case p.requestChan <- PreloadRequest{Index: currentIdx, Direction: direction}:
	default:
		debugLog("Preload request channel full, skipping preload request")
	}
}

func (p *preloader) worker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case req := <-p.requestChan:
			if p.isEnabled() {
				p.process(req)
			}
		}
	}
}

func (p *preloader) process(req PreloadRequest) {
	p.mu.Lock()
	p.stats.LastDirection = req.Direction
	p.mu.Unlock()

	count := p.manager.Count()
	if count == 0 {
		return
	}

	for _, idx := range p.indices(req.Index, req.Direction, count) {
		select {
		case <-p.ctx.Done():
			return
		default:
			p.preloadOne(idx)
		}
	}
}

// indices lists which entries to preload around the current index.
func (p *preloader) indices(currentIdx int, direction NavigationDirection, count int) []int {
	var indices []int

	switch direction {
	case NavigationForward:
		for i := 1; i <= p.maxPreload; i++ {
			if idx := currentIdx + i; idx < count {
				indices = append(indices, idx)
			}
		}
	case NavigationBackward:
		for i := 1; i <= p.maxPreload; i++ {
			if idx := currentIdx - i; idx >= 0 {
				indices = append(indices, idx)
			}
		}
	case NavigationJump:
		// Both directions from the jump point
		half := p.maxPreload / 2
		for i := 1; i <= half; i++ {
			if idx := currentIdx + i; idx < count {
				indices = append(indices, idx)
			}
			if idx := currentIdx - i; idx >= 0 {
				indices = append(indices, idx)
			}
		}
	}

	return indices
}

func (p *preloader) preloadOne(idx int) {
	entry, ok := p.manager.entryAt(idx)
	if !ok {
		return
	}
	cacheKey := entry.Path

	if _, ok := p.manager.cache.Get(cacheKey); ok {
		return // Already cached
	}

	frames, err := loadFrames(entry)
	if err != nil {
		p.mu.Lock()
		p.stats.FailedCount++
		p.mu.Unlock()
		debugLog("Preload failed for [%d] %s: %v", idx+1, entry.Path, err)

		// Cache an error image so navigation does not retry a broken file
		frames = errorFrames(entry.Path, err)
	}

	p.manager.cache.Add(cacheKey, frames)

	p.mu.Lock()
	p.stats.LoadedCount++
	p.mu.Unlock()

	debugLog("Preloaded [%d] %s (cache: %d items)", idx+1, entry.Path, p.manager.cache.Len())
}

// Manager loads images on demand and keeps recently used ones in an LRU
// cache keyed by entry path, so re-sorting or rescanning preserves the cache.
type Manager struct {
	entries   []scan.Entry
	cache     *lru.Cache[string, *Frames]
	mu        sync.RWMutex
	preloader *preloader
}

// NewManager creates a Manager with the given cache size and preload
// configuration.
func NewManager(cacheSize, preloadCount int, preloadEnabled bool) *Manager {
	cache, err := lru.NewWithEvict[string, *Frames](cacheSize, func(_ string, f *Frames) {
		deallocateFrames(f)
	})
	if err != nil {
		log.Printf("Error: Failed to create LRU cache: %v", err)
		cache, _ = lru.NewWithEvict[string, *Frames](16, func(_ string, f *Frames) {
			deallocateFrames(f)
		})
	}

	m := &Manager{cache: cache}
	m.preloader = newPreloader(m, preloadCount)
	m.preloader.setEnabled(preloadEnabled)

	return m
}

// SetEntries replaces the entry list. The cache is keyed by path so cached
// images survive re-sorting.
func (m *Manager) SetEntries(entries []scan.Entry) {
	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
	debugLog("SetEntries: %d entries, cache preserved (%d items)", len(entries), m.cache.Len())
}

// Count returns the number of entries.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// EntryAt returns the entry at idx if in range.
func (m *Manager) EntryAt(idx int) (scan.Entry, bool) {
	return m.entryAt(idx)
}

func (m *Manager) entryAt(idx int) (scan.Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.entries) {
		return scan.Entry{}, false
	}
	return m.entries[idx], true
}

// StartPreload queues background loading around the given index.
func (m *Manager) StartPreload(currentIdx int, direction NavigationDirection) {
	if m.preloader != nil {
		m.preloader.start(currentIdx, direction)
	}
}

// StopPreload shuts down the preload worker.
func (m *Manager) StopPreload() {
	if m.preloader != nil {
		m.preloader.stop()
	}
}

// PreloadStats returns preload counters.
func (m *Manager) PreloadStats() PreloadStats {
	if m.preloader != nil {
		return m.preloader.getStats()
	}
	return PreloadStats{}
}

// GetFrames returns the frames for the entry at idx, loading and caching on
// a miss. Load failures yield an error placeholder, never nil.
func (m *Manager) GetFrames(idx int) *Frames {
	entry, ok := m.entryAt(idx)
	if !ok {
		return nil
	}
	cacheKey := entry.Path

	if frames, ok := m.cache.Get(cacheKey); ok {
		debugLog("Cache HIT: %s (cache: %d items)", cacheKey, m.cache.Len())
		return frames
	}

	frames, err := loadFrames(entry)
	if err != nil {
		log.Printf("Error: Failed to load image [%d/%d] %s: %v",
			idx+1, m.Count(), entry.Path, err)
		return errorFrames(entry.Path, err)
	}

	m.cache.Add(cacheKey, frames)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	debugLog("Cache MISS: %s, loaded and cached (cache: %d items, memory: %dMB)",
		cacheKey, m.cache.Len(), mem.Alloc/1024/1024)

	return frames
}

// loadFrames decodes an entry and uploads each frame as a texture.
func loadFrames(entry scan.Entry) (*Frames, error) {
	src, err := imageio.Load(entry)
	if err != nil {
		return nil, err
	}

	f := &Frames{
		Images: make([]*ebiten.Image, 0, len(src.Frames)),
		Delays: src.Delays,
		Width:  src.Width,
		Height: src.Height,
	}
	for _, frame := range src.Frames {
		f.Images = append(f.Images, ebiten.NewImageFromImage(frame))
	}
	return f, nil
}

func errorFrames(path string, err error) *Frames {
	img := CreateErrorImage(400, 300, path, err.Error())
	return &Frames{
		Images: []*ebiten.Image{img},
		Width:  400,
		Height: 300,
	}
}
