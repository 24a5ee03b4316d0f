// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about table conversion, graphic lifecycle and instance
// discovery.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which avoids import
// cycles and keeps the library free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCodecHooks(&myCodecHooks{})
//	    observability.SetGraphicsHooks(&myGraphicsHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Codec().OnExtractStart(ctx, layer, total)
//	// ... read rows ...
//	observability.Codec().OnExtractComplete(ctx, layer, rows, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Codec Hooks
// =============================================================================

// CodecHooks receives events from feature table extraction and injection.
type CodecHooks interface {
	// Extraction events
	OnExtractStart(ctx context.Context, layer string, total int)
	OnExtractComplete(ctx context.Context, layer string, rows int, duration time.Duration, err error)

	// Injection events
	OnInjectStart(ctx context.Context, total int)
	OnInjectComplete(ctx context.Context, added, skipped int, duration time.Duration, err error)

	// OnRowSkipped records a row dropped from a batch.
	OnRowSkipped(ctx context.Context, op string, row int, err error)
}

// =============================================================================
// Graphics Hooks
// =============================================================================

// GraphicsHooks receives events from the graphic lifecycle engine.
type GraphicsHooks interface {
	// OnGraphicCreated records a new tagged graphic.
	OnGraphicCreated(ctx context.Context, id int, kind string)

	// OnGraphicDeleted records an id-based deletion.
	OnGraphicDeleted(ctx context.Context, id int)

	// OnScratchLayerCreated records creation of the scratch graphics layer.
	OnScratchLayerCreated(ctx context.Context, name string)

	// OnCleared records a full clear.
	OnCleared(ctx context.Context)
}

// =============================================================================
// Locator Hooks
// =============================================================================

// LocatorHooks receives events from host instance discovery.
type LocatorHooks interface {
	// OnScan records a process scan and how many candidate windows it found.
	OnScan(ctx context.Context, process string, candidates int, duration time.Duration)

	// OnAttach records an attach attempt.
	OnAttach(ctx context.Context, process string, ok bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCodecHooks is a no-op implementation of CodecHooks.
type NoopCodecHooks struct{}

func (NoopCodecHooks) OnExtractStart(context.Context, string, int) {}
func (NoopCodecHooks) OnExtractComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopCodecHooks) OnInjectStart(context.Context, int)                               {}
func (NoopCodecHooks) OnInjectComplete(context.Context, int, int, time.Duration, error) {}
func (NoopCodecHooks) OnRowSkipped(context.Context, string, int, error)                 {}

// NoopGraphicsHooks is a no-op implementation of GraphicsHooks.
type NoopGraphicsHooks struct{}

func (NoopGraphicsHooks) OnGraphicCreated(context.Context, int, string) {}
func (NoopGraphicsHooks) OnGraphicDeleted(context.Context, int)         {}
func (NoopGraphicsHooks) OnScratchLayerCreated(context.Context, string) {}
func (NoopGraphicsHooks) OnCleared(context.Context)                     {}

// NoopLocatorHooks is a no-op implementation of LocatorHooks.
type NoopLocatorHooks struct{}

func (NoopLocatorHooks) OnScan(context.Context, string, int, time.Duration) {}
func (NoopLocatorHooks) OnAttach(context.Context, string, bool)             {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	codecHooks    CodecHooks    = NoopCodecHooks{}
	graphicsHooks GraphicsHooks = NoopGraphicsHooks{}
	locatorHooks  LocatorHooks  = NoopLocatorHooks{}
	hooksMu       sync.RWMutex
)

// SetCodecHooks registers custom codec hooks.
// This should be called once at application startup before any table operations.
func SetCodecHooks(h CodecHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		codecHooks = h
	}
}

// SetGraphicsHooks registers custom graphics hooks.
// This should be called once at application startup before any drawing.
func SetGraphicsHooks(h GraphicsHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphicsHooks = h
	}
}

// SetLocatorHooks registers custom locator hooks.
// This should be called once at application startup before attaching.
func SetLocatorHooks(h LocatorHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		locatorHooks = h
	}
}

// Codec returns the registered codec hooks.
func Codec() CodecHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return codecHooks
}

// Graphics returns the registered graphics hooks.
func Graphics() GraphicsHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphicsHooks
}

// Locator returns the registered locator hooks.
func Locator() LocatorHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return locatorHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	codecHooks = NoopCodecHooks{}
	graphicsHooks = NoopGraphicsHooks{}
	locatorHooks = NoopLocatorHooks{}
}
