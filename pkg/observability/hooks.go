// Package observability provides hooks around the stages of a conversion.
//
// Library code emits events through the registered hooks; the default
// implementation does nothing. Applications register their own
// implementation once at startup.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetConversionHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Conversion().OnLoadStart(ctx, "ipe", "drawing.ipe")
//	// ... load ...
//	observability.Conversion().OnLoadComplete(ctx, "ipe", "drawing.ipe", len(graphs), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// ConversionHooks receives events from the conversion pipeline.
type ConversionHooks interface {
	// Load events
	OnLoadStart(ctx context.Context, format, source string)
	OnLoadComplete(ctx context.Context, format, source string, graphs int, duration time.Duration, err error)

	// OnTransform records the post-load transforms applied to one graph.
	OnTransform(ctx context.Context, source string, scaled, randomized bool, duration time.Duration, err error)

	// Write events
	OnWriteStart(ctx context.Context, format, target string)
	OnWriteComplete(ctx context.Context, format, target string, bytes int64, duration time.Duration, err error)
}

// NoopConversionHooks is a no-op implementation of ConversionHooks.
type NoopConversionHooks struct{}

func (NoopConversionHooks) OnLoadStart(context.Context, string, string) {}
func (NoopConversionHooks) OnLoadComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopConversionHooks) OnTransform(context.Context, string, bool, bool, time.Duration, error) {}
func (NoopConversionHooks) OnWriteStart(context.Context, string, string)                          {}
func (NoopConversionHooks) OnWriteComplete(context.Context, string, string, int64, time.Duration, error) {
}

var (
	conversionHooks ConversionHooks = NoopConversionHooks{}
	hooksMu         sync.RWMutex
)

// SetConversionHooks registers custom conversion hooks. Nil is ignored.
// This should be called once at application startup before any conversion.
func SetConversionHooks(h ConversionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		conversionHooks = h
	}
}

// Conversion returns the registered conversion hooks.
func Conversion() ConversionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return conversionHooks
}

// Reset restores the no-op hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	conversionHooks = NoopConversionHooks{}
}
