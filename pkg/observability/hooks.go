// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation of the diagnostics pipeline
// without adding hard dependencies on specific observability backends. The
// linker driver can register hooks at startup to receive events about graph
// building, merging, compression, rendering and raised issues.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDiagnosticHooks(&myHooks{})
//	    // ... run linker
//	}
//
// Library packages call hooks to emit events:
//
//	observability.Diagnostics().OnBuildStart("klib", len(modules))
//	// ... build graph ...
//	observability.Diagnostics().OnBuildComplete("klib", nodes, edges, duration, err)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Diagnostic Hooks
// =============================================================================

// DiagnosticHooks receives events from the diagnostics pipeline.
// Events are emitted synchronously from the linker's failure path.
type DiagnosticHooks interface {
	// Build events
	OnBuildStart(builder string, modules int)
	OnBuildComplete(builder string, nodes, edges int, duration time.Duration, err error)

	// OnMerge records the merge of the external manifest with the resolver view.
	OnMerge(external, resolved, merged, folded int)

	// OnCompress records platform library compression. compressed is false
	// when libraries disagree on version or none are present.
	OnCompress(libraries int, version string, compressed bool)

	// OnRender records a rendered dependency tree.
	OnRender(lines int, elided bool)

	// OnIssue records a fatal linkage issue delivered to the sink.
	OnIssue(kind, eventID string)
}

// =============================================================================
// No-op Implementation
// =============================================================================

// NoopDiagnosticHooks is a no-op implementation of DiagnosticHooks.
type NoopDiagnosticHooks struct{}

func (NoopDiagnosticHooks) OnBuildStart(string, int)                              {}
func (NoopDiagnosticHooks) OnBuildComplete(string, int, int, time.Duration, error) {}
func (NoopDiagnosticHooks) OnMerge(int, int, int, int)                            {}
func (NoopDiagnosticHooks) OnCompress(int, string, bool)                          {}
func (NoopDiagnosticHooks) OnRender(int, bool)                                    {}
func (NoopDiagnosticHooks) OnIssue(string, string)                                {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	diagnosticHooks DiagnosticHooks = NoopDiagnosticHooks{}
	hooksMu         sync.RWMutex
)

// SetDiagnosticHooks registers custom diagnostic hooks.
// This should be called once at application startup. A nil value is ignored.
func SetDiagnosticHooks(h DiagnosticHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diagnosticHooks = h
	}
}

// Diagnostics returns the registered diagnostic hooks.
func Diagnostics() DiagnosticHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diagnosticHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	diagnosticHooks = NoopDiagnosticHooks{}
}
