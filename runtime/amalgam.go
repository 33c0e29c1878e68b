package runtime

import (
	"fmt"
	"strconv"

	"go.uber.org/zap"

	amalgam "github.com/howsoai/amalgam-go"
	"github.com/howsoai/amalgam-go/engine"
	"github.com/howsoai/amalgam-go/marshal"
	"github.com/howsoai/amalgam-go/resolver"
	"github.com/howsoai/amalgam-go/trace"
)

// Amalgam is one loaded engine binary together with its call scopes and
// trace transcript. All calls run synchronously on the calling goroutine in
// invocation order; one handle is NOT safe for concurrent use. Callers
// needing parallelism construct separate handles.
type Amalgam struct {
	ep       amalgam.EntryPoints
	lib      *engine.Library
	resolved resolver.Resolved
	scopes   *marshal.Manager
	rec      *trace.Recorder
	opts     Options
}

// New resolves the engine binary for this platform, loads it, and applies
// the construction-time engine settings from opts. Resolution and load
// failures abort construction; a trace file failure only disables tracing.
func New(opts Options) (*Amalgam, error) {
	res, err := resolver.Resolve(resolver.Request{
		Path:    opts.LibraryPath,
		Variant: opts.LibraryVariant,
		OS:      opts.OS,
		Arch:    opts.Arch,
		LibRoot: opts.LibDir,
	})
	if err != nil {
		return nil, err
	}

	lib, err := engine.Open(res.Path)
	if err != nil {
		return nil, err
	}

	a, err := newFromEntryPoints(lib, opts)
	if err != nil {
		_ = lib.Close()
		return nil, err
	}
	a.lib = lib
	a.resolved = res

	Logger().Debug("amalgam handle ready",
		zap.String("path", res.Path),
		zap.String("variant", res.Variant),
		zap.Bool("trace", a.rec.Enabled()))
	return a, nil
}

// NewFromEntryPoints builds a handle over an already-bound ABI, skipping
// resolution and loading. Tracing, scope management, and construction-time
// settings behave exactly as in New.
func NewFromEntryPoints(ep amalgam.EntryPoints, opts Options) (*Amalgam, error) {
	return newFromEntryPoints(ep, opts)
}

func newFromEntryPoints(ep amalgam.EntryPoints, opts Options) (*Amalgam, error) {
	var rec *trace.Recorder
	if opts.Trace {
		r, err := trace.Open(trace.Config{
			Dir:    opts.TraceDir,
			File:   opts.TraceFile,
			Append: opts.AppendTrace,
		})
		if err != nil {
			Logger().Warn("tracing disabled", zap.Error(err))
		} else {
			rec = r
		}
	}

	a := &Amalgam{
		ep:   ep,
		rec:  rec,
		opts: opts,
		scopes: marshal.NewManager(marshal.Config{
			Free:     ep.DeleteString,
			Interval: opts.GCInterval,
		}),
	}

	if opts.SBFDataStore != nil {
		if err := a.SetSBFDataStore(*opts.SBFDataStore); err != nil {
			_ = a.rec.Close()
			return nil, err
		}
	}
	if opts.MaxNumThreads != nil {
		if err := a.SetMaxNumThreads(*opts.MaxNumThreads); err != nil {
			_ = a.rec.Close()
			return nil, err
		}
	}
	return a, nil
}

// has reports whether the bound ABI exports name. ABIs that cannot be
// probed are assumed complete.
func (a *Amalgam) has(name string) bool {
	if c, ok := a.ep.(amalgam.SymbolChecker); ok {
		return c.Has(name)
	}
	return true
}

// ResolvedPath returns the library file this handle loaded, empty for
// handles built over injected entry points.
func (a *Amalgam) ResolvedPath() string {
	return a.resolved.Path
}

// Variant returns the resolved build variant, e.g. "-mt".
func (a *Amalgam) Variant() string {
	return a.resolved.Variant
}

// Trace returns the transcript recorder; nil-safe to use when tracing is
// disabled.
func (a *Amalgam) Trace() *trace.Recorder {
	return a.rec
}

// ResetTrace finalizes the current transcript and starts a new one named
// file, re-emitting the most recent load command for replay context.
func (a *Amalgam) ResetTrace(file string) error {
	return a.rec.Reset(file)
}

func (a *Amalgam) String() string {
	interval := "none"
	if a.opts.GCInterval != nil {
		interval = strconv.Itoa(*a.opts.GCInterval)
	}
	return fmt.Sprintf("Amalgam Path:\t\t %s\nAmalgam GC Interval:\t %s\n",
		a.resolved.Path, interval)
}

// Close finalizes the trace transcript. The engine binary stays loaded
// unless UnloadOnClose was set: unloading invalidates every entity the
// engine still holds, so it is opt-in.
func (a *Amalgam) Close() error {
	err := a.rec.Close()
	if a.opts.UnloadOnClose && a.lib != nil {
		if cerr := a.lib.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
