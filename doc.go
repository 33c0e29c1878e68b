// Package amalgam provides a Go binding to the Amalgam native compute engine.
//
// The engine ships as a prebuilt shared library (.so, .dylib or .dll) with a
// narrow C call surface: entity lifecycle commands, label accessors that
// exchange opaque JSON, and a handful of process-wide knobs. This library
// locates the correct binary for the running platform, loads it without cgo,
// marshals values across the foreign-function boundary with guaranteed
// release of native allocations, and records every call as a replayable
// execution trace.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	amalgam/             Root package with the EntryPoints ABI surface
//	├── runtime/         High-level handle exposing entity and label operations
//	├── engine/          Shared-library loading and symbol registration
//	├── resolver/        Platform/architecture/variant path resolution
//	├── marshal/         Cross-boundary buffers, owned results, call scopes
//	├── trace/           Replayable execution transcript recording
//	└── errors/          Structured error types for diagnostics
//
// # Quick Start
//
// Load the engine and run an entity:
//
//	amlg, err := runtime.New(runtime.Options{LibDir: "lib", Trace: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer amlg.Close()
//
//	res, err := amlg.LoadEntity(runtime.LoadEntityOptions{Path: "model.caml"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := amlg.ExecuteEntityJSON(res.Handle, "react", []byte(`{}`))
//	fmt.Println(string(out))
//
// # Ownership Model
//
// Every pointer crossing the boundary belongs to exactly one side:
//
//   - Host buffers passed in (handles, labels, JSON) are owned by the call
//     scope that encoded them and are released when the scope exits.
//   - Single-value string results (JSON, strings, version, the fields of a
//     status record) are allocated by the engine and owned by the host on
//     receipt; they must be freed through DeleteString exactly once. The
//     marshal package performs the copy-then-free atomically.
//   - List results (entity enumerations, string lists) are borrowed views
//     into engine-owned storage and must never be freed by the host.
//
// The asymmetry between single-string and list results is a contract of the
// engine ABI, not a convention of this binding.
//
// # Thread Safety
//
// A runtime handle is NOT safe for concurrent use. All marshalling, scope
// management and trace recording run synchronously on the calling goroutine,
// and calls are processed strictly in invocation order. Callers needing
// parallelism must serialize externally or load independent handles. The
// engine itself may be internally multithreaded; its thread count is
// configurable through the handle.
//
// # Memory Pacing
//
// Transient marshalling buffers accumulate between garbage collections. An
// optional pacing interval forces a full collection once per N+1 call scopes
// to bound peak transient memory; interval 0 collects after every call at a
// cost on the order of 150x throughput. With no interval configured the
// binding never forces collection.
package amalgam
