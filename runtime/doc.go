// Package runtime provides the high-level API for working with a loaded
// Amalgam engine.
//
// # Quick Start
//
//	a, err := runtime.New(runtime.Options{
//	    Trace:     true,
//	    TraceDir:  "traces",
//	    TraceFile: "session.trace",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	loaded, err := a.LoadEntity(runtime.LoadEntityOptions{
//	    Path: "model.amlg",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	response, err := a.ExecuteEntityJSON(loaded.Handle, "react",
//	    []byte(`{"action":"version"}`))
//	fmt.Println(string(response))
//
// # Configuration
//
// Options selects the library (explicit path, or resolved from OS,
// architecture, and build variant), tracing, collection pacing, and
// construction-time engine settings. LoadOptions reads the same structure
// from a YAML file:
//
//	lib_dir: /opt/amalgam/lib
//	library_variant: -mt
//	trace: true
//	trace_dir: traces
//	gc_interval: 100
//
// # Calls and Memory
//
// Every operation runs inside one marshal scope: argument buffers live until
// the call returns, engine-allocated results are copied out and freed
// exactly once, and forced collection is paced across calls by GCInterval
// rather than per call. See the marshal package for the ownership rules.
//
// # Tracing
//
// With Trace set, every operation appends its command line to a replayable
// transcript before the native call and its result after. ResetTrace swaps
// transcripts mid-session; Close finalizes with an EXIT marker. See the
// trace package for the format.
//
// # Thread Safety
//
// One Amalgam handle is NOT safe for concurrent use: calls execute strictly
// in invocation order on the calling goroutine, and the transcript is a
// faithful serialization of that order. Construct separate handles for
// parallel work; each loads the engine library independently.
package runtime
