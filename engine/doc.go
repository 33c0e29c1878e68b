// Package engine loads one Amalgam shared library and binds its exported
// entry points without cgo.
//
// # Architecture
//
// The package provides one type:
//
//	Library - a loaded engine binary with its exports registered
//
// Open resolves every exported function up front via purego, so a Library
// that constructs successfully can service any required call for its whole
// lifetime. Registration failures are detected at load time, not at first
// call.
//
// # Entry Point Registration
//
// Entry points split into a required core and an optional extension set:
//
//	Required    LoadEntity, CloneEntity, StoreEntity, DestroyEntity,
//	            SetRandomSeed, GetEntities, GetJSONPtrFromLabel,
//	            SetJSONToLabel, ExecuteEntityJsonPtr, GetVersionString,
//	            DeleteString
//	Optional    VerifyEntity, number/string/string-list label accessors,
//	            GetConcurrencyTypeString, thread-count and SBF datastore
//	            accessors
//
// A missing required symbol fails Open with a missing_symbol error naming
// it. Missing optional symbols are tolerated: older engine builds predate
// them, and callers probe with Has before depending on one.
//
// # ABI
//
// Signatures registered here mirror the engine ABI exactly: fixed-width
// booleans, NUL-terminated byte buffers, pointer-to-pointer string arrays,
// and a two-field status record returned by value. Entry points that return
// engine-allocated strings are registered as returning raw addresses so the
// caller's obligation to route them through DeleteString stays visible in
// the types; see the marshal package for the ownership rules.
//
// # Thread Safety
//
// Library is NOT safe for concurrent use. The engine binary may be
// internally multi-threaded, but calls into it from this layer must be
// serialized by the caller.
package engine
