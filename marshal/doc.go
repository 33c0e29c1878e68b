// Package marshal moves values across the native engine boundary and
// guarantees the release of every allocation involved.
//
// # Ownership
//
// Two kinds of memory cross the boundary, with opposite owners:
//
//	Buffer       host-allocated, NUL-terminated input (handles, labels,
//	             JSON). Owned by the scope that encoded it; alive until the
//	             scope exits. Never nil, even for empty values.
//	Owned        engine-allocated result (JSON, strings, status fields).
//	             Ownership transfers to the host on receipt; Take copies the
//	             value and releases the allocation through the engine's
//	             deallocator exactly once. Unconsumed handles are released
//	             at scope exit.
//
// Borrowed results (entity enumerations, string-list labels) are views into
// engine-owned storage: GoBytes, GoString, PointerSlots and Strings copy
// them without freeing. The owned/borrowed split per entry point is a
// contract of the engine ABI.
//
// # Scopes
//
// A Scope is the append-only registry of buffers and owned results created
// during one logical call. Manager.With opens a scope, runs the call body,
// and tears the scope down unconditionally, error or not:
//
//	err := scopes.With(func(s *marshal.Scope) error {
//	    handle := s.Text("entity")
//	    out = s.Own(ep.GetJSONPtrFromLabel(handle.Ptr(), label.Ptr())).Take()
//	    return nil
//	})
//
// A scope is never retained past its call.
//
// # Pacing
//
// Transient buffers accumulate between garbage collections. Manager paces
// forced full collections across scope exits: with interval N configured,
// one reclamation pass runs per N+1 exits; interval 0 reclaims after every
// call at a documented cost on the order of 150x; with no interval the
// manager never forces collection. This is the binding's only bound on
// transient memory growth.
package marshal
