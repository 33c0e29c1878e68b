// Package errors provides structured error types for the amalgam binding.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the context an operator needs to
// self-diagnose a platform or build mismatch: the attempted path, the native
// symbol, and the library variants actually discoverable on disk.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindVariantNotFound).
//		Path("lib/linux/amd64/amalgam-omp.so").
//		Variants([]string{"-mt", "-st"}).
//		Detail("variant -omp not present").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedArchitecture("linux", "i386")
//	err := errors.CallFailed("CloneEntity", "engine returned false")
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on Phase and Kind.
package errors
