// Package resolver maps a platform, architecture and build variant to the
// concrete engine shared-library file, or validates an explicitly supplied
// path.
//
// The engine ships one binary per (os, arch, variant) combination under a
// fixed tree:
//
//	<libroot>/<os>/<arch>/amalgam<variant>.<ext>
//
// e.g. lib/linux/amd64/amalgam-mt.so. Supported combinations:
//
//	windows  amd64                   .dll
//	darwin   amd64, arm64            .dylib
//	linux    amd64, arm64, arm64_8a  .so
//
// The variant defaults to multithreaded ("-mt") everywhere except the
// low-power arm64_8a build, which only ships single-threaded ("-st").
// Architecture aliases are normalized (x86_64 -> amd64, aarch64*/arm64* ->
// arm64); arm64_8a is never detected and must be pinned explicitly.
//
// Resolution is pure: it inspects the filesystem but never loads anything.
package resolver
