package amalgam

import "fmt"

// EntryPoints is the fixed set of native entry points consumed by this
// binding, one method per C symbol, declared with the exact parameter and
// return encodings of the ABI. Pointer-typed results are raw addresses in
// native memory: methods documented as owned return allocations that must be
// released through DeleteString exactly once; methods documented as borrowed
// return views into engine-owned storage that must never be freed.
//
// engine.Library implements this interface over a loaded shared library.
// Tests implement it over in-process fakes.
type EntryPoints interface {
	// LoadEntity loads an entity from a source file under the given handle.
	LoadEntity(handle, path *byte, persistent, loadContained, escapeFilename, escapeContainedFilenames bool, writeLog, printLog *byte) StatusRecord

	// VerifyEntity checks a source file without loading it.
	VerifyEntity(path *byte) StatusRecord

	// CloneEntity copies a loaded entity under a new handle.
	CloneEntity(handle, cloneHandle, path *byte, persistent bool, writeLog, printLog *byte) bool

	// StoreEntity writes a loaded entity to a source file.
	StoreEntity(handle, path *byte, updatePersistenceLocation, storeContained bool)

	// DestroyEntity unloads an entity.
	DestroyEntity(handle *byte)

	// SetRandomSeed reseeds an entity's random stream.
	SetRandomSeed(handle, seed *byte) bool

	// GetEntities returns a borrowed char** of loaded entity handles and
	// stores the element count through count.
	GetEntities(count *uint64) uintptr

	// GetJSONPtrFromLabel returns a label's value as an owned JSON string.
	GetJSONPtrFromLabel(handle, label *byte) uintptr

	// SetJSONToLabel assigns a label from a JSON string.
	SetJSONToLabel(handle, label, json *byte)

	// ExecuteEntityJsonPtr executes a label with JSON arguments and returns
	// the owned JSON response.
	ExecuteEntityJsonPtr(handle, label, json *byte) uintptr

	// GetNumberFromLabel reads a label's numeric value.
	GetNumberFromLabel(handle, label *byte) float64

	// SetNumberToLabel assigns a label's numeric value.
	SetNumberToLabel(handle, label *byte, value float64)

	// GetStringFromLabel returns a label's value as an owned string.
	GetStringFromLabel(handle, label *byte) uintptr

	// SetStringToLabel assigns a label's string value.
	SetStringToLabel(handle, label, value *byte)

	// GetStringListPtrFromLabel returns a label's value as a borrowed
	// char**; its length comes from GetStringListLengthFromLabel.
	GetStringListPtrFromLabel(handle, label *byte) uintptr

	// GetStringListLengthFromLabel reports the element count of a string
	// list label.
	GetStringListLengthFromLabel(handle, label *byte) uint64

	// SetStringListToLabel assigns a label from an array of strings.
	SetStringListToLabel(handle, label *byte, list **byte, length uint64)

	// GetVersionString returns the engine's semantic version as an owned
	// string.
	GetVersionString() uintptr

	// GetConcurrencyTypeString returns the build's concurrency flavor
	// (e.g. "MultiThreaded") as an owned string.
	GetConcurrencyTypeString() uintptr

	// GetMaxNumThreads reports the engine's thread cap.
	GetMaxNumThreads() uint64

	// SetMaxNumThreads sets the engine's thread cap; 0 means all logical
	// cores. No effect on single-threaded builds.
	SetMaxNumThreads(count uint64)

	// IsSBFDataStoreEnabled reports whether SBF tree structures are active.
	IsSBFDataStoreEnabled() bool

	// SetSBFDataStoreEnabled toggles SBF tree structures.
	SetSBFDataStoreEnabled(enabled bool)

	// DeleteString releases an owned string allocation. It is the single
	// deallocation entry point for every owned result above.
	DeleteString(ptr uintptr)
}

// SymbolChecker reports which entry points the loaded binary actually
// exports. Older engine builds predate parts of the surface; the runtime
// consults this before calling optional entry points.
type SymbolChecker interface {
	Has(name string) bool
}

// StatusRecord mirrors the C struct returned by LoadEntity and VerifyEntity:
//
//	struct { bool loaded; char* message; char* version; }
//
// Message and Version are owned string addresses; decoding a record releases
// both. Field order and padding match the native layout on amd64 and arm64,
// the only word sizes the engine ships for.
type StatusRecord struct {
	Loaded  bool
	Message uintptr
	Version uintptr
}

// LoadStatus is the decoded form of a StatusRecord.
type LoadStatus struct {
	Loaded  bool
	Message string
	Version string
}

// DefaultLoadStatus is the success shape synthesized when the loaded binary
// does not export a status-returning entry point.
func DefaultLoadStatus() LoadStatus {
	return LoadStatus{Loaded: true}
}

// String renders the status in trace-reply form.
func (s LoadStatus) String() string {
	return fmt.Sprintf("%t,\"%s\",\"%s\"", s.Loaded, s.Message, s.Version)
}
