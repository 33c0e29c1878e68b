package runtime

import (
	"fmt"
	"testing"
	"unsafe"

	amalgam "github.com/howsoai/amalgam-go"
	"github.com/howsoai/amalgam-go/marshal"
)

// fakeEngine implements the engine ABI over Go memory. Owned allocations
// stay alive in the live map until DeleteString releases them; borrowed
// list storage is pinned separately and never freed, mirroring the real
// engine's asymmetry.
type fakeEngine struct {
	t      *testing.T
	live   map[uintptr][]byte
	freed  int
	absent map[string]bool
	calls  []string

	entities     []string
	jsons        map[string][]byte
	numbers      map[string]float64
	texts        map[string]string
	lists        map[string][]string
	execResponse string
	version      string
	concurrency  string
	maxThreads   uint64
	sbf          bool

	failLoad  bool
	failClone bool
	failSeed  bool

	pinned [][]byte
	arrays [][]uintptr
}

var (
	_ amalgam.EntryPoints   = (*fakeEngine)(nil)
	_ amalgam.SymbolChecker = (*fakeEngine)(nil)
)

func newFakeEngine(t *testing.T) *fakeEngine {
	return &fakeEngine{
		t:            t,
		live:         make(map[uintptr][]byte),
		absent:       make(map[string]bool),
		jsons:        make(map[string][]byte),
		numbers:      make(map[string]float64),
		texts:        make(map[string]string),
		lists:        make(map[string][]string),
		execResponse: `{"ok":true}`,
		version:      "55.3.1",
		concurrency:  "MultiThreaded",
		maxThreads:   8,
	}
}

func (f *fakeEngine) Has(name string) bool {
	return !f.absent[name]
}

// cstring allocates an owned NUL-terminated copy the caller must release
// through DeleteString.
func (f *fakeEngine) cstring(s string) uintptr {
	b := append([]byte(s), 0)
	p := uintptr(unsafe.Pointer(&b[0]))
	f.live[p] = b
	return p
}

// borrow pins engine-owned list storage that is never released.
func (f *fakeEngine) borrow(values []string) uintptr {
	if len(values) == 0 {
		return 0
	}
	slots := make([]uintptr, len(values))
	for i, v := range values {
		b := append([]byte(v), 0)
		f.pinned = append(f.pinned, b)
		slots[i] = uintptr(unsafe.Pointer(&b[0]))
	}
	f.arrays = append(f.arrays, slots)
	return uintptr(unsafe.Pointer(&slots[0]))
}

func (f *fakeEngine) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeEngine) assertNoLeaks() {
	f.t.Helper()
	if len(f.live) != 0 {
		f.t.Errorf("%d engine allocations never freed", len(f.live))
	}
}

func str(p *byte) string {
	if p == nil {
		return ""
	}
	return marshal.GoString(uintptr(unsafe.Pointer(p)))
}

func labelKey(handle, label *byte) string {
	return str(handle) + "/" + str(label)
}

func (f *fakeEngine) LoadEntity(handle, path *byte, persistent, loadContained, escapeFilename, escapeContainedFilenames bool, writeLog, printLog *byte) amalgam.StatusRecord {
	f.record("LoadEntity %s %s", str(handle), str(path))
	if f.failLoad {
		return amalgam.StatusRecord{
			Message: f.cstring("syntax error"),
			Version: f.cstring(f.version),
		}
	}
	f.entities = append(f.entities, str(handle))
	return amalgam.StatusRecord{Loaded: true, Version: f.cstring(f.version)}
}

func (f *fakeEngine) VerifyEntity(path *byte) amalgam.StatusRecord {
	f.record("VerifyEntity %s", str(path))
	return amalgam.StatusRecord{
		Loaded:  true,
		Message: f.cstring(""),
		Version: f.cstring(f.version),
	}
}

func (f *fakeEngine) CloneEntity(handle, cloneHandle, path *byte, persistent bool, writeLog, printLog *byte) bool {
	f.record("CloneEntity %s %s", str(handle), str(cloneHandle))
	return !f.failClone
}

func (f *fakeEngine) StoreEntity(handle, path *byte, updatePersistenceLocation, storeContained bool) {
	f.record("StoreEntity %s %s", str(handle), str(path))
}

func (f *fakeEngine) DestroyEntity(handle *byte) {
	f.record("DestroyEntity %s", str(handle))
}

func (f *fakeEngine) SetRandomSeed(handle, seed *byte) bool {
	f.record("SetRandomSeed %s %s", str(handle), str(seed))
	return !f.failSeed
}

func (f *fakeEngine) GetEntities(count *uint64) uintptr {
	*count = uint64(len(f.entities))
	return f.borrow(f.entities)
}

func (f *fakeEngine) GetJSONPtrFromLabel(handle, label *byte) uintptr {
	return f.cstring(string(f.jsons[labelKey(handle, label)]))
}

func (f *fakeEngine) SetJSONToLabel(handle, label, json *byte) {
	f.jsons[labelKey(handle, label)] = []byte(str(json))
}

func (f *fakeEngine) ExecuteEntityJsonPtr(handle, label, json *byte) uintptr {
	f.record("ExecuteEntityJsonPtr %s %s %s", str(handle), str(label), str(json))
	return f.cstring(f.execResponse)
}

func (f *fakeEngine) GetNumberFromLabel(handle, label *byte) float64 {
	return f.numbers[labelKey(handle, label)]
}

func (f *fakeEngine) SetNumberToLabel(handle, label *byte, value float64) {
	f.numbers[labelKey(handle, label)] = value
}

func (f *fakeEngine) GetStringFromLabel(handle, label *byte) uintptr {
	return f.cstring(f.texts[labelKey(handle, label)])
}

func (f *fakeEngine) SetStringToLabel(handle, label, value *byte) {
	f.texts[labelKey(handle, label)] = str(value)
}

func (f *fakeEngine) GetStringListPtrFromLabel(handle, label *byte) uintptr {
	return f.borrow(f.lists[labelKey(handle, label)])
}

func (f *fakeEngine) GetStringListLengthFromLabel(handle, label *byte) uint64 {
	return uint64(len(f.lists[labelKey(handle, label)]))
}

func (f *fakeEngine) SetStringListToLabel(handle, label *byte, list **byte, length uint64) {
	slots := marshal.PointerSlots(uintptr(unsafe.Pointer(list)), int(length))
	values := make([]string, len(slots))
	for i, slot := range slots {
		values[i] = marshal.GoString(slot)
	}
	f.lists[labelKey(handle, label)] = values
}

func (f *fakeEngine) GetVersionString() uintptr {
	return f.cstring(f.version)
}

func (f *fakeEngine) GetConcurrencyTypeString() uintptr {
	return f.cstring(f.concurrency)
}

func (f *fakeEngine) GetMaxNumThreads() uint64 {
	return f.maxThreads
}

func (f *fakeEngine) SetMaxNumThreads(count uint64) {
	f.maxThreads = count
}

func (f *fakeEngine) IsSBFDataStoreEnabled() bool {
	return f.sbf
}

func (f *fakeEngine) SetSBFDataStoreEnabled(enabled bool) {
	f.sbf = enabled
}

func (f *fakeEngine) DeleteString(ptr uintptr) {
	if _, ok := f.live[ptr]; !ok {
		f.t.Errorf("DeleteString of unknown or already-freed pointer %#x", ptr)
		return
	}
	delete(f.live, ptr)
	f.freed++
}
