package engine

import (
	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	amalgam "github.com/howsoai/amalgam-go"
	errs "github.com/howsoai/amalgam-go/errors"
)

// Library is one loaded engine binary with its exported entry points bound.
// It implements amalgam.EntryPoints and amalgam.SymbolChecker.
type Library struct {
	handle  uintptr
	path    string
	symbols map[string]bool
	procs   procs
}

var (
	_ amalgam.EntryPoints   = (*Library)(nil)
	_ amalgam.SymbolChecker = (*Library)(nil)
)

// procs holds the bound entry point functions. Owned char* results stay
// uintptr so the DeleteString obligation is visible in the types.
type procs struct {
	loadEntity                   func(handle, path *byte, persistent, loadContained, escapeFilename, escapeContainedFilenames bool, writeLog, printLog *byte) amalgam.StatusRecord
	verifyEntity                 func(path *byte) amalgam.StatusRecord
	cloneEntity                  func(handle, cloneHandle, path *byte, persistent bool, writeLog, printLog *byte) bool
	storeEntity                  func(handle, path *byte, updatePersistenceLocation, storeContained bool)
	destroyEntity                func(handle *byte)
	setRandomSeed                func(handle, seed *byte) bool
	getEntities                  func(count *uint64) uintptr
	getJSONPtrFromLabel          func(handle, label *byte) uintptr
	setJSONToLabel               func(handle, label, json *byte)
	executeEntityJSONPtr         func(handle, label, json *byte) uintptr
	getNumberFromLabel           func(handle, label *byte) float64
	setNumberToLabel             func(handle, label *byte, value float64)
	getStringFromLabel           func(handle, label *byte) uintptr
	setStringToLabel             func(handle, label, value *byte)
	getStringListPtrFromLabel    func(handle, label *byte) uintptr
	getStringListLengthFromLabel func(handle, label *byte) uint64
	setStringListToLabel         func(handle, label *byte, list **byte, length uint64)
	getVersionString             func() uintptr
	getConcurrencyTypeString     func() uintptr
	getMaxNumThreads             func() uint64
	setMaxNumThreads             func(count uint64)
	isSBFDataStoreEnabled        func() bool
	setSBFDataStoreEnabled       func(enabled bool)
	deleteString                 func(ptr uintptr)
}

type registration struct {
	name     string
	fptr     any
	required bool
}

func (l *Library) registrations() []registration {
	return []registration{
		{"LoadEntity", &l.procs.loadEntity, true},
		{"CloneEntity", &l.procs.cloneEntity, true},
		{"StoreEntity", &l.procs.storeEntity, true},
		{"DestroyEntity", &l.procs.destroyEntity, true},
		{"SetRandomSeed", &l.procs.setRandomSeed, true},
		{"GetEntities", &l.procs.getEntities, true},
		{"GetJSONPtrFromLabel", &l.procs.getJSONPtrFromLabel, true},
		{"SetJSONToLabel", &l.procs.setJSONToLabel, true},
		{"ExecuteEntityJsonPtr", &l.procs.executeEntityJSONPtr, true},
		{"GetVersionString", &l.procs.getVersionString, true},
		{"DeleteString", &l.procs.deleteString, true},

		{"VerifyEntity", &l.procs.verifyEntity, false},
		{"GetNumberFromLabel", &l.procs.getNumberFromLabel, false},
		{"SetNumberToLabel", &l.procs.setNumberToLabel, false},
		{"GetStringFromLabel", &l.procs.getStringFromLabel, false},
		{"SetStringToLabel", &l.procs.setStringToLabel, false},
		{"GetStringListPtrFromLabel", &l.procs.getStringListPtrFromLabel, false},
		{"GetStringListLengthFromLabel", &l.procs.getStringListLengthFromLabel, false},
		{"SetStringListToLabel", &l.procs.setStringListToLabel, false},
		{"GetConcurrencyTypeString", &l.procs.getConcurrencyTypeString, false},
		{"GetMaxNumThreads", &l.procs.getMaxNumThreads, false},
		{"SetMaxNumThreads", &l.procs.setMaxNumThreads, false},
		{"IsSBFDataStoreEnabled", &l.procs.isSBFDataStoreEnabled, false},
		{"SetSBFDataStoreEnabled", &l.procs.setSBFDataStoreEnabled, false},
	}
}

// Open loads the shared library at path and binds its entry points. A
// required entry point failing to bind closes the handle and reports
// missing_symbol; absent optional entry points are tolerated and reported
// false by Has.
func Open(path string) (*Library, error) {
	handle, err := openLibrary(path)
	if err != nil {
		return nil, errs.OpenFailed(path, err)
	}

	l := &Library{handle: handle, path: path, symbols: make(map[string]bool)}
	for _, reg := range l.registrations() {
		if l.register(reg.fptr, reg.name) {
			continue
		}
		if reg.required {
			_ = closeLibrary(handle)
			return nil, errs.MissingSymbol(reg.name)
		}
		Logger().Debug("optional entry point absent", zap.String("symbol", reg.name))
	}

	Logger().Debug("engine library loaded",
		zap.String("path", path),
		zap.Int("symbols", len(l.symbols)))
	return l, nil
}

// register binds one exported symbol; false when the export is absent.
func (l *Library) register(fptr any, name string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()
	purego.RegisterLibFunc(fptr, l.handle, name)
	l.symbols[name] = true
	return true
}

// Has reports whether the loaded binary exports the named entry point.
func (l *Library) Has(name string) bool {
	return l.symbols[name]
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

// Close unloads the shared library. Entities held inside the engine do not
// survive it; callers order teardown accordingly. Safe to call twice.
func (l *Library) Close() error {
	if l.handle == 0 {
		return nil
	}
	err := closeLibrary(l.handle)
	l.handle = 0
	if err != nil {
		return errs.Wrap(errs.PhaseLoad, errs.KindOpenFailed, err, "could not unload shared library")
	}
	return nil
}

func (l *Library) LoadEntity(handle, path *byte, persistent, loadContained, escapeFilename, escapeContainedFilenames bool, writeLog, printLog *byte) amalgam.StatusRecord {
	return l.procs.loadEntity(handle, path, persistent, loadContained, escapeFilename, escapeContainedFilenames, writeLog, printLog)
}

func (l *Library) VerifyEntity(path *byte) amalgam.StatusRecord {
	return l.procs.verifyEntity(path)
}

func (l *Library) CloneEntity(handle, cloneHandle, path *byte, persistent bool, writeLog, printLog *byte) bool {
	return l.procs.cloneEntity(handle, cloneHandle, path, persistent, writeLog, printLog)
}

func (l *Library) StoreEntity(handle, path *byte, updatePersistenceLocation, storeContained bool) {
	l.procs.storeEntity(handle, path, updatePersistenceLocation, storeContained)
}

func (l *Library) DestroyEntity(handle *byte) {
	l.procs.destroyEntity(handle)
}

func (l *Library) SetRandomSeed(handle, seed *byte) bool {
	return l.procs.setRandomSeed(handle, seed)
}

func (l *Library) GetEntities(count *uint64) uintptr {
	return l.procs.getEntities(count)
}

func (l *Library) GetJSONPtrFromLabel(handle, label *byte) uintptr {
	return l.procs.getJSONPtrFromLabel(handle, label)
}

func (l *Library) SetJSONToLabel(handle, label, json *byte) {
	l.procs.setJSONToLabel(handle, label, json)
}

func (l *Library) ExecuteEntityJsonPtr(handle, label, json *byte) uintptr {
	return l.procs.executeEntityJSONPtr(handle, label, json)
}

func (l *Library) GetNumberFromLabel(handle, label *byte) float64 {
	return l.procs.getNumberFromLabel(handle, label)
}

func (l *Library) SetNumberToLabel(handle, label *byte, value float64) {
	l.procs.setNumberToLabel(handle, label, value)
}

func (l *Library) GetStringFromLabel(handle, label *byte) uintptr {
	return l.procs.getStringFromLabel(handle, label)
}

func (l *Library) SetStringToLabel(handle, label, value *byte) {
	l.procs.setStringToLabel(handle, label, value)
}

func (l *Library) GetStringListPtrFromLabel(handle, label *byte) uintptr {
	return l.procs.getStringListPtrFromLabel(handle, label)
}

func (l *Library) GetStringListLengthFromLabel(handle, label *byte) uint64 {
	return l.procs.getStringListLengthFromLabel(handle, label)
}

func (l *Library) SetStringListToLabel(handle, label *byte, list **byte, length uint64) {
	l.procs.setStringListToLabel(handle, label, list, length)
}

func (l *Library) GetVersionString() uintptr {
	return l.procs.getVersionString()
}

func (l *Library) GetConcurrencyTypeString() uintptr {
	return l.procs.getConcurrencyTypeString()
}

func (l *Library) GetMaxNumThreads() uint64 {
	return l.procs.getMaxNumThreads()
}

func (l *Library) SetMaxNumThreads(count uint64) {
	l.procs.setMaxNumThreads(count)
}

func (l *Library) IsSBFDataStoreEnabled() bool {
	return l.procs.isSBFDataStoreEnabled()
}

func (l *Library) SetSBFDataStoreEnabled(enabled bool) {
	l.procs.setSBFDataStoreEnabled(enabled)
}

func (l *Library) DeleteString(ptr uintptr) {
	l.procs.deleteString(ptr)
}
