package runtime

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"

	errs "github.com/howsoai/amalgam-go/errors"
)

func newTestHandle(t *testing.T, f *fakeEngine) *Amalgam {
	t.Helper()
	a, err := NewFromEntryPoints(f, Options{})
	if err != nil {
		t.Fatalf("NewFromEntryPoints failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestLoadEntityGeneratesHandle(t *testing.T) {
	f := newFakeEngine(t)
	a := newTestHandle(t, f)

	loaded, err := a.LoadEntity(LoadEntityOptions{Path: "model.amlg"})
	if err != nil {
		t.Fatalf("LoadEntity failed: %v", err)
	}
	if loaded.Handle == "" {
		t.Fatal("generated handle is empty")
	}
	if _, err := uuid.Parse(loaded.Handle); err != nil {
		t.Errorf("generated handle %q is not a UUID: %v", loaded.Handle, err)
	}
	if len(f.entities) != 1 || f.entities[0] != loaded.Handle {
		t.Errorf("engine saw entities %v, want [%q]", f.entities, loaded.Handle)
	}
}

func TestLoadEntityFailure(t *testing.T) {
	f := newFakeEngine(t)
	f.failLoad = true
	a := newTestHandle(t, f)

	loaded, err := a.LoadEntity(LoadEntityOptions{Handle: "h", Path: "bad.amlg"})
	if err == nil {
		t.Fatal("LoadEntity succeeded, want error")
	}
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("error type = %T, want *errs.Error", err)
	}
	if e.Phase != errs.PhaseCall || e.Kind != errs.KindNativeCallFailure {
		t.Errorf("got phase %q kind %q, want %q %q",
			e.Phase, e.Kind, errs.PhaseCall, errs.KindNativeCallFailure)
	}
	if e.Path != "bad.amlg" {
		t.Errorf("error path = %q, want %q", e.Path, "bad.amlg")
	}
	if !strings.Contains(e.Detail, "syntax error") {
		t.Errorf("error detail %q does not carry the engine message", e.Detail)
	}
	if loaded.Status.Loaded {
		t.Error("status reports loaded despite failure")
	}
	if loaded.Status.Message != "syntax error" {
		t.Errorf("status message = %q, want %q", loaded.Status.Message, "syntax error")
	}
	f.assertNoLeaks()
}

func TestVerifyEntitySynthesizesStatus(t *testing.T) {
	f := newFakeEngine(t)
	f.absent["VerifyEntity"] = true
	a := newTestHandle(t, f)

	status, err := a.VerifyEntity("model.amlg")
	if err != nil {
		t.Fatalf("VerifyEntity failed: %v", err)
	}
	if !status.Loaded || status.Message != "" || status.Version != "" {
		t.Errorf("status = %+v, want synthesized success", status)
	}
	if len(f.calls) != 0 {
		t.Errorf("engine was called despite missing symbol: %v", f.calls)
	}
}

func TestCloneEntityFailure(t *testing.T) {
	f := newFakeEngine(t)
	f.failClone = true
	a := newTestHandle(t, f)

	err := a.CloneEntity(CloneEntityOptions{Handle: "howso", CloneHandle: "copy"})
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %v, want *errs.Error", err)
	}
	if e.Op != "CloneEntity" || e.Kind != errs.KindNativeCallFailure {
		t.Errorf("got op %q kind %q, want CloneEntity %q", e.Op, e.Kind, errs.KindNativeCallFailure)
	}
}

func TestSetRandomSeedFailure(t *testing.T) {
	f := newFakeEngine(t)
	f.failSeed = true
	a := newTestHandle(t, f)

	err := a.SetRandomSeed("howso", "abc")
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %v, want *errs.Error", err)
	}
	if e.Op != "SetRandomSeed" || e.Kind != errs.KindNativeCallFailure {
		t.Errorf("got op %q kind %q, want SetRandomSeed %q", e.Op, e.Kind, errs.KindNativeCallFailure)
	}
}

func TestGetEntities(t *testing.T) {
	f := newFakeEngine(t)
	a := newTestHandle(t, f)

	for _, handle := range []string{"first", "second"} {
		if _, err := a.LoadEntity(LoadEntityOptions{Handle: handle, Path: "model.amlg"}); err != nil {
			t.Fatalf("LoadEntity %q failed: %v", handle, err)
		}
	}
	freedBefore := f.freed

	handles, err := a.GetEntities()
	if err != nil {
		t.Fatalf("GetEntities failed: %v", err)
	}
	if want := []string{"first", "second"}; !reflect.DeepEqual(handles, want) {
		t.Errorf("handles = %v, want %v", handles, want)
	}
	if f.freed != freedBefore {
		t.Errorf("listing freed %d borrowed allocations", f.freed-freedBefore)
	}
}

func TestGetEntitiesEmpty(t *testing.T) {
	f := newFakeEngine(t)
	a := newTestHandle(t, f)

	handles, err := a.GetEntities()
	if err != nil {
		t.Fatalf("GetEntities failed: %v", err)
	}
	if len(handles) != 0 {
		t.Errorf("handles = %v, want none", handles)
	}
}

func TestGetEntitiesUntraced(t *testing.T) {
	f := newFakeEngine(t)
	dir := t.TempDir()
	a, err := NewFromEntryPoints(f, Options{Trace: true, TraceDir: dir})
	if err != nil {
		t.Fatalf("NewFromEntryPoints failed: %v", err)
	}

	if _, err := a.GetEntities(); err != nil {
		t.Fatalf("GetEntities failed: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := readTranscript(t, filepath.Join(dir, "execution.trace"))
	if len(lines) != 1 || lines[0] != "EXIT" {
		t.Errorf("transcript = %v, want only EXIT", lines)
	}
}

func TestStoreAndDestroyReachEngine(t *testing.T) {
	f := newFakeEngine(t)
	a := newTestHandle(t, f)

	if err := a.StoreEntity(StoreEntityOptions{Handle: "howso", Path: "out.caml"}); err != nil {
		t.Fatalf("StoreEntity failed: %v", err)
	}
	if err := a.DestroyEntity("howso"); err != nil {
		t.Fatalf("DestroyEntity failed: %v", err)
	}

	want := []string{"StoreEntity howso out.caml", "DestroyEntity howso"}
	if !reflect.DeepEqual(f.calls, want) {
		t.Errorf("engine calls = %v, want %v", f.calls, want)
	}
}
