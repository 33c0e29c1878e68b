package runtime

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	errs "github.com/howsoai/amalgam-go/errors"
)

func writeOptionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "amalgam.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeOptionsFile(t, `
lib_dir: /opt/amalgam/lib
library_variant: -st
arch: arm64
os: linux
trace: true
trace_dir: traces
trace_file: run.trace
append_trace: true
gc_interval: 100
max_num_threads: 4
sbf_datastore: true
unload_on_close: true
`)

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.LibDir != "/opt/amalgam/lib" {
		t.Errorf("LibDir = %q, want /opt/amalgam/lib", opts.LibDir)
	}
	if opts.LibraryVariant != "-st" {
		t.Errorf("LibraryVariant = %q, want -st", opts.LibraryVariant)
	}
	if opts.Arch != "arm64" || opts.OS != "linux" {
		t.Errorf("got arch %q os %q, want arm64 linux", opts.Arch, opts.OS)
	}
	if !opts.Trace || opts.TraceDir != "traces" || opts.TraceFile != "run.trace" || !opts.AppendTrace {
		t.Errorf("trace options = %+v, want enabled/traces/run.trace/append", opts)
	}
	if opts.GCInterval == nil || *opts.GCInterval != 100 {
		t.Errorf("GCInterval = %v, want 100", opts.GCInterval)
	}
	if opts.MaxNumThreads == nil || *opts.MaxNumThreads != 4 {
		t.Errorf("MaxNumThreads = %v, want 4", opts.MaxNumThreads)
	}
	if opts.SBFDataStore == nil || !*opts.SBFDataStore {
		t.Errorf("SBFDataStore = %v, want true", opts.SBFDataStore)
	}
	if !opts.UnloadOnClose {
		t.Error("UnloadOnClose not set")
	}
}

func TestLoadOptionsAbsentPointersStayNil(t *testing.T) {
	path := writeOptionsFile(t, "trace: false\n")

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.GCInterval != nil {
		t.Errorf("GCInterval = %v, want nil", opts.GCInterval)
	}
	if opts.MaxNumThreads != nil {
		t.Errorf("MaxNumThreads = %v, want nil", opts.MaxNumThreads)
	}
	if opts.SBFDataStore != nil {
		t.Errorf("SBFDataStore = %v, want nil", opts.SBFDataStore)
	}
}

func TestLoadOptionsZeroInterval(t *testing.T) {
	path := writeOptionsFile(t, "gc_interval: 0\n")

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if opts.GCInterval == nil || *opts.GCInterval != 0 {
		t.Errorf("GCInterval = %v, want explicit 0", opts.GCInterval)
	}
}

func TestLoadOptionsExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	path := writeOptionsFile(t, "lib_dir: ~/amalgam/lib\n")

	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if want := filepath.Join(home, "amalgam/lib"); opts.LibDir != want {
		t.Errorf("LibDir = %q, want %q", opts.LibDir, want)
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "absent.yaml"))
	var e *errs.Error
	if !errors.As(err, &e) {
		t.Fatalf("error = %v, want *errs.Error", err)
	}
	if e.Phase != errs.PhaseResolve || e.Kind != errs.KindIOFailure {
		t.Errorf("got phase %q kind %q, want %q %q",
			e.Phase, e.Kind, errs.PhaseResolve, errs.KindIOFailure)
	}
}

func TestLoadOptionsMalformedYAML(t *testing.T) {
	path := writeOptionsFile(t, "trace: [unclosed\n")

	if _, err := LoadOptions(path); err == nil {
		t.Error("LoadOptions succeeded on malformed YAML")
	}
}

func TestExpandUser(t *testing.T) {
	home, homeErr := os.UserHomeDir()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty", "", ""},
		{"plain", "lib/linux", "lib/linux"},
		{"absolute", "/opt/amalgam", "/opt/amalgam"},
		{"other_user", "~somebody/lib", "~somebody/lib"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandUser(tt.path); got != tt.want {
				t.Errorf("ExpandUser(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	t.Run("bare_tilde", func(t *testing.T) {
		if homeErr != nil {
			t.Skipf("no home directory: %v", homeErr)
		}
		if got := ExpandUser("~"); got != home {
			t.Errorf("ExpandUser(\"~\") = %q, want %q", got, home)
		}
	})
	t.Run("tilde_slash", func(t *testing.T) {
		if homeErr != nil {
			t.Skipf("no home directory: %v", homeErr)
		}
		if got, want := ExpandUser("~/lib"), filepath.Join(home, "lib"); got != want {
			t.Errorf("ExpandUser(\"~/lib\") = %q, want %q", got, want)
		}
	})
}
