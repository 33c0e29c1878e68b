package runtime

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	errs "github.com/howsoai/amalgam-go/errors"
)

// Options configures one Amalgam handle at construction.
type Options struct {
	// LibraryPath loads an exact file instead of resolving one. Its
	// filename's variant suffix wins over LibraryVariant.
	LibraryPath string `yaml:"library_path"`

	// LibraryVariant picks a build variant, "-mt" or "-st". Defaults per
	// architecture.
	LibraryVariant string `yaml:"library_variant"`

	// Arch overrides the detected architecture, e.g. "amd64", "arm64",
	// "arm64_8a".
	Arch string `yaml:"arch"`

	// OS overrides the detected operating system.
	OS string `yaml:"os"`

	// LibDir is the root of the lib/<os>/<arch> tree the resolver searches.
	LibDir string `yaml:"lib_dir"`

	// Trace enables the execution transcript.
	Trace bool `yaml:"trace"`

	// TraceDir is the transcript directory, created if missing. Defaults to
	// the working directory.
	TraceDir string `yaml:"trace_dir"`

	// TraceFile is the transcript base filename.
	TraceFile string `yaml:"trace_file"`

	// AppendTrace continues an existing transcript instead of rotating.
	AppendTrace bool `yaml:"append_trace"`

	// GCInterval paces forced collection across call scopes: a pass once
	// more than this many scopes complete. 0 collects at roughly every
	// call, around two orders of magnitude slower. Nil never forces.
	GCInterval *int `yaml:"gc_interval"`

	// MaxNumThreads caps the engine's worker threads at construction.
	// 0 uses all visible logical cores. Nil leaves the engine default.
	MaxNumThreads *uint64 `yaml:"max_num_threads"`

	// SBFDataStore toggles the engine's SBF tree structures at
	// construction. Nil leaves the engine default.
	SBFDataStore *bool `yaml:"sbf_datastore"`

	// UnloadOnClose dlcloses the engine binary on Close. Off by default:
	// unloading invalidates every entity the engine still holds.
	UnloadOnClose bool `yaml:"unload_on_close"`
}

// LoadOptions reads Options from a YAML file. Path fields support a leading
// "~" for the user home directory.
func LoadOptions(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(ExpandUser(path))
	if err != nil {
		return opts, errs.Wrap(errs.PhaseResolve, errs.KindIOFailure, err, "could not read options file")
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, errs.Wrap(errs.PhaseResolve, errs.KindIOFailure, err, "could not parse options file")
	}
	opts.expandPaths()
	return opts, nil
}

func (o *Options) expandPaths() {
	o.LibraryPath = ExpandUser(o.LibraryPath)
	o.LibDir = ExpandUser(o.LibDir)
	o.TraceDir = ExpandUser(o.TraceDir)
}

// ExpandUser replaces a leading "~" with the user's home directory, matching
// shell behavior for configured paths. Paths it cannot expand pass through
// unchanged.
func ExpandUser(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
