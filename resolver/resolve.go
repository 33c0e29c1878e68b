package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/howsoai/amalgam-go/errors"
)

// DefaultLibRoot is the directory searched for bundled engine binaries when
// no explicit path or root is supplied.
const DefaultLibRoot = "lib"

// Build variants, distinguished by filename postfix.
const (
	VariantMultiThreaded  = "-mt"
	VariantSingleThreaded = "-st"
)

// ArchARM64LowPower is the low-power ARMv8-A build. It is never detected
// from the running machine; callers must pin it explicitly.
const ArchARM64LowPower = "arm64_8a"

// Request carries caller-supplied overrides for resolution. Zero-value
// fields are detected from the running environment or defaulted.
type Request struct {
	// Path is an explicit library file. When set, platform detection is
	// skipped and the effective variant is parsed from the filename.
	Path string

	// Variant is the requested build variant, e.g. "-st". Must begin with
	// "-". Defaults to "-mt", or "-st" on arm64_8a.
	Variant string

	// OS overrides the detected operating system (GOOS naming).
	OS string

	// Arch overrides the detected architecture. Aliases are normalized the
	// same way detected values are.
	Arch string

	// LibRoot is the directory holding the <os>/<arch> binary tree.
	// Defaults to DefaultLibRoot.
	LibRoot string
}

// Resolved is the outcome of resolution: the library file to load and the
// effective build variant. Immutable once computed; an engine handle keeps
// it for its whole lifetime.
type Resolved struct {
	Path    string
	Variant string

	// Warnings carries non-fatal compatibility notes, e.g. a requested
	// variant overridden by the one embedded in an explicit path.
	Warnings []string
}

// variantPattern captures the trailing "-token" of a library filename,
// before the extension: amalgam-st.dll -> st.
var variantPattern = regexp.MustCompile(`-([^.]+)(?:\.[^.]*)?$`)

// ParseVariant extracts the build variant embedded in a library filename.
// Returns "" when the filename carries none.
func ParseVariant(filename string) string {
	matches := variantPattern.FindAllStringSubmatch(filename, -1)
	if len(matches) == 0 {
		return ""
	}
	return "-" + matches[len(matches)-1][1]
}

// Resolve maps the request to a concrete shared-library path and effective
// build variant.
func Resolve(req Request) (Resolved, error) {
	if req.Variant != "" && !strings.HasPrefix(req.Variant, "-") {
		return Resolved{}, errors.InvalidVariantFormat(req.Variant)
	}

	if req.Path != "" {
		return resolveExplicit(req)
	}

	osName := req.OS
	if osName == "" {
		osName = runtime.GOOS
	}
	arch := normalizeArch(req.Arch)

	var dirOS, ext string
	var supported []string
	switch osName {
	case "windows":
		dirOS, ext = "windows", "dll"
		supported = []string{"amd64"}
	case "darwin":
		dirOS, ext = "darwin", "dylib"
		supported = []string{"amd64", "arm64"}
	case "linux":
		dirOS, ext = "linux", "so"
		supported = []string{"amd64", "arm64", ArchARM64LowPower}
	default:
		return Resolved{}, errors.UnsupportedPlatform(osName)
	}
	if !slices.Contains(supported, arch) {
		return Resolved{}, errors.UnsupportedArchitecture(osName, arch)
	}

	variant := req.Variant
	if variant == "" {
		if arch == ArchARM64LowPower {
			variant = VariantSingleThreaded
		} else {
			variant = VariantMultiThreaded
		}
	}

	root := req.LibRoot
	if root == "" {
		root = DefaultLibRoot
	}
	dir := filepath.Join(root, dirOS, arch)
	path := filepath.Join(dir, fmt.Sprintf("amalgam%s.%s", variant, ext))

	if _, err := os.Stat(path); err != nil {
		// Distinguish a wrong variant from a wholly absent binary so the
		// operator can see which builds are actually present.
		discoverable := discoverVariants(dir)
		if len(discoverable) > 0 && !slices.Contains(discoverable, variant) {
			return Resolved{}, errors.New(errors.PhaseResolve, errors.KindVariantNotFound).
				Path(path).
				Variants(discoverable).
				Detail("library variant %q is not among the variants present on disk", variant).
				Build()
		}
		return Resolved{}, errors.LibraryNotFound(path,
			"no engine library for this platform, architecture and variant combination")
	}

	return Resolved{Path: path, Variant: variant}, nil
}

// resolveExplicit validates a caller-supplied library path. The variant
// embedded in the filename always wins over a requested one.
func resolveExplicit(req Request) (Resolved, error) {
	res := Resolved{Path: req.Path}
	parsed := ParseVariant(filepath.Base(req.Path))
	if req.Variant != "" && req.Variant != parsed {
		w := fmt.Sprintf("requested library variant %q does not match the variant embedded in the library path and will be ignored", req.Variant)
		res.Warnings = append(res.Warnings, w)
		Logger().Warn("library variant ignored",
			zap.String("requested", req.Variant),
			zap.String("parsed", parsed),
			zap.String("path", req.Path))
	}
	res.Variant = parsed

	if _, err := os.Stat(req.Path); err != nil {
		return Resolved{}, errors.LibraryNotFound(req.Path,
			"no engine library at the supplied path; check that the path is correct")
	}
	return res, nil
}

// normalizeArch folds machine-reported aliases onto the canonical directory
// names. arm64_8a passes through untouched.
func normalizeArch(arch string) string {
	if arch == "" {
		arch = runtime.GOARCH
	}
	arch = strings.ToLower(arch)
	if arch == ArchARM64LowPower {
		return arch
	}
	switch {
	case arch == "x86_64":
		return "amd64"
	case strings.HasPrefix(arch, "aarch64"), strings.HasPrefix(arch, "arm64"):
		return "arm64"
	}
	return arch
}

// discoverVariants reports the build variants physically present in dir,
// sorted for stable messages.
func discoverVariants(dir string) []string {
	files, err := filepath.Glob(filepath.Join(dir, "amalgam*"))
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	var variants []string
	for _, f := range files {
		v := ParseVariant(filepath.Base(f))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			variants = append(variants, v)
		}
	}
	sort.Strings(variants)
	return variants
}
