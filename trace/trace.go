package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	errs "github.com/howsoai/amalgam-go/errors"
)

// DefaultFile is the trace filename used when none is configured.
const DefaultFile = "execution.trace"

// Config selects where the transcript is written.
type Config struct {
	// Dir is the trace directory, created if missing. Defaults to the
	// working directory.
	Dir string

	// File is the base filename. Defaults to DefaultFile.
	File string

	// Append continues an existing file instead of rotating to a new one.
	Append bool
}

// Recorder writes the transcript. A nil Recorder is valid and records
// nothing, so callers do not branch on whether tracing is enabled.
type Recorder struct {
	f          *os.File
	dir        string
	base       string
	path       string
	appendMode bool
	lastLoad   string
}

// Open creates the trace directory if needed and opens the transcript file,
// rotating past existing files unless cfg.Append is set.
func Open(cfg Config) (*Recorder, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	base := cfg.File
	if base == "" {
		base = DefaultFile
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.TraceIO(dir, err)
	}

	r := &Recorder{dir: dir, base: base, appendMode: cfg.Append}
	path, f, err := openFile(dir, base, cfg.Append)
	if err != nil {
		return nil, err
	}
	r.path, r.f = path, f
	Logger().Debug("trace file opened", zap.String("path", r.path))
	return r, nil
}

func openFile(dir, base string, appendMode bool) (string, *os.File, error) {
	if appendMode {
		path := filepath.Join(dir, base)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return "", nil, errs.TraceIO(path, err)
		}
		return path, f, nil
	}
	path := rotated(dir, base)
	f, err := os.Create(path)
	if err != nil {
		return "", nil, errs.TraceIO(path, err)
	}
	return path, f, nil
}

// rotated returns the first of <base>, <base>.1, <base>.2, ... that does not
// exist under dir.
func rotated(dir, base string) string {
	path := filepath.Join(dir, base)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); err != nil {
			return path
		}
		path = filepath.Join(dir, fmt.Sprintf("%s.%d", base, counter))
	}
}

// Enabled reports whether the recorder is writing anywhere.
func (r *Recorder) Enabled() bool {
	return r != nil && r.f != nil
}

// Path returns the file currently being written, empty when disabled.
func (r *Recorder) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Command records one replayable command line.
func (r *Recorder) Command(text string) {
	r.writeLine(text)
}

// LoadCommand records an entity-load command line and remembers it so a
// later Reset can re-emit it as the new transcript's replay context.
func (r *Recorder) LoadCommand(text string) {
	if !r.Enabled() {
		return
	}
	r.writeLine(text)
	r.lastLoad = text
}

// Reply records a raw engine result.
func (r *Recorder) Reply(value string) {
	r.writeLine(resultMarker + value)
}

// Comment records information not captured by the raw command lines.
func (r *Recorder) Comment(text string) {
	r.writeLine(noteMarker + text)
}

// Timestamp records a labelled wall-clock marker with millisecond detail.
func (r *Recorder) Timestamp(label string) {
	if !r.Enabled() {
		return
	}
	now := time.Now()
	r.writeLine(fmt.Sprintf("# TIME %s %s,%03d",
		label, now.Format("2006-01-02 15:04:05"), now.Nanosecond()/1e6))
}

// Reset finalizes the current transcript with an EXIT marker and starts a
// new one named file under the same directory, rotating as Open does. The
// most recent load command, if any, becomes the new file's first line so
// the transcript stays independently replayable.
func (r *Recorder) Reset(file string) error {
	if !r.Enabled() {
		return nil
	}
	r.writeLine("EXIT")
	if err := r.f.Close(); err != nil {
		Logger().Warn("trace close failed", zap.String("path", r.path), zap.Error(err))
	}
	r.f = nil

	r.base = file
	path, f, err := openFile(r.dir, file, r.appendMode)
	if err != nil {
		return err
	}
	r.path, r.f = path, f
	Logger().Debug("trace file reset", zap.String("path", r.path))

	if r.lastLoad != "" {
		r.writeLine(r.lastLoad)
	}
	return nil
}

// Close finalizes the transcript with an EXIT marker and releases the file.
// Safe to call more than once.
func (r *Recorder) Close() error {
	if !r.Enabled() {
		return nil
	}
	r.writeLine("EXIT")
	err := r.f.Close()
	r.f = nil
	if err != nil {
		return errs.TraceIO(r.path, err)
	}
	return nil
}

func (r *Recorder) writeLine(s string) {
	if !r.Enabled() {
		return
	}
	if _, err := r.f.WriteString(s + "\n"); err != nil {
		Logger().Warn("trace write failed", zap.String("path", r.path), zap.Error(err))
	}
}

// Escape backslash-escapes double quotes so s can sit inside a quoted
// command argument.
func Escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Quote wraps s in double quotes, escaping any it contains.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}
