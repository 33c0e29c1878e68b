package runtime

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	amalgam "github.com/howsoai/amalgam-go"
	errs "github.com/howsoai/amalgam-go/errors"
	"github.com/howsoai/amalgam-go/marshal"
	"github.com/howsoai/amalgam-go/trace"
)

// LoadEntityOptions names an entity and the file it loads from.
type LoadEntityOptions struct {
	// Handle identifies the entity for every later call. Empty generates
	// one.
	Handle string

	// Path is the .amlg or .caml file to load.
	Path string

	// Persist writes changes against the entity back to Path.
	Persist bool

	// LoadContained loads entities contained within the file.
	LoadContained bool

	// EscapeFilename escapes the entity's own filename.
	EscapeFilename bool

	// EscapeContainedFilenames escapes filenames of contained entities.
	EscapeContainedFilenames bool

	// WriteLog and PrintLog are engine-side log file paths, empty to
	// disable.
	WriteLog string
	PrintLog string
}

// LoadEntityResult carries the effective handle, generated or not, plus the
// engine's load status.
type LoadEntityResult struct {
	Handle string
	Status amalgam.LoadStatus
}

// CloneEntityOptions names a source entity and its clone.
type CloneEntityOptions struct {
	Handle      string
	CloneHandle string

	// Path persists the clone when Persist is set.
	Path     string
	Persist  bool
	WriteLog string
	PrintLog string
}

// StoreEntityOptions names an entity and the file it stores to.
type StoreEntityOptions struct {
	Handle string
	Path   string

	// UpdatePersistenceLocation repoints the entity's persistence to Path.
	UpdatePersistenceLocation bool

	// StoreContained stores contained entities too.
	StoreContained bool
}

// LoadEntity loads an entity from an Amalgam source or binary file. The
// engine's status is returned alongside the error so callers can read the
// message and version even on failure.
func (a *Amalgam) LoadEntity(opts LoadEntityOptions) (LoadEntityResult, error) {
	if opts.Handle == "" {
		opts.Handle = uuid.NewString()
	}
	result := LoadEntityResult{Handle: opts.Handle}

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.LoadCommand(fmt.Sprintf("LOAD_ENTITY %s %s %t %t %t %t %s %s",
			trace.Quote(opts.Handle), trace.Quote(opts.Path),
			opts.Persist, opts.LoadContained,
			opts.EscapeFilename, opts.EscapeContainedFilenames,
			trace.Quote(opts.WriteLog), trace.Quote(opts.PrintLog)))

		rec := a.ep.LoadEntity(
			s.Text(opts.Handle).Ptr(), s.Text(opts.Path).Ptr(),
			opts.Persist, opts.LoadContained,
			opts.EscapeFilename, opts.EscapeContainedFilenames,
			s.Text(opts.WriteLog).Ptr(), s.Text(opts.PrintLog).Ptr())
		result.Status = marshal.DecodeStatus(s, rec)
		a.rec.Reply(result.Status.String())
		return nil
	})
	if err != nil {
		return result, err
	}
	if !result.Status.Loaded {
		return result, loadFailure("LoadEntity", opts.Path, result.Status.Message)
	}
	return result, nil
}

// VerifyEntity checks an Amalgam file without loading it. Engine builds
// that predate verification report success with an empty message.
func (a *Amalgam) VerifyEntity(path string) (amalgam.LoadStatus, error) {
	var status amalgam.LoadStatus

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command("VERIFY_ENTITY " + trace.Quote(path))
		if !a.has("VerifyEntity") {
			status = amalgam.DefaultLoadStatus()
		} else {
			status = marshal.DecodeStatus(s, a.ep.VerifyEntity(s.Text(path).Ptr()))
		}
		a.rec.Reply(status.String())
		return nil
	})
	if err != nil {
		return status, err
	}
	if !status.Loaded {
		return status, loadFailure("VerifyEntity", path, status.Message)
	}
	return status, nil
}

// CloneEntity clones an entity under a new handle.
func (a *Amalgam) CloneEntity(opts CloneEntityOptions) error {
	var ok bool

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("CLONE_ENTITY %s %s %s %t %s %s",
			trace.Quote(opts.Handle), trace.Quote(opts.CloneHandle),
			trace.Quote(opts.Path), opts.Persist,
			trace.Quote(opts.WriteLog), trace.Quote(opts.PrintLog)))

		ok = a.ep.CloneEntity(
			s.Text(opts.Handle).Ptr(), s.Text(opts.CloneHandle).Ptr(),
			s.Text(opts.Path).Ptr(), opts.Persist,
			s.Text(opts.WriteLog).Ptr(), s.Text(opts.PrintLog).Ptr())
		a.rec.Reply(strconv.FormatBool(ok))
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.PhaseCall, errs.KindNativeCallFailure).
			Op("CloneEntity").
			Detail("engine could not clone %q to %q", opts.Handle, opts.CloneHandle).
			Build()
	}
	return nil
}

// StoreEntity stores an entity to the file type implied by the path's
// extension.
func (a *Amalgam) StoreEntity(opts StoreEntityOptions) error {
	return a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("STORE_ENTITY %s %s %t %t",
			trace.Quote(opts.Handle), trace.Quote(opts.Path),
			opts.UpdatePersistenceLocation, opts.StoreContained))

		a.ep.StoreEntity(s.Text(opts.Handle).Ptr(), s.Text(opts.Path).Ptr(),
			opts.UpdatePersistenceLocation, opts.StoreContained)
		return nil
	})
}

// DestroyEntity removes an entity from the engine.
func (a *Amalgam) DestroyEntity(handle string) error {
	return a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command("DESTROY_ENTITY " + trace.Quote(handle))
		a.ep.DestroyEntity(s.Text(handle).Ptr())
		return nil
	})
}

// SetRandomSeed sets an entity's random seed.
func (a *Amalgam) SetRandomSeed(handle, seed string) error {
	var ok bool

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("SET_RANDOM_SEED %s %s",
			trace.Quote(handle), trace.Quote(seed)))
		ok = a.ep.SetRandomSeed(s.Text(handle).Ptr(), s.Text(seed).Ptr())
		a.rec.Reply(strconv.FormatBool(ok))
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(errs.PhaseCall, errs.KindNativeCallFailure).
			Op("SetRandomSeed").
			Detail("engine rejected seed for %q", handle).
			Build()
	}
	return nil
}

// GetEntities lists the handles of all loaded top-level entities. The
// listing is engine-internal state, not a replayable directive, so it is
// never traced.
func (a *Amalgam) GetEntities() ([]string, error) {
	var handles []string

	err := a.scopes.With(func(s *marshal.Scope) error {
		var count uint64
		// The returned array and its strings are borrowed views into
		// engine-owned storage, unlike single-string results.
		p := a.ep.GetEntities(&count)
		handles = marshal.Strings(p, int(count))
		return nil
	})
	return handles, err
}

func loadFailure(op, path, message string) error {
	b := errs.New(errs.PhaseCall, errs.KindNativeCallFailure).Op(op).Path(path)
	if message != "" {
		b.Detail("%s", message)
	} else {
		b.Detail("engine rejected the entity")
	}
	return b.Build()
}
