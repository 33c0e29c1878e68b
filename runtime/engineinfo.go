package runtime

import (
	"fmt"
	"strconv"

	"github.com/Masterminds/semver/v3"

	errs "github.com/howsoai/amalgam-go/errors"
	"github.com/howsoai/amalgam-go/marshal"
)

// Version returns the engine's semver version string.
func (a *Amalgam) Version() (string, error) {
	var v string

	err := a.scopes.With(func(s *marshal.Scope) error {
		v = s.Own(a.ep.GetVersionString()).TakeString()
		a.rec.Comment("call to amlg.GetVersionString() - returned: " + v)
		return nil
	})
	return v, err
}

// VersionSatisfies reports whether the engine version meets a semver
// constraint such as ">= 55.0.0" or "~58.1".
func (a *Amalgam) VersionSatisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, errs.New(errs.PhaseCall, errs.KindNativeCallFailure).
			Op("VersionSatisfies").
			Cause(err).
			Detail("invalid version constraint %q", constraint).
			Build()
	}

	raw, err := a.Version()
	if err != nil {
		return false, err
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return false, errs.New(errs.PhaseCall, errs.KindNativeCallFailure).
			Op("VersionSatisfies").
			Cause(err).
			Detail("engine version %q is not semver", raw).
			Build()
	}
	return c.Check(v), nil
}

// ConcurrencyType returns the engine build's concurrency type string, e.g.
// "MultiThreaded".
func (a *Amalgam) ConcurrencyType() (string, error) {
	if !a.has("GetConcurrencyTypeString") {
		return "", errs.MissingSymbol("GetConcurrencyTypeString")
	}
	var v string

	err := a.scopes.With(func(s *marshal.Scope) error {
		v = s.Own(a.ep.GetConcurrencyTypeString()).TakeString()
		a.rec.Comment("call to amlg.GetConcurrencyTypeString() - returned: " + v)
		return nil
	})
	return v, err
}

// MaxNumThreads returns the engine's configured thread cap.
func (a *Amalgam) MaxNumThreads() (uint64, error) {
	if !a.has("GetMaxNumThreads") {
		return 0, errs.MissingSymbol("GetMaxNumThreads")
	}
	var n uint64

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command("GET_MAX_NUM_THREADS")
		n = a.ep.GetMaxNumThreads()
		a.rec.Reply(strconv.FormatUint(n, 10))
		return nil
	})
	return n, err
}

// SetMaxNumThreads caps the engine's worker threads. 0 uses all visible
// logical cores. No effect on single-threaded builds.
func (a *Amalgam) SetMaxNumThreads(count uint64) error {
	if !a.has("SetMaxNumThreads") {
		return errs.MissingSymbol("SetMaxNumThreads")
	}
	return a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("SET_MAX_NUM_THREADS %d", count))
		a.ep.SetMaxNumThreads(count)
		return nil
	})
}

// SBFDataStoreEnabled reports whether the engine's SBF tree structures are
// enabled. Engine-internal state, never traced.
func (a *Amalgam) SBFDataStoreEnabled() (bool, error) {
	if !a.has("IsSBFDataStoreEnabled") {
		return false, errs.MissingSymbol("IsSBFDataStoreEnabled")
	}
	var enabled bool

	err := a.scopes.With(func(s *marshal.Scope) error {
		enabled = a.ep.IsSBFDataStoreEnabled()
		return nil
	})
	return enabled, err
}

// SetSBFDataStore toggles the engine's SBF tree structures.
func (a *Amalgam) SetSBFDataStore(enabled bool) error {
	if !a.has("SetSBFDataStoreEnabled") {
		return errs.MissingSymbol("SetSBFDataStoreEnabled")
	}
	return a.scopes.With(func(s *marshal.Scope) error {
		a.ep.SetSBFDataStoreEnabled(enabled)
		return nil
	})
}
