package marshal

import (
	amalgam "github.com/howsoai/amalgam-go"
)

// DecodeStatus copies both strings out of a by-value status record and
// releases their allocations through the scope. Safe for records with nil
// fields.
func DecodeStatus(s *Scope, rec amalgam.StatusRecord) amalgam.LoadStatus {
	return amalgam.LoadStatus{
		Loaded:  rec.Loaded,
		Message: s.Own(rec.Message).TakeString(),
		Version: s.Own(rec.Version).TakeString(),
	}
}
