package runtime

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/howsoai/amalgam-go/errors"
	"github.com/howsoai/amalgam-go/marshal"
	"github.com/howsoai/amalgam-go/trace"
)

// GetJSONFromLabel reads a label's value as JSON bytes.
func (a *Amalgam) GetJSONFromLabel(handle, label string) ([]byte, error) {
	var out []byte

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("GET_JSON_FROM_LABEL %s %s",
			trace.Quote(handle), trace.Quote(label)))
		p := a.ep.GetJSONPtrFromLabel(s.Text(handle).Ptr(), s.Text(label).Ptr())
		out = s.Own(p).Take()
		a.rec.Reply(string(out))
		return nil
	})
	return out, err
}

// SetJSONToLabel assigns a label's value from JSON bytes.
func (a *Amalgam) SetJSONToLabel(handle, label string, json []byte) error {
	return a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("SET_JSON_TO_LABEL %s %s %s",
			trace.Quote(handle), trace.Quote(label), json))
		a.ep.SetJSONToLabel(s.Text(handle).Ptr(), s.Text(label).Ptr(),
			s.Data(json).Ptr())
		return nil
	})
}

// ExecuteEntityJSON executes a label with JSON-encoded parameters and
// returns the JSON-encoded response. The transcript brackets the command
// with EXECUTION START/STOP timestamps.
func (a *Amalgam) ExecuteEntityJSON(handle, label string, json []byte) ([]byte, error) {
	var out []byte

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Timestamp("EXECUTION START")
		a.rec.Command(fmt.Sprintf("EXECUTE_ENTITY_JSON %s %s %s",
			trace.Quote(handle), trace.Quote(label), json))

		p := a.ep.ExecuteEntityJsonPtr(s.Text(handle).Ptr(),
			s.Text(label).Ptr(), s.Data(json).Ptr())
		out = s.Own(p).Take()

		a.rec.Timestamp("EXECUTION STOP")
		a.rec.Reply(string(out))
		return nil
	})
	return out, err
}

// GetNumberFromLabel reads a label's value as a number.
func (a *Amalgam) GetNumberFromLabel(handle, label string) (float64, error) {
	if !a.has("GetNumberFromLabel") {
		return 0, errs.MissingSymbol("GetNumberFromLabel")
	}
	var v float64

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("GET_NUMBER_FROM_LABEL %s %s",
			trace.Quote(handle), trace.Quote(label)))
		v = a.ep.GetNumberFromLabel(s.Text(handle).Ptr(), s.Text(label).Ptr())
		a.rec.Reply(strconv.FormatFloat(v, 'g', -1, 64))
		return nil
	})
	return v, err
}

// SetNumberToLabel assigns a label's value from a number.
func (a *Amalgam) SetNumberToLabel(handle, label string, value float64) error {
	if !a.has("SetNumberToLabel") {
		return errs.MissingSymbol("SetNumberToLabel")
	}
	return a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("SET_NUMBER_TO_LABEL %s %s %s",
			trace.Quote(handle), trace.Quote(label),
			strconv.FormatFloat(value, 'g', -1, 64)))
		a.ep.SetNumberToLabel(s.Text(handle).Ptr(), s.Text(label).Ptr(), value)
		return nil
	})
}

// GetStringFromLabel reads a label's value as a string.
func (a *Amalgam) GetStringFromLabel(handle, label string) (string, error) {
	if !a.has("GetStringFromLabel") {
		return "", errs.MissingSymbol("GetStringFromLabel")
	}
	var v string

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("GET_STRING_FROM_LABEL %s %s",
			trace.Quote(handle), trace.Quote(label)))
		p := a.ep.GetStringFromLabel(s.Text(handle).Ptr(), s.Text(label).Ptr())
		v = s.Own(p).TakeString()
		a.rec.Reply(v)
		return nil
	})
	return v, err
}

// SetStringToLabel assigns a label's value from a string.
func (a *Amalgam) SetStringToLabel(handle, label, value string) error {
	if !a.has("SetStringToLabel") {
		return errs.MissingSymbol("SetStringToLabel")
	}
	return a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("SET_STRING_TO_LABEL %s %s %s",
			trace.Quote(handle), trace.Quote(label), trace.Quote(value)))
		a.ep.SetStringToLabel(s.Text(handle).Ptr(), s.Text(label).Ptr(),
			s.Text(value).Ptr())
		return nil
	})
}

// GetStringListFromLabel reads a label's value as a list of strings.
func (a *Amalgam) GetStringListFromLabel(handle, label string) ([]string, error) {
	if !a.has("GetStringListPtrFromLabel") || !a.has("GetStringListLengthFromLabel") {
		return nil, errs.MissingSymbol("GetStringListPtrFromLabel")
	}
	var values []string

	err := a.scopes.With(func(s *marshal.Scope) error {
		a.rec.Command(fmt.Sprintf("GET_STRING_LIST_FROM_LABEL %s %s",
			trace.Quote(handle), trace.Quote(label)))

		length := a.ep.GetStringListLengthFromLabel(s.Text(handle).Ptr(), s.Text(label).Ptr())
		// List results are borrowed views into engine-owned storage; only
		// single-string results carry a free obligation.
		p := a.ep.GetStringListPtrFromLabel(s.Text(handle).Ptr(), s.Text(label).Ptr())
		values = marshal.Strings(p, int(length))

		a.rec.Reply(quoteJoin(values))
		return nil
	})
	return values, err
}

// SetStringListToLabel assigns a label's value from a list of strings.
func (a *Amalgam) SetStringListToLabel(handle, label string, values []string) error {
	if !a.has("SetStringListToLabel") {
		return errs.MissingSymbol("SetStringListToLabel")
	}
	return a.scopes.With(func(s *marshal.Scope) error {
		command := fmt.Sprintf("SET_STRING_LIST_TO_LABEL %s %s",
			trace.Quote(handle), trace.Quote(label))
		if len(values) > 0 {
			command += " " + quoteJoin(values)
		}
		a.rec.Command(command)

		list := s.TextList(values)
		a.ep.SetStringListToLabel(s.Text(handle).Ptr(), s.Text(label).Ptr(),
			list.Ptr(), list.Len())
		return nil
	})
}

func quoteJoin(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = trace.Quote(v)
	}
	return strings.Join(quoted, " ")
}
