package error

import (
	"encoding/json"
	"errors"
)

// Serializable is the wire projection of an Error:
//
//	{"code":<uint16>,"message":<string>,"errors":<object-of-string|null>}
//
// It carries no native payload or cause.
type Serializable struct {
	Code    uint16
	Message string
	Errors  Fields
}

// Serializable projects e onto its wire form. A nil e projects to the zero
// Serializable.
func (e *Error) Serializable() Serializable {
	if e == nil {
		return Serializable{}
	}
	return Serializable{Code: e.code, Message: e.message, Errors: e.fields}
}

// ToError rebuilds an Error from s.
func (s Serializable) ToError() *Error {
	return NewWithErrors(s.Message, s.Code, s.Errors)
}

type serializableWire struct {
	Code    uint16  `json:"code"`
	Message string  `json:"message"`
	Errors  *Fields `json:"errors"`
}

// MarshalJSON emits the three keys in code, message, errors order. Absent
// field detail is null.
func (s Serializable) MarshalJSON() ([]byte, error) {
	w := serializableWire{Code: s.Code, Message: s.Message}
	if s.Errors.Len() > 0 {
		w.Errors = &s.Errors
	}
	return json.Marshal(w)
}

// UnmarshalJSON requires code and message. errors may be missing, null or an
// object of strings; an empty object decodes to no field detail. Keys match
// exactly, so "Code" or "MESSAGE" do not count.
func (s *Serializable) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("serializable error: not an object")
	}

	var out Serializable
	if isNull(raw["code"]) {
		return errors.New("serializable error: missing code")
	}
	if err := json.Unmarshal(raw["code"], &out.Code); err != nil {
		return err
	}
	if isNull(raw["message"]) {
		return errors.New("serializable error: missing message")
	}
	if err := json.Unmarshal(raw["message"], &out.Message); err != nil {
		return err
	}
	if !isNull(raw["errors"]) {
		if err := out.Errors.UnmarshalJSON(raw["errors"]); err != nil {
			return err
		}
	}

	*s = out
	return nil
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(v) == "null"
}
