package api

import (
	"bytes"
	"encoding/json"
)

// Amount is a monetary input kept as the caller's raw text. It decodes from
// either a JSON string ("60.00") or a JSON number (60) and is parsed later,
// so malformed values reach validation instead of failing in the codec.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(data)
	}
	return nil
}

func (a Amount) String() string { return string(a) }
