package reference

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Record: объект из каталога как есть; нужен в основном его id.
type Record struct {
	ID  string
	Raw json.RawMessage
}

func (r *Record) UnmarshalJSON(b []byte) error {
	var idOnly struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(b, &idOnly); err != nil {
		return err
	}
	r.ID = rawScalar(idOnly.ID)
	r.Raw = append(json.RawMessage(nil), b...)
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return json.Marshal(map[string]string{"id": r.ID})
	}
	return r.Raw, nil
}

// rawScalar: "abc" -> abc, 42 -> 42, null/объект -> "".
func rawScalar(b json.RawMessage) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ""
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ""
		}
		return s
	case '{', '[':
		return ""
	default:
		return strings.TrimSpace(string(b))
	}
}
