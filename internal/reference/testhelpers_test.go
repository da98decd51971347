package reference

import "encoding/json"

func rec(id string) Record {
	return Record{ID: id, Raw: json.RawMessage(`{"id":"` + id + `"}`)}
}
