package models

import (
	"encoding/json"
	"time"
)

// Achievement is one gamified achievement record for a principal. The
// backend returns records with an "id" key plus one dynamic key per award,
// each holding either a Firestore-style timestamp or a string.
type Achievement struct {
	ID     string
	Awards map[string]time.Time
	Extra  map[string]string
}

// firestoreTimestamp matches the {_seconds, _nanoseconds} wire shape.
type firestoreTimestamp struct {
	Seconds     int64 `json:"_seconds"`
	Nanoseconds int64 `json:"_nanoseconds"`
}

// UnmarshalJSON decodes the dynamic-key record shape.
func (a *Achievement) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Awards = make(map[string]time.Time)
	a.Extra = make(map[string]string)
	for key, val := range raw {
		if key == "id" {
			if err := json.Unmarshal(val, &a.ID); err != nil {
				return err
			}
			continue
		}
		var ts firestoreTimestamp
		if err := json.Unmarshal(val, &ts); err == nil && (ts.Seconds != 0 || ts.Nanoseconds != 0) {
			a.Awards[key] = time.Unix(ts.Seconds, ts.Nanoseconds).UTC()
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			a.Extra[key] = s
		}
	}
	return nil
}

// MarshalJSON re-emits the dynamic-key record shape so cached responses
// round-trip through the local store.
func (a Achievement) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Awards)+len(a.Extra)+1)
	if a.ID != "" {
		out["id"] = a.ID
	}
	for name, t := range a.Awards {
		out[name] = firestoreTimestamp{Seconds: t.Unix(), Nanoseconds: int64(t.Nanosecond())}
	}
	for name, s := range a.Extra {
		out[name] = s
	}
	return json.Marshal(out)
}
