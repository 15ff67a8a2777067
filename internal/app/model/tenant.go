package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Tenant is an application owner subject to a usage quota. UsageHours is
// the only field the core mutates, and only through the quota guard.
type Tenant struct {
	Name       string    `json:"name"`
	QuotaHours float64   `json:"quota_hours"`
	UsageHours float64   `json:"usage_hours"`
	ValidTo    time.Time `json:"valid_to"`
}

// Expired reports whether the tenant's subscription has lapsed as of now.
func (t Tenant) Expired(now time.Time) bool {
	return t.ValidTo.Before(now.Truncate(24 * time.Hour))
}

// VoiceprintRecord is an enrolled speaker in the gallery. Read-only from
// the core's perspective; enrollment happens through the gallery itself.
type VoiceprintRecord struct {
	PersonID   int       `json:"person_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Department string    `json:"department,omitempty"`
	Position   string    `json:"position,omitempty"`
	Embedding  []float32 `json:"-"`
	Tenant     string    `json:"-"`
}

// Candidate is one ranked hit from a gallery similarity search,
// similarity = 1 - cosine distance.
type Candidate struct {
	PersonID   int     `json:"person_id"`
	Name       string  `json:"name"`
	Email      string  `json:"email,omitempty"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Similarity float64 `json:"similarity"`
}

// RefID is a tenant reference id embedded in a provider job's display
// name. Providers hand these back as text; values that parse as integers
// are kept numeric, everything else stays a string.
type RefID struct {
	Raw     string
	Num     int64
	Numeric bool
}

// ParseRefID classifies a raw reference id.
func ParseRefID(raw string) RefID {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return RefID{Raw: raw, Num: n, Numeric: true}
	}
	return RefID{Raw: raw}
}

// String returns the original textual form.
func (r RefID) String() string {
	return r.Raw
}

// MarshalJSON emits a JSON number for numeric ids and a string otherwise.
func (r RefID) MarshalJSON() ([]byte, error) {
	if r.Numeric {
		return json.Marshal(r.Num)
	}
	return json.Marshal(r.Raw)
}

// UnmarshalJSON accepts either form.
func (r *RefID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*r = RefID{Raw: strconv.FormatInt(n, 10), Num: n, Numeric: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRefID(s)
	return nil
}
