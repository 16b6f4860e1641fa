// Package domain contains the core types, ports, and errors of wikisync.
package domain

import (
	"encoding/json"
	"time"
)

// IssueState is the lifecycle state of an issue as reported by the tracker.
type IssueState string

// Issue states.
const (
	IssueOpen   IssueState = "open"
	IssueClosed IssueState = "closed"
)

// Issue is a single issue record from the tracker snapshot.
// The snapshot format is not fully regular: labels and milestone arrive
// in several shapes depending on how the export was produced, so those
// fields normalize themselves during decoding.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Title     string       `json:"title"`
	Body      string       `json:"body"`
	Labels    LabelSet     `json:"labels"`
	State     IssueState   `json:"state"`
	CreatedAt Timestamp    `json:"created_at"`
	ClosedAt  Timestamp    `json:"closed_at"`
	Milestone MilestoneRef `json:"milestone"`
	Number    int          `json:"number"`
}

// Milestone is a single milestone record from the tracker snapshot.
type Milestone struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       IssueState `json:"state"`
	CreatedAt   Timestamp  `json:"created_at"`
	DueOn       Timestamp  `json:"due_on"`
}

// IsValid reports whether the milestone can be rendered.
// A milestone without a title is rejected before rendering.
func (m Milestone) IsValid() bool {
	return m.Title != ""
}

// Timestamp is a tolerant timestamp. The tracker export is expected to
// carry RFC3339 strings, but exports produced by older tooling may emit
// bare ISO strings without a zone. Values that do not parse are kept
// verbatim and rendered as-is; the source tracker is authoritative.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// IsZero reports whether the timestamp is absent.
func (ts Timestamp) IsZero() bool {
	return ts.Raw == "" && ts.Time.IsZero()
}

// String returns the display form: the original text when available,
// otherwise the parsed time in RFC3339.
func (ts Timestamp) String() string {
	if ts.Raw != "" {
		return ts.Raw
	}
	if !ts.Time.IsZero() {
		return ts.Time.UTC().Format(time.RFC3339)
	}
	return ""
}

// UnmarshalJSON accepts an RFC3339 string, any other string (kept
// verbatim), or null. It never fails on unexpected shapes.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	*ts = Timestamp{}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Non-string shape. Keep nothing; the record stays usable.
		return nil
	}
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		ts.Time = t
	}
	ts.Raw = s
	return nil
}

// MarshalJSON writes the display form, or null when absent.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.String())
}

// LabelSet is the normalized form of the polymorphic label field.
// Tracker exports deliver labels as null, a single string, a list of
// strings, or a list of objects with a name field.
type LabelSet []string

// UnmarshalJSON normalizes every known label shape. Normalization is
// total: unrecognized shapes produce an empty set, never an error.
func (s *LabelSet) UnmarshalJSON(data []byte) error {
	*s = nil

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*s = LabelSet{single}
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}

	out := make(LabelSet, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, name)
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Name != "" {
			out = append(out, obj.Name)
		}
	}
	*s = out
	return nil
}

// MilestoneRef is the normalized form of an issue's milestone field,
// which arrives either as a bare title string or as an object with a
// title field. Valid is false when the issue has no milestone.
type MilestoneRef struct {
	Title string
	Valid bool
}

// UnmarshalJSON normalizes every known milestone reference shape.
// Unrecognized shapes yield a valid reference with an empty title; the
// renderer substitutes a placeholder rather than failing.
func (m *MilestoneRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = MilestoneRef{}
		return nil
	}

	var title string
	if err := json.Unmarshal(data, &title); err == nil {
		*m = MilestoneRef{Title: title, Valid: title != ""}
		return nil
	}

	var obj struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		*m = MilestoneRef{Title: obj.Title, Valid: true}
		return nil
	}

	*m = MilestoneRef{Valid: true}
	return nil
}

// MarshalJSON writes the bare-title form used by the snapshot files.
func (m MilestoneRef) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Title)
}
