package jsonapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MediaType is the content type of JSON:API request and response bodies.
const MediaType = "application/vnd.api+json"

// ErrMalformedDocument is returned when a document lacks its data or included arrays.
var ErrMalformedDocument = errors.New("malformed document")

// Document is a compound JSON:API document: primary resources plus side-loaded ones.
type Document struct {
	Data     []Resource `json:"data"`
	Included []Resource `json:"included"`
}

// Resource is a single resource object. Relationships is nil when the member is absent.
type Resource struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    json.RawMessage         `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Identifier is a resource linkage, {type, id}.
type Identifier struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id"`
}

// Relationship holds a resource linkage. Present reports whether the data member
// was in the payload at all; a present null leaves both One and Many empty.
type Relationship struct {
	Present bool
	One     *Identifier
	Many    []Identifier
	ToMany  bool
}

// Validate checks that both top-level arrays are present.
func (d *Document) Validate() error {
	if d.Data == nil {
		return fmt.Errorf("%w: missing data array", ErrMalformedDocument)
	}
	if d.Included == nil {
		return fmt.Errorf("%w: missing included array", ErrMalformedDocument)
	}
	return nil
}

// Relationship looks up a relationship by any of the given names, in order.
func (r Resource) Relationship(names ...string) (Relationship, bool) {
	for _, name := range names {
		if rel, ok := r.Relationships[name]; ok {
			return rel, true
		}
	}
	return Relationship{}, false
}

// DecodeAttributes unmarshals the attributes member into v. Absent attributes leave v untouched.
func (r Resource) DecodeAttributes(v any) error {
	if len(r.Attributes) == 0 || bytes.Equal(bytes.TrimSpace(r.Attributes), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(r.Attributes, v); err != nil {
		return fmt.Errorf("%w: attributes of %s %q: %v", ErrMalformedDocument, r.Type, r.ID, err)
	}
	return nil
}

func (rel *Relationship) UnmarshalJSON(b []byte) error {
	var raw struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*rel = Relationship{}
	data := bytes.TrimSpace(raw.Data)
	if len(data) == 0 {
		return nil
	}
	rel.Present = true
	switch data[0] {
	case 'n':
		return nil
	case '[':
		rel.ToMany = true
		return json.Unmarshal(data, &rel.Many)
	default:
		var id Identifier
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		rel.One = &id
		return nil
	}
}

func (rel Relationship) MarshalJSON() ([]byte, error) {
	var data any
	switch {
	case rel.ToMany:
		many := rel.Many
		if many == nil {
			many = []Identifier{}
		}
		data = many
	case rel.One != nil:
		data = rel.One
	}
	return json.Marshal(struct {
		Data any `json:"data"`
	}{Data: data})
}

// ToOneID returns the id of a to-one linkage. ok is false when the linkage is
// absent, null, a list, or carries an empty id.
func (rel Relationship) ToOneID() (string, bool) {
	if !rel.Present || rel.ToMany || rel.One == nil || rel.One.ID == "" {
		return "", false
	}
	return rel.One.ID, true
}

// IDs returns the ids of a to-many linkage, in payload order.
func (rel Relationship) IDs() []string {
	ids := make([]string, 0, len(rel.Many))
	for _, id := range rel.Many {
		ids = append(ids, id.ID)
	}
	return ids
}
