package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"bookstores/internal/jsonapi"
	"bookstores/internal/platform/crypto"
)

// GenerateTestToken generates a JWT token for testing
func GenerateTestToken(secret, userID, role string) string {
	token, _, _ := crypto.GenerateToken(secret, userID, role, time.Hour)
	return token
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string, body interface{}) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	bodyBytes, _ := json.Marshal(body)
	r := httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRequestWithAuth creates a new HTTP request with JWT auth for testing
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}

// ErrorCode returns error.code of an error envelope, or "".
func (r RecordResponse) ErrorCode() string {
	e, _ := r.Body["error"].(map[string]interface{})
	code, _ := e["code"].(string)
	return code
}

// Attrs marshals attributes for a fixture resource.
func Attrs(v map[string]any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal attributes: %v", err))
	}
	return b
}

// ToOne builds a to-one relationship.
func ToOne(typ, id string) jsonapi.Relationship {
	return jsonapi.Relationship{Present: true, One: &jsonapi.Identifier{Type: typ, ID: id}}
}

// ToMany builds a to-many relationship.
func ToMany(typ string, ids ...string) jsonapi.Relationship {
	rel := jsonapi.Relationship{Present: true, ToMany: true, Many: []jsonapi.Identifier{}}
	for _, id := range ids {
		rel.Many = append(rel.Many, jsonapi.Identifier{Type: typ, ID: id})
	}
	return rel
}

// Store builds a primary store resource linked to a country and books.
func Store(id, name, countryID string, bookIDs ...string) jsonapi.Resource {
	return jsonapi.Resource{
		ID:   id,
		Type: "stores",
		Attributes: Attrs(map[string]any{
			"name":              name,
			"rating":            4,
			"establishmentDate": "1995-02-09T00:00:00+01:00",
			"website":           "https://www." + id + ".example",
			"storeImage":        "https://images.example/" + id + ".jpg",
		}),
		Relationships: map[string]jsonapi.Relationship{
			"countries": ToOne("countries", countryID),
			"books":     ToMany("books", bookIDs...),
		},
	}
}

func Country(id, code string) jsonapi.Resource {
	return jsonapi.Resource{ID: id, Type: "countries", Attributes: Attrs(map[string]any{"code": code})}
}

func Author(id, fullName string) jsonapi.Resource {
	return jsonapi.Resource{ID: id, Type: "authors", Attributes: Attrs(map[string]any{"fullName": fullName})}
}

func Book(id, name string, copiesSold int, authorID string) jsonapi.Resource {
	res := jsonapi.Resource{
		ID:         id,
		Type:       "books",
		Attributes: Attrs(map[string]any{"name": name, "copiesSold": copiesSold}),
	}
	if authorID != "" {
		res.Relationships = map[string]jsonapi.Relationship{"author": ToOne("authors", authorID)}
	}
	return res
}

// SampleDocument is a two-store document in the shape the store API serves.
func SampleDocument() *jsonapi.Document {
	return &jsonapi.Document{
		Data: []jsonapi.Resource{
			Store("1", "Dream Books", "10", "20", "21", "22"),
			Store("2", "Librairie du Centre", "11", "23"),
			Store("3", "Corner Books", "10"),
		},
		Included: []jsonapi.Resource{
			Country("10", "US"),
			Country("11", "FR"),
			Book("20", "Moby Dick", 10, "30"),
			Book("21", "Leaves of Grass", 50, "31"),
			Book("22", "The Call of the Wild", 30, "32"),
			Book("23", "Madame Bovary", 7, "33"),
			Author("30", "Herman Melville"),
			Author("31", "Walt Whitman"),
			Author("32", "Jack London"),
			Author("33", "Gustave Flaubert"),
		},
	}
}
