package storefront

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstores/internal/jsonapi"
	"bookstores/internal/testutil"
)

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindCountry, ParseKind("countries"))
	assert.Equal(t, KindCountry, ParseKind("country"))
	assert.Equal(t, KindBook, ParseKind("Books"))
	assert.Equal(t, KindAuthor, ParseKind("authors"))
	assert.Equal(t, KindUnknown, ParseKind("publishers"))
	assert.Equal(t, "unknown", KindUnknown.String())
}

func TestParseKindPolicy(t *testing.T) {
	p, err := ParseKindPolicy("")
	require.NoError(t, err)
	assert.Equal(t, SkipUnsupported, p)

	p, err = ParseKindPolicy("REJECT")
	require.NoError(t, err)
	assert.Equal(t, RejectUnsupported, p)
	assert.Equal(t, "reject", p.String())

	_, err = ParseKindPolicy("ignore")
	assert.Error(t, err)
}

func TestBuildIndex(t *testing.T) {
	doc := testutil.SampleDocument()

	idx, err := BuildIndex(doc.Included, SkipUnsupported)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len(KindCountry))
	assert.Equal(t, 4, idx.Len(KindBook))
	assert.Equal(t, 4, idx.Len(KindAuthor))
	assert.Equal(t, Country{ID: "11", Code: "FR"}, idx.Countries["11"])
	assert.Equal(t, Book{
		ID:         "21",
		Name:       "Leaves of Grass",
		CopiesSold: 50,
		Author:     Author{ID: "31", FullName: "Walt Whitman"},
	}, idx.Books["21"])
	assert.Empty(t, idx.Skipped)
	assert.Empty(t, idx.Unresolved)
}

func TestBuildIndex_AuthorAfterBook(t *testing.T) {
	included := []jsonapi.Resource{
		testutil.Book("1", "Dracula", 5, "2"),
		testutil.Author("2", "Bram Stoker"),
	}

	idx, err := BuildIndex(included, SkipUnsupported)
	require.NoError(t, err)
	assert.Equal(t, Author{ID: "2", FullName: "Bram Stoker"}, idx.Books["1"].Author)
}

func TestBuildIndex_MissingAuthor(t *testing.T) {
	included := []jsonapi.Resource{
		testutil.Book("1", "Dracula", 5, "99"),
		testutil.Book("2", "Anonymous Verses", 1, ""),
	}

	idx, err := BuildIndex(included, SkipUnsupported)
	require.NoError(t, err)

	assert.Equal(t, Author{ID: "99"}, idx.Books["1"].Author)
	assert.Equal(t, Author{}, idx.Books["2"].Author)
	require.Len(t, idx.Unresolved, 1)
	assert.ErrorIs(t, idx.Unresolved[0], ErrUnresolvedReference)
	assert.Equal(t, KindAuthor, idx.Unresolved[0].Kind)
}

func TestBuildIndex_UnsupportedKind(t *testing.T) {
	included := []jsonapi.Resource{
		testutil.Country("1", "DE"),
		{ID: "5", Type: "publishers", Attributes: json.RawMessage(`{"name":"Penguin"}`)},
	}

	t.Run("skip", func(t *testing.T) {
		idx, err := BuildIndex(included, SkipUnsupported)
		require.NoError(t, err)
		assert.Equal(t, []jsonapi.Identifier{{Type: "publishers", ID: "5"}}, idx.Skipped)
		assert.Equal(t, 1, idx.Len(KindCountry))
	})

	t.Run("reject", func(t *testing.T) {
		idx, err := BuildIndex(included, RejectUnsupported)
		assert.Nil(t, idx)
		assert.ErrorIs(t, err, ErrUnsupportedKind)

		var kindErr *UnsupportedKindError
		require.ErrorAs(t, err, &kindErr)
		assert.Equal(t, "publishers", kindErr.Type)
		assert.Equal(t, "5", kindErr.ID)
	})
}

func TestBuildIndex_BadAttributes(t *testing.T) {
	included := []jsonapi.Resource{
		{ID: "1", Type: "books", Attributes: json.RawMessage(`{"copiesSold":"many"}`)},
	}

	_, err := BuildIndex(included, SkipUnsupported)
	assert.ErrorIs(t, err, jsonapi.ErrMalformedDocument)
}

func TestBuildIndex_Empty(t *testing.T) {
	idx, err := BuildIndex(nil, RejectUnsupported)
	require.NoError(t, err)
	assert.Equal(t, 0, idx.Len(KindBook))
	assert.Equal(t, 0, idx.Len(KindUnknown))
}
