package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentpicker/internal/domain"
)

func TestFilterExcludedEmptyIsIdentity(t *testing.T) {
	in := []domain.Suggestion{{ID: 1}, {ID: 2}}
	assert.Equal(t, in, FilterExcluded(in, nil))
}

func TestFilterExcludedKeepsOrderAndExactness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 200; round++ {
		results := make([]domain.Suggestion, rng.Intn(12))
		for i := range results {
			results[i] = domain.Suggestion{ID: rng.Intn(10), Title: string(rune('a' + i))}
		}
		exclude := make([]domain.Excludable, rng.Intn(5))
		excluded := map[int]bool{}
		for i := range exclude {
			exclude[i] = domain.Excludable{ID: rng.Intn(10)}
			excluded[exclude[i].ID] = true
		}

		var want []domain.Suggestion
		for _, r := range results {
			if !excluded[r.ID] {
				want = append(want, r)
			}
		}

		got := FilterExcluded(results, exclude)
		if len(exclude) == 0 {
			assert.Equal(t, results, got)
			continue
		}
		assert.Equal(t, len(want), len(got))
		for i := range want {
			assert.Equal(t, want[i], got[i])
		}
	}
}

func TestDecodeAndNormalizeSearchResults(t *testing.T) {
	body := []byte(`[
		{"id": 5, "title": "Hello <em>World</em>", "url": "https://example.test/hello", "type": "post", "subtype": "page"},
		{"id": "6", "title": "Second", "url": "https://example.test/second", "type": "post", "subtype": "post"}
	]`)

	raw, err := DecodeResults(domain.ModePost, body)
	require.NoError(t, err)

	got := Normalize(domain.ModePost, raw, []domain.Excludable{{ID: 6}})
	assert.Equal(t, []domain.Suggestion{
		{ID: 5, Title: "Hello <em>World</em>", URL: "https://example.test/hello", Type: "post", Subtype: "page"},
	}, got)
}

func TestNormalizeUsers(t *testing.T) {
	body := []byte(`[{"id": 3, "name": "Jane Doe", "link": "https://example.test/author/jane", "slug": "jane"}]`)

	raw, err := DecodeResults(domain.ModeUser, body)
	require.NoError(t, err)

	got := Normalize(domain.ModeUser, raw, nil)
	require.Len(t, got, 1)
	assert.Equal(t, domain.Suggestion{
		ID: 3, Title: "Jane Doe", URL: "https://example.test/author/jane", Type: "user", Subtype: "user",
	}, got[0])
	assert.Equal(t, "user", got[0].PickedType())
}

func TestNormalizeTerms(t *testing.T) {
	body := []byte(`[
		{"id": 8, "name": "News", "link": "https://example.test/category/news", "taxonomy": "category"},
		{"id": 9, "title": "Tagged", "url": "https://example.test/tag/tagged", "type": "term", "subtype": "post_tag"}
	]`)

	raw, err := DecodeResults(domain.ModeTerm, body)
	require.NoError(t, err)

	got := Normalize(domain.ModeTerm, raw, nil)
	assert.Equal(t, []domain.Suggestion{
		{ID: 8, Title: "News", URL: "https://example.test/category/news", Type: "category", Subtype: "category"},
		{ID: 9, Title: "Tagged", URL: "https://example.test/tag/tagged", Type: "term", Subtype: "post_tag"},
	}, got)
}

func TestDecodeResultsRejectsNonArray(t *testing.T) {
	_, err := DecodeResults(domain.ModePost, []byte(`{"code":"rest_no_route"}`))
	assert.Error(t, err)
}
