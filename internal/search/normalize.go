package search

import (
	"encoding/json"
	"fmt"

	"contentpicker/internal/domain"
)

// Identifiable is anything the exclusion filter can match by id
type Identifiable interface {
	ResultID() int
}

// FilterExcluded keeps results whose id is not excluded, in input order
func FilterExcluded[T Identifiable](results []T, exclude []domain.Excludable) []T {
	if len(exclude) == 0 {
		return results
	}

	excluded := make(map[int]struct{}, len(exclude))
	for _, e := range exclude {
		excluded[e.ID] = struct{}{}
	}

	out := make([]T, 0, len(results))
	for _, r := range results {
		if _, ok := excluded[r.ResultID()]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// DecodeResults decodes a JSON array body into the variant for mode
func DecodeResults(mode domain.Mode, body []byte) ([]domain.RawResult, error) {
	switch mode {
	case domain.ModeUser:
		return decodeAs[domain.UserResult](body)
	case domain.ModeTerm:
		return decodeAs[domain.TermResult](body)
	default:
		return decodeAs[domain.SearchResult](body)
	}
}

func decodeAs[T domain.RawResult](body []byte) ([]domain.RawResult, error) {
	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	out := make([]domain.RawResult, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out, nil
}

// Normalize filters raw results and maps them to Suggestions
func Normalize(mode domain.Mode, raw []domain.RawResult, exclude []domain.Excludable) []domain.Suggestion {
	filtered := FilterExcluded(raw, exclude)

	out := make([]domain.Suggestion, 0, len(filtered))
	for _, r := range filtered {
		out = append(out, normalizeOne(mode, r))
	}
	return out
}

func normalizeOne(mode domain.Mode, r domain.RawResult) domain.Suggestion {
	switch v := r.(type) {
	case domain.UserResult:
		return domain.Suggestion{
			ID:      v.ID,
			Title:   v.Name,
			URL:     v.Link,
			Type:    string(domain.ModeUser),
			Subtype: string(domain.ModeUser),
		}
	case domain.TermResult:
		if v.Name == "" && v.Taxonomy == "" {
			// search endpoint shape
			return domain.Suggestion{
				ID:      v.ID,
				Title:   v.Title,
				URL:     v.URL,
				Type:    string(domain.ModeTerm),
				Subtype: v.Subtype,
			}
		}
		return domain.Suggestion{
			ID:      v.ID,
			Title:   v.Name,
			URL:     v.Link,
			Type:    v.Taxonomy,
			Subtype: v.Taxonomy,
		}
	case domain.SearchResult:
		return domain.Suggestion{
			ID:      v.ID,
			Title:   v.Title,
			URL:     v.URL,
			Type:    v.Type,
			Subtype: v.Subtype,
		}
	default:
		panic(fmt.Sprintf("search: unhandled result %T for mode %s", r, mode))
	}
}
