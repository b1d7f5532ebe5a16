package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Page is a list response. The API answers either with a bare JSON array or
// with a paginated envelope {"count": n, "next": url, "results": [...]}.
type Page[T any] struct {
	Results []T
	Count   int
	Next    string
}

type envelope[T any] struct {
	Results []T     `json:"results"`
	Count   *int    `json:"count"`
	Next    *string `json:"next"`
}

// DecodeList detects the response shape and returns the items either way.
// An envelope without results is an empty page.
func DecodeList[T any](data []byte) (Page[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Page[T]{Results: []T{}}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decoding list: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		return Page[T]{Results: items, Count: len(items)}, nil
	case '{':
		var env envelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return Page[T]{}, fmt.Errorf("decoding list envelope: %w", err)
		}
		page := Page[T]{Results: env.Results, Count: len(env.Results)}
		if page.Results == nil {
			page.Results = []T{}
		}
		if env.Count != nil {
			page.Count = *env.Count
		}
		if env.Next != nil {
			page.Next = *env.Next
		}
		return page, nil
	default:
		return Page[T]{}, fmt.Errorf("unexpected list payload starting with %q", trimmed[0])
	}
}

// TotalPages rounds Count up to whole pages of size; never below 1.
func (p Page[T]) TotalPages(size int) int {
	if size <= 0 || p.Count <= 0 {
		return 1
	}
	return (p.Count + size - 1) / size
}
