package core

import (
	"fmt"
)

const DefaultPageSize = 10

type PageURL struct {
	Current string
	Prev    string
	Next    string
}

// PageOf is one generated page of a paginated collection. Start and End are
// inclusive indices into the full collection; End is -1 for an empty page.
type PageOf[T any] struct {
	Data        []T
	Start       int
	End         int
	Size        int
	Total       int
	CurrentPage int
	LastPage    int
	URL         PageURL
}

// Paginate splits an ordered collection into pages of at most size items.
// Page 1 lives at base itself, page N at base/page/N. An empty collection
// still yields a single empty page so the index route renders.
func Paginate[T any](items []T, base string, size int) []PageOf[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	base = NormalizePath(base)

	total := len(items)
	last := (total + size - 1) / size
	if last < 1 {
		last = 1
	}

	pages := make([]PageOf[T], 0, last)
	for n := 1; n <= last; n++ {
		start := (n - 1) * size
		end := min(start+size, total)

		page := PageOf[T]{
			Data:        items[start:end],
			Start:       start,
			End:         end - 1,
			Size:        size,
			Total:       total,
			CurrentPage: n,
			LastPage:    last,
			URL: PageURL{
				Current: PagePath(base, n),
			},
		}
		if n > 1 {
			page.URL.Prev = PagePath(base, n-1)
		}
		if n < last {
			page.URL.Next = PagePath(base, n+1)
		}
		pages = append(pages, page)
	}

	return pages
}

// PagePath returns the URL of page n of a paginated collection.
func PagePath(base string, n int) string {
	base = NormalizePath(base)
	if n <= 1 {
		return base
	}
	if base == "/" {
		return fmt.Sprintf("/page/%d", n)
	}
	return fmt.Sprintf("%s/page/%d", base, n)
}
