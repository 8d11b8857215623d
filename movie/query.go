package movie

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter narrows a movie listing. Empty fields match everything.
type Filter struct {
	// Title matches any movie whose title contains it, ignoring case.
	Title string
	// Genre matches movies having a genre with exactly this name, ignoring case.
	Genre string
}

func (f Filter) Normalize() Filter {
	return Filter{
		Title: strings.TrimSpace(f.Title),
		Genre: strings.TrimSpace(f.Genre),
	}
}

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

func (p Page) Normalize() Page {
	return p.NormalizeWith(DefaultPageSize, MaxPageSize)
}

// NormalizeWith clamps the page number to at least 1 and the size to
// 1..maxSize, using defaultSize when no size was asked for.
func (p Page) NormalizeWith(defaultSize, maxSize int) Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type Paged struct {
	Items []Movie
	Total int64
	Page  Page
}

func (p Paged) TotalPages() int {
	if p.Page.Size <= 0 || p.Total == 0 {
		return 0
	}
	return int((p.Total + int64(p.Page.Size) - 1) / int64(p.Page.Size))
}

func (p Paged) HasNext() bool {
	return p.Page.Number < p.TotalPages()
}
