// Package paginator splits an ordered listing into fixed-size pages.
package paginator

import (
	"strconv"
)

// PerPage is the number of posts shown on every listing page.
const PerPage = 10

type Page struct {
	Number   int
	NumPages int
	Total    int64
	PerPage  int
}

// New resolves the raw "page" query value against total items. Non-integer input selects
// the first page, anything outside 1..NumPages selects the last one, and an empty listing
// still has a single page.
func New(raw string, total int64, perPage int) Page {
	if perPage < 1 {
		perPage = PerPage
	}
	numPages := int((total + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}

	number, err := strconv.Atoi(raw)
	if err != nil {
		number = 1
	} else if number < 1 || number > numPages {
		number = numPages
	}

	return Page{Number: number, NumPages: numPages, Total: total, PerPage: perPage}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

func (p Page) Limit() int {
	return p.PerPage
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.NumPages > 1
}

func (p Page) NextNumber() int {
	return p.Number + 1
}

func (p Page) PreviousNumber() int {
	return p.Number - 1
}

// Numbers lists every page number, for rendering the page links.
func (p Page) Numbers() []int {
	out := make([]int, p.NumPages)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
