package pagination

import "math"

const (
	// DefaultSize is used when a caller does not ask for a page size
	DefaultSize = 20
	// MaxSize bounds any requested page size
	MaxSize = 100
	// MaxNumber bounds the page number so Offset stays within int32
	MaxNumber = math.MaxInt32 / MaxSize
)

// Request is a zero-based page request
type Request struct {
	Number int
	Size   int
}

// Normalize clamps the request into a valid range
func (r Request) Normalize() Request {
	if r.Number < 0 {
		r.Number = 0
	}
	if r.Number > MaxNumber {
		r.Number = MaxNumber
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	return r
}

// Offset is the number of rows to skip for this page
func (r Request) Offset() int {
	return r.Number * r.Size
}

// Page is one slice of a larger ordered result with total-count metadata.
// JSON field names match the page shape existing web clients consume.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage assembles a Page from a normalized request
func NewPage[T any](content []T, total int64, req Request) *Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        req.Number,
		Size:          req.Size,
		First:         req.Number == 0,
		Last:          req.Number+1 >= totalPages,
	}
}

// Map converts a page's content while keeping its metadata
func Map[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return &Page[U]{
		Content:       out,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
		First:         p.First,
		Last:          p.Last,
	}
}
