package http

import (
	"io"
	"strings"
)

// Header is a single response or request header line. A header with an
// empty Name carries the status line.
type Header struct {
	Name  string
	Value string
}

// String renders the header as "Name: Value", or the bare value when the
// header has no name.
func (h Header) String() string {
	if h.Name == "" {
		return h.Value
	}
	return h.Name + ": " + h.Value
}

type Response struct {
	StatusCode int
	Status     string
	StatusLine string
	// Headers holds the status line followed by every header in the order
	// the server sent them. Duplicate names are kept.
	Headers []Header
	Body    io.ReadCloser
	// Ordered is false when the raw header block could not be captured and
	// Headers was rebuilt from the library's header map.
	Ordered bool
}

// Header returns the last value of the named header, compared
// case-insensitively.
func (r *Response) Header(key string) string {
	value := ""
	for _, h := range r.Headers {
		if h.Name != "" && strings.EqualFold(h.Name, key) {
			value = h.Value
		}
	}
	return value
}

// Values returns all values of the named header in server order.
func (r *Response) Values(key string) []string {
	var values []string
	for _, h := range r.Headers {
		if h.Name != "" && strings.EqualFold(h.Name, key) {
			values = append(values, h.Value)
		}
	}
	return values
}

func (r *Response) ContentType() string {
	return r.Header("Content-Type")
}

// Charset extracts the charset parameter of the Content-Type header.
func (r *Response) Charset() (string, bool) {
	ct := r.Values("Content-Type")
	if len(ct) == 0 {
		return "", false
	}
	return ExtractCharset(ct[len(ct)-1])
}

func (r *Response) IsOK() bool {
	return r.StatusCode == 200
}

// Close releases the response body. It is safe to call on a response
// without a body.
func (r *Response) Close() error {
	if r.Body == nil {
		return nil
	}
	return r.Body.Close()
}
