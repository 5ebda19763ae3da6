package http

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// readBufferSize is the chunk size used when loading a request body file.
const readBufferSize = 1024

type Request struct {
	Method  string
	URL     string
	Headers []Header
	Body    []byte
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method: method,
		URL:    requestURL,
	}
}

// AddHeader appends a header. Existing headers with the same name are kept.
func (r *Request) AddHeader(name, value string) *Request {
	r.Headers = append(r.Headers, Header{Name: name, Value: value})
	return r
}

func (r *Request) SetBody(body []byte) *Request {
	r.Body = body
	return r
}

// HasBody reports whether a body was attached, including an empty one read
// from an empty file.
func (r *Request) HasBody() bool {
	return r.Body != nil
}

// ReadBodyFile loads the whole file at path into memory.
func ReadBodyFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening request file: %w", err)
	}
	defer f.Close()

	var out bytes.Buffer
	buf := make([]byte, readBufferSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			out.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading request file: %w", err)
		}
	}

	// An empty file still counts as a body.
	if out.Len() == 0 {
		return []byte{}, nil
	}
	return out.Bytes(), nil
}
