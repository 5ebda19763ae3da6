package http

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	charsetPrefix = "charset="
	// MaxLineLength bounds a single body line.
	MaxLineLength = 64 * 1024 * 1024
)

var ErrUnsupportedCharset = errors.New("unsupported charset")

// ExtractCharset returns the charset parameter of a Content-Type value.
// Parameters are trimmed and lower-cased before matching, so the result is
// always lower case. The second result is false when no charset is present.
func ExtractCharset(contentType string) (string, bool) {
	for _, param := range strings.Split(contentType, ";") {
		param = strings.ToLower(strings.TrimSpace(param))
		if strings.HasPrefix(param, charsetPrefix) {
			return param[len(charsetPrefix):], true
		}
	}
	return "", false
}

// LookupEncoding resolves a charset name using the WHATWG index first and
// the IANA registry second.
func LookupEncoding(charset string) (encoding.Encoding, error) {
	name := strings.Trim(strings.TrimSpace(charset), `"'`)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnsupportedCharset)
	}

	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCharset, charset)
	}
	return enc, nil
}

// NewBodyDecoder wraps r so that it yields UTF-8 text decoded from charset.
func NewBodyDecoder(r io.Reader, charset string) (io.Reader, error) {
	enc, err := LookupEncoding(charset)
	if err != nil {
		return nil, err
	}
	return enc.NewDecoder().Reader(r), nil
}

// NewLineScanner returns a scanner that splits on "\n", "\r" and "\r\n".
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), MaxLineLength)
	scanner.Split(ScanLines)
	return scanner
}

// ScanLines is a bufio.SplitFunc treating a lone carriage return as a line
// terminator as well as "\n" and "\r\n". Terminators are not returned.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A carriage return at the end of the buffer may be the first half
		// of "\r\n".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
