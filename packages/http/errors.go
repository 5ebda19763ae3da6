package http

import "errors"

// ErrInvalidURL is returned for URLs that are malformed or not http(s).
var ErrInvalidURL = errors.New("invalid URL")
