package fetcher

import "errors"

// Sentinel errors for fetch operations.
var (
	// ErrInvalidURL indicates the URL failed parsing or scheme validation.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrPrivateIP indicates the hostname resolves to a private address.
	ErrPrivateIP = errors.New("URL resolves to private IP")

	// ErrTimeout indicates the request exceeded its deadline.
	ErrTimeout = errors.New("fetch timeout")

	// ErrBodyTooLarge indicates the response exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTooManyRedirects indicates the redirect limit was exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrReadabilityFailed indicates article text extraction failed.
	ErrReadabilityFailed = errors.New("readability extraction failed")
)
