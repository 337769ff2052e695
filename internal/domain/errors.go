package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates a transport failure or a non-success HTTP status
	ErrNetwork = errors.New("network request failed")

	// ErrDecode indicates the response body did not match the expected JSON shape
	ErrDecode = errors.New("unexpected response body")

	// ErrStorage indicates the recent-searches store could not be read or written
	ErrStorage = errors.New("recent searches storage failed")

	// ErrNoPoster indicates a title has no poster to load
	ErrNoPoster = errors.New("title has no poster")

	// ErrNotConfigured indicates the API key is missing
	ErrNotConfigured = errors.New("api key is not configured")
)
