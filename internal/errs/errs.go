// Package errs defines the error taxonomy shared by the waveclient packages.
//
// Callers match with errors.Is; every package wraps these sentinels with
// fmt.Errorf("%w: ...") to add context without changing the kind.
package errs

import "errors"

var (
	// ErrConnection indicates the directory or a remote service could not be
	// reached, narrowed, or was never resolved during construction.
	ErrConnection = errors.New("connection error")

	// ErrConfig indicates invalid caller input, e.g. a wildcard channel code
	// where a concrete one is required.
	ErrConfig = errors.New("invalid request")

	// ErrFormat indicates unexpected units or types in remote data.
	ErrFormat = errors.New("unexpected format")

	// ErrUnsupportedFormat indicates a codec tag or location kind this client
	// does not implement.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNotFound indicates an empty candidate list where exactly one
	// element was required.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates an internal consistency failure, e.g. decoded
	// sample count not matching the declared one.
	ErrValidation = errors.New("validation failed")

	// ErrDecode indicates malformed compressed data rejected by the codec.
	ErrDecode = errors.New("decode failed")
)
