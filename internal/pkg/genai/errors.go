package genai

import "errors"

// Sentinel errors for the distinct ways a generation call can fail. Callers
// branch on these to pick the user-facing fallback text.
var (
	// ErrRequestFailed means the HTTP call itself failed or the API answered
	// with a non-success status.
	ErrRequestFailed = errors.New("genai: request failed")

	// ErrEmptyBody means the API answered 200 with an empty body.
	ErrEmptyBody = errors.New("genai: empty response body")

	// ErrMalformedResponse means the body could not be decoded.
	ErrMalformedResponse = errors.New("genai: malformed response")

	// ErrNoCandidates means the response decoded but carried no candidates.
	ErrNoCandidates = errors.New("genai: no candidates in response")

	// ErrNoParts means the first candidate carried no content parts.
	ErrNoParts = errors.New("genai: no parts in candidate content")
)
