package service

import "fmt"

// UpstreamError indicates the generative-language API call itself failed:
// the network request errored, timed out, or came back with a non-success
// status. Status is 0 for transport-level failures.
type UpstreamError struct {
	Status  int
	Timeout bool
	Err     error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("upstream AI request timed out: %v", e.Err)
	case e.Status != 0:
		return fmt.Sprintf("upstream AI request failed with status %d: %v", e.Status, e.Err)
	default:
		return fmt.Sprintf("upstream AI request failed: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError indicates the upstream replied but its text could not be
// interpreted as recipe recommendations: no structured block was found,
// or every entry in it failed validation. Distinct from UpstreamError so
// callers can tell "upstream down" from "upstream replied with garbage".
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse AI reply into recipes: %s", e.Reason)
}
