package decode

import "fmt"

// MalformedResponseError indicates the model replied but the reply could
// not be coerced into JSON. It is deliberately distinct from the gateway
// error taxonomy: the transport worked, the content did not.
type MalformedResponseError struct {
	Excerpt string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed structured response: %v (excerpt: %q)", e.Cause, e.Excerpt)
	}
	return fmt.Sprintf("malformed structured response (excerpt: %q)", e.Excerpt)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
