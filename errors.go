package rivulet

import "fmt"

// APIError is a non-2xx outcome of a request. For streaming requests it is
// returned before any chunk is delivered; a failed request never masquerades
// as a clean end-of-stream.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}
