package model

import "fmt"

// DeliveryError reports that a notification could not be handed to the chat platform.
// StatusCode is zero when no response was received.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("delivery failed with status %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("delivery failed with status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("delivery failed: %v", e.Err)
	default:
		return "delivery failed"
	}
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Detail returns the upstream response body when there is one, otherwise the error text.
func (e *DeliveryError) Detail() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Error()
}
