package webclient

import (
	"errors"
	"fmt"
)

const genericErrorMessage = "An unexpected error occurred. Please try again."

// HandleAPIError is the recovery boundary for request failures: log the
// error, pick a readable message (generic fallback when the error carries
// none), raise a danger toast. Nothing propagates past this point and
// nothing here is fatal.
func (c *Client) HandleAPIError(err error) {
	c.logger.Printf("[webclient] api error: %v", err)

	message := genericErrorMessage
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr) && httpErr.Reason != "":
		message = httpErr.Reason
	case err != nil && err.Error() != "":
		message = err.Error()
	}

	c.UI.ShowToast(message, SeverityDanger, 0)
}

// HandleFormErrors routes a field-shaped error payload. Prior validation
// state is reset first. A key naming a field present on the form becomes a
// field error with the first message; any other key is demoted to a global
// toast so the message still reaches the user even when client and server
// field names have drifted.
func (c *Client) HandleFormErrors(form *Form, errs map[string]any) {
	form.ResetValidation()
	for field, raw := range errs {
		message := firstMessage(raw)
		if form.Has(field) {
			form.ShowFieldError(field, message)
		} else {
			c.UI.ShowToast(fmt.Sprintf("%s: %s", field, message), SeverityDanger, 0)
		}
	}
}

func firstMessage(raw any) string {
	switch v := raw.(type) {
	case []any:
		if len(v) > 0 {
			return fmt.Sprint(v[0])
		}
		return genericErrorMessage
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return genericErrorMessage
	case nil:
		return genericErrorMessage
	default:
		return fmt.Sprint(v)
	}
}
