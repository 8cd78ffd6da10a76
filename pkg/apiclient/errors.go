package apiclient

import (
	"errors"

	"github.com/iota-uz/hrms-lite/pkg/httpapi"
)

func asFailure(err error, target **httpapi.Failure) bool {
	return err != nil && errors.As(err, target)
}

// AsFailure extracts the normalized failure from err. Errors that did not come
// from the client are reported as a 400 with their own message.
func AsFailure(err error) *httpapi.Failure {
	if err == nil {
		return nil
	}
	var f *httpapi.Failure
	if errors.As(err, &f) {
		return f
	}
	return httpapi.NewFailure(400, err.Error()).WithCause(err)
}
