package response

// AppError pairs an HTTP status with the message sent to the client while
// keeping the underlying cause for logging.
type AppError struct {
	HTTPStatus int
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WrapError builds an AppError around a cause.
func WrapError(httpStatus int, message string, err error) *AppError {
	return &AppError{
		HTTPStatus: httpStatus,
		Message:    message,
		Err:        err,
	}
}
