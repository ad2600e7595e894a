package status

// HTTPError is an error which can be converted into an error response without
// any further context.
type HTTPError struct {
	Code   Code
	Reason Reason
}

func NewError(code Code, reason Reason) error {
	return HTTPError{
		Code:   code,
		Reason: reason,
	}
}

func (h HTTPError) Error() string {
	return string(h.Reason)
}

var (
	ErrBadContentLength = NewError(LengthRequired, ReasonBadContentLength)
	ErrRequestTooLarge  = NewError(RequestEntityTooLarge, ReasonTooLarge)
	ErrBadChunk         = NewError(BadRequest, ReasonBadChunk)
	ErrInternal         = NewError(InternalServerError, ReasonInternal)
)
