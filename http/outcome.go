package http

import "github.com/indigo-web/static/http/status"

// Outcome is the terminal verdict on a request: either Success or the status code
// together with the symbolic reason of the failure.
type Outcome struct {
	Code   status.Code
	Reason status.Reason
}

// Success is the default outcome of every request.
var Success = Outcome{Code: status.OK, Reason: status.ReasonOK}

func Fail(code status.Code, reason status.Reason) Outcome {
	return Outcome{Code: code, Reason: reason}
}

// Passed reports whether the outcome allows the processing to proceed.
func (o Outcome) Passed() bool {
	return o.Code == status.OK
}
