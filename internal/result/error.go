package result

// Code is a symbolic error tag carried across the native boundary. No
// exception ever crosses an ABI call; every failure is converted into a
// Record with Code set.
type Code string

const (
	CodeNotInitialized  Code = "NOT_INITIALIZED"
	CodeImageLoadFailed Code = "IMAGE_LOAD_FAILED"
	CodeRuntimeError    Code = "RUNTIME_ERROR"
	CodePreprocessError Code = "PREPROCESS_ERROR"
	CodeNullResult      Code = "NULL_RESULT"
)

// Error is a structured failure: a Go error with a stable symbolic code
// attached, so handlers can both `errors.As` it and serialize it.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewError builds an *Error with the given code and message.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// ErrorResult builds a Result representing a failed call: empty
// detections, with Err set to the failing code and message.
func ErrorResult(code Code, message string) Result {
	return Result{
		Detections: []Detection{},
		Count:      0,
		Err:        NewError(code, message),
	}
}
