package validate

// Error is a local validation failure keyed to the offending field or
// action. It is raised before any store call is made, so a handler seeing
// one knows no remote state changed.
type Error struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Msg
}

func Errorf(field, msg string) *Error {
	return &Error{Field: field, Msg: msg}
}
