package service

import "net/http"

// Error classifies a failed operation so the HTTP layer can translate
// it without inspecting causes.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

func BadInput(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "INVALID_REQUEST", Message: message}
}
