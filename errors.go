package main

import "net/http"

// apiError is an error the request boundary may surface to the client with a
// specific status code. Anything else is reported as a generic server error.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return e.message
}

// errValidation marks malformed or out-of-range input. No state is mutated.
func errValidation(message string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: message}
}

// errNotFound marks an absent puzzle, session or result.
func errNotFound(message string) *apiError {
	return &apiError{status: http.StatusNotFound, message: message}
}

// errConflict marks a terminal-state or already-consumed condition. The
// caller may have applied a state transition before returning it.
func errConflict(message string) *apiError {
	return &apiError{status: http.StatusBadRequest, message: message}
}

// errInternal marks a condition fatal to the request, e.g. word-pick
// exhaustion during session start.
func errInternal(message string) *apiError {
	return &apiError{status: http.StatusInternalServerError, message: message}
}
