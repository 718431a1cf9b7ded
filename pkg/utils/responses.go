package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the success envelope: {code, status, message, data}.
// Warnings carries non-fatal failures (e.g. some notification emails
// bounced) alongside an otherwise successful result.
type Response struct {
	Code     int      `json:"code"`
	Status   string   `json:"status"`
	Message  string   `json:"message"`
	Data     any      `json:"data,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// ErrorResponse is the failure envelope: {code, message, error}.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Error   any    `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Response{
		Code:    http.StatusOK,
		Status:  "OK",
		Message: message,
		Data:    data,
	})
}

// ResponseSuccessWithWarnings returns 200 OK with a warnings list attached.
func ResponseSuccessWithWarnings(w http.ResponseWriter, message string, data any, warnings []string) {
	writeJSON(w, http.StatusOK, Response{
		Code:     http.StatusOK,
		Status:   "OK",
		Message:  message,
		Data:     data,
		Warnings: warnings,
	})
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Status:  "Created",
		Message: message,
		Data:    data,
	})
}

// ResponseCreatedWithWarnings returns 201 Created with a warnings list attached.
func ResponseCreatedWithWarnings(w http.ResponseWriter, message string, data any, warnings []string) {
	writeJSON(w, http.StatusCreated, Response{
		Code:     http.StatusCreated,
		Status:   "Created",
		Message:  message,
		Data:     data,
		Warnings: warnings,
	})
}

// ------------- Error responses -------------

// ResponseError writes the failure envelope with an arbitrary status code.
func ResponseError(w http.ResponseWriter, code int, message string, detail any) {
	writeJSON(w, code, ErrorResponse{
		Code:    code,
		Message: message,
		Error:   detail,
	})
}

// returns 400 Bad Request
func ResponseBadRequest(w http.ResponseWriter, message string, detail any) {
	ResponseError(w, http.StatusBadRequest, message, detail)
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message, nil)
}

// returns 403 Forbidden
func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message, nil)
}

// returns 404 Not Found
func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message, nil)
}

// returns 409 Conflict
func ResponseConflict(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusConflict, message, nil)
}

// returns 422 Unprocessable Entity with field-level detail
func ResponseUnprocessable(w http.ResponseWriter, message string, detail any) {
	ResponseError(w, http.StatusUnprocessableEntity, message, detail)
}

// returns 500 Internal Server Error
func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message, nil)
}
