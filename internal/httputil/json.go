// Package httputil carries small JSON helpers shared by the HTTP layer.
package httputil

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform error payload: a generic message, an optional
// detail string, and a category callers can branch on.
type errorBody struct {
	Error    string `json:"error"`
	Detail   string `json:"detail,omitempty"`
	Category string `json:"category,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

// WriteError writes the uniform error payload.
func WriteError(w http.ResponseWriter, code int, msg, detail, category string) {
	WriteJSON(w, code, errorBody{Error: msg, Detail: detail, Category: category})
}

// ReadJSON decodes the request body into v, rejecting unknown fields.
func ReadJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
