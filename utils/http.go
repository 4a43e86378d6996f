package utils

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type MW func(http.HandlerFunc) http.HandlerFunc

func JSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

func PNG(w http.ResponseWriter, code int, data []byte) error {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(code)
	_, err := w.Write(data)
	return err
}

// Middleware wraps final so that h[0] runs first.
func Middleware(final http.HandlerFunc, h ...MW) http.HandlerFunc {
	for i := len(h) - 1; i >= 0; i-- {
		final = h[i](final)
	}
	return final
}

// Chain is Middleware for whole handlers such as the server root.
func Chain(final http.Handler, h ...func(http.Handler) http.Handler) http.Handler {
	for i := len(h) - 1; i >= 0; i-- {
		final = h[i](final)
	}
	return final
}
