package models

import (
	"encoding/json"
	"net/http"
)

// Problem — тело ошибки в стиле RFC 7807.
type Problem struct {
	Title  string            `json:"title"`
	Detail string            `json:"detail,omitempty"`
	Status int               `json:"status"`
	Meta   map[string]string `json:"meta,omitempty"`
}

func WriteProblem(w http.ResponseWriter, status int, title, detail string, meta map[string]string) {
	w.Header().Set("Content-Type", "application/problem+json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Title:  title,
		Detail: detail,
		Status: status,
		Meta:   meta,
	})
}
