package api

import (
  "encoding/json"
  "net/http"
)

type ResponseHandler struct {
  Writer http.ResponseWriter
}

type ErrorMessage struct {
  Code    int    `json:"code"`
  Message string `json:"message"`
}

func (h *ResponseHandler) Json(payload interface{}) {
  h.Writer.Header().Set("Content-Type", "application/json")
  json.NewEncoder(h.Writer).Encode(payload)
}

func (h *ResponseHandler) Error(status int, code int, message string) {
  h.Writer.Header().Set("Content-Type", "application/json")
  h.Writer.WriteHeader(status)
  json.NewEncoder(h.Writer).Encode(&ErrorMessage{
    Code:    code,
    Message: message,
  })
}
