package apiclient

import (
	"encoding/json"
	"strings"
)

const maxErrorBody = 64 << 10

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// backendMessage extracts the human readable message of an error body.
func backendMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	return strings.TrimSpace(body.Error)
}
