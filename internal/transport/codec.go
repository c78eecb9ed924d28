package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// decodeBody validates the JSON body against schema and decodes it into dst.
// An empty body is treated as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, schema *requestSchema, dst any) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ValidationError{Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)}
		}
		return fmt.Errorf("reading request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		data = []byte("{}")
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return &ValidationError{Message: "request body is not valid JSON"}
	}
	if schema != nil {
		if err := schema.validate(instance); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &ValidationError{Message: "request body does not match the expected shape"}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeRaw(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
