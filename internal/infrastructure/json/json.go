package json

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"quizmatch/internal/domain"
)

const maxBodyBytes = 1 << 20

// Read decodes the request body into dst. An empty body maps to
// domain.ErrMissingBody so handlers can report it as a client error.
func Read(r *http.Request, dst any) error {
	if r.Body == nil {
		return domain.ErrMissingBody
	}

	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	defer body.Close()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.ErrMissingBody
		}
		return err
	}
	return nil
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
