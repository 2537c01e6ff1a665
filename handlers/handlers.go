// handlers/handlers.go
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"hausa-platform/apperr"
	"hausa-platform/middleware"
)

const maxBodyBytes = 1 << 20

// decodeJSON gövdeyi v'ye çözer; bilinmeyen alanlar yok sayılır.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err == io.EOF {
			return apperr.New(apperr.InvalidArgument, "request body is empty")
		}
		return apperr.Wrap(apperr.InvalidArgument, err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	apperr.WriteJSON(w, http.StatusOK, v)
}

func queryInt(r *http.Request, key string, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return n
}

// currentUser korumalı rotalarda doğrulanmış kullanıcıyı döner.
func currentUser(r *http.Request) (middleware.Identity, error) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok || id.UserID == "" {
		return id, apperr.New(apperr.Unauthorized, "authentication required")
	}
	return id, nil
}
