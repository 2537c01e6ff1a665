// apperr/http.go
package apperr

import (
	"encoding/json"
	"log"
	"net/http"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   Kind   `json:"error"`
	Message string `json:"message"`
}

// WriteJSON v'yi verilen durum koduyla JSON olarak yazar.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("JSON yanıtı yazılamadı: %v", err)
	}
}

// Write hatayı {success:false, error, message} gövdesiyle yazar. Sunucu tarafı hatalar loglanır.
func Write(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		log.Printf("İstek başarısız (%s): %v", kind, err)
	}
	WriteJSON(w, status, errorBody{Success: false, Error: kind, Message: Message(err)})
}
