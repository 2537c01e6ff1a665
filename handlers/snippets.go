// handlers/snippets.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"

	"github.com/gorilla/mux"
)

type SnippetRequest struct {
	Title    string `json:"title"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

func GetSnippets(snippets *services.Snippets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		list, err := snippets.List(r.Context(), id.UserID, r.URL.Query().Get("search"))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, list)
	}
}

func CreateSnippet(snippets *services.Snippets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req SnippetRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		snippet, err := snippets.Create(r.Context(), id.UserID, req.Title, req.Code, req.Language)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		apperr.WriteJSON(w, http.StatusCreated, snippet)
	}
}

func DeleteSnippet(snippets *services.Snippets) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		if err := snippets.Delete(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	}
}
