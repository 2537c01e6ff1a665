package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"

	"github.com/gorilla/mux"
)

type NoteRequest struct {
	LessonID string `json:"lessonId"`
	Content  string `json:"content"`
}

func GetNotes(notes *services.Notes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		list, err := notes.List(r.Context(), id.UserID, r.URL.Query().Get("lessonId"))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, list)
	}
}

func CreateNote(notes *services.Notes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req NoteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		note, err := notes.Create(r.Context(), id.UserID, req.LessonID, req.Content)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		apperr.WriteJSON(w, http.StatusCreated, note)
	}
}

func UpdateNote(notes *services.Notes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req NoteRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		note, err := notes.Update(r.Context(), id.UserID, mux.Vars(r)["id"], req.Content)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, note)
	}
}

func DeleteNote(notes *services.Notes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		if err := notes.Delete(r.Context(), id.UserID, mux.Vars(r)["id"]); err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	}
}
