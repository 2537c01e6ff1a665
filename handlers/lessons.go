// handlers/lessons.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/middleware"
	"hausa-platform/services"

	"github.com/gorilla/mux"
)

// GetLessons dersleri seviyeye göre döner. Kimlik varsa her derse locked eklenir.
func GetLessons(catalog *services.Catalog, users *services.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := services.LessonFilter{
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("search"),
		}

		userID := middleware.UserID(r)
		if userID == "" {
			lessons, err := catalog.ListLessons(r.Context(), filter)
			if err != nil {
				apperr.Write(w, err)
				return
			}
			writeJSON(w, lessons)
			return
		}

		user, err := users.Get(r.Context(), userID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		views, err := catalog.ListForUser(r.Context(), filter, user.Level)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, views)
	}
}

func GetLesson(catalog *services.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lesson, err := catalog.GetLesson(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, lesson)
	}
}

func GetCategories(catalog *services.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := catalog.Categories(r.Context())
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, categories)
	}
}
