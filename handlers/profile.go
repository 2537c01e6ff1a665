// handlers/profile.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"

	"github.com/gorilla/mux"
)

func GetMyProfile(users *services.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		profile, err := users.Profile(r.Context(), id.UserID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, profile)
	}
}

// GetPublicProfile e-posta adresi olmadan profil döner.
func GetPublicProfile(users *services.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := users.PublicProfile(r.Context(), mux.Vars(r)["username"])
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, profile)
	}
}
