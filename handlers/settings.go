// handlers/settings.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"

	"github.com/gorilla/mux"
)

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func ChangePassword(users *services.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req PasswordChangeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		if err := users.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword); err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	}
}

func UpdateDailyGoal(users *services.Users) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req struct {
			DailyGoal int `json:"daily_goal"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		if err := users.SetDailyGoal(r.Context(), id.UserID, req.DailyGoal); err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"success":    true,
			"daily_goal": req.DailyGoal,
		})
	}
}

func GetSessions(auth *services.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		list, err := auth.Sessions(r.Context(), id.UserID, id.SessionID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, list)
	}
}

func TerminateSession(auth *services.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		// Kendi oturumunu sonlandırmaya çalışıyorsa engelle
		sessionID := mux.Vars(r)["id"]
		if sessionID == id.SessionID {
			apperr.Write(w, apperr.New(apperr.InvalidArgument, "use signout to end the current session"))
			return
		}
		if err := auth.TerminateSession(r.Context(), id.UserID, sessionID); err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"success": true})
	}
}

func TerminateAllSessions(auth *services.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		n, err := auth.TerminateOtherSessions(r.Context(), id.UserID, id.SessionID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"success":    true,
			"terminated": n,
		})
	}
}
