// handlers/achievements.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"

	"github.com/gorilla/mux"
)

func GetAchievements(tracker *services.AchievementTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		statuses, err := tracker.ListAchievements(r.Context(), mux.Vars(r)["userId"])
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, statuses)
	}
}

// RecordAchievementProgress oturum sahibinin bir başarıdaki ilerlemesini artırır.
func RecordAchievementProgress(tracker *services.AchievementTracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req struct {
			Delta int `json:"delta"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}

		ua, err := tracker.RecordProgress(r.Context(), id.UserID, mux.Vars(r)["id"], req.Delta)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"success":     true,
			"achievement": ua,
		})
	}
}
