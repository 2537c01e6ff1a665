// handlers/leaderboard.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"
)

func GetLeaderboard(leaderboard *services.Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", 1)
		limit := queryInt(r, "limit", 50)

		result, err := leaderboard.Top(r.Context(), page, limit)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, result)
	}
}
