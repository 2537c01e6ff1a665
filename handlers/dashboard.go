// handlers/dashboard.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"
)

func GetDashboard(dashboard *services.Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		data, err := dashboard.Get(r.Context(), id.UserID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, data)
	}
}
