// handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"hausa-platform/apperr"
)

// Pinger veritabanı gibi bağımlılıkların erişilebilirliğini doğrular.
type Pinger interface {
	Ping(ctx context.Context) error
}

func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"status": "ok"})
	}
}
