// handlers/progress.go
package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/leveling"
	"hausa-platform/models"
	"hausa-platform/services"
)

type ProgressUpdateRequest struct {
	UserID       string `json:"userId"`
	LessonID     string `json:"lessonId"`
	Score        int    `json:"score"`
	XPEarned     int    `json:"xpEarned"`
	AttemptID    string `json:"attemptId"`
	TimeSpent    int    `json:"timeSpent"`
	MistakesMade int    `json:"mistakesMade"`
}

type ProgressUpdateResponse struct {
	Success    bool                   `json:"success"`
	ProgressID string                 `json:"progressId"`
	Record     *models.ProgressRecord `json:"record"`
	LevelUp    *leveling.LevelUp      `json:"levelUp,omitempty"`
	Unlocked   []models.Achievement   `json:"unlocked"`
	Duplicate  bool                   `json:"duplicate"`
}

// UpdateProgress bir ders tamamlamasını kaydeder. userId verilirse oturum sahibiyle aynı olmalıdır.
func UpdateProgress(ledger *services.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req ProgressUpdateRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		if req.UserID != "" && req.UserID != id.UserID {
			apperr.Write(w, apperr.New(apperr.Forbidden, "cannot record progress for another user"))
			return
		}

		res, err := ledger.RecordCompletion(r.Context(), services.CompletionRequest{
			UserID:       id.UserID,
			LessonID:     req.LessonID,
			Score:        req.Score,
			XPEarned:     req.XPEarned,
			AttemptID:    req.AttemptID,
			TimeSpent:    req.TimeSpent,
			MistakesMade: req.MistakesMade,
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}

		unlocked := res.Unlocked
		if unlocked == nil {
			unlocked = []models.Achievement{}
		}
		writeJSON(w, ProgressUpdateResponse{
			Success:    true,
			ProgressID: res.Record.ID,
			Record:     res.Record,
			LevelUp:    res.LevelUp,
			Unlocked:   unlocked,
			Duplicate:  res.Duplicate,
		})
	}
}

// GetMyProgress oturum sahibinin son ders kayıtlarını döner.
func GetMyProgress(ledger *services.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		history, err := ledger.History(r.Context(), id.UserID, queryInt(r, "limit", 20))
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{
			"success":  true,
			"progress": history,
		})
	}
}
