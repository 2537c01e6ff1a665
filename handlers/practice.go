package handlers

import (
	"net/http"

	"hausa-platform/apperr"
	"hausa-platform/services"

	"github.com/gorilla/mux"
)

type PracticeStartRequest struct {
	LessonID string `json:"lessonId"`
}

type PracticeFinishRequest struct {
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
}

func StartPractice(practice *services.Practice) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req PracticeStartRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		session, err := practice.Start(r.Context(), id.UserID, req.LessonID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		apperr.WriteJSON(w, http.StatusCreated, session)
	}
}

func FinishPractice(practice *services.Practice) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		var req PracticeFinishRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}
		res, err := practice.Finish(r.Context(), id.UserID, mux.Vars(r)["id"], req.CorrectAnswers, req.TotalQuestions)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		resp := map[string]interface{}{
			"success":  true,
			"session":  res.Session,
			"xpEarned": res.Session.XPEarned,
		}
		if res.Completion.LevelUp != nil {
			resp["levelUp"] = res.Completion.LevelUp
		}
		if len(res.Completion.Unlocked) > 0 {
			resp["achievements"] = res.Completion.Unlocked
		}
		writeJSON(w, resp)
	}
}

func GetPractice(practice *services.Practice) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		list, err := practice.History(r.Context(), id.UserID)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		writeJSON(w, list)
	}
}
