// handlers/auth.go
package handlers

import (
	"log"
	"net"
	"net/http"
	"strings"

	"hausa-platform/apperr"
	"hausa-platform/middleware"
	"hausa-platform/models"
	"hausa-platform/services"

	"github.com/gorilla/sessions"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type SigninResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func Signup(auth *services.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}

		user, err := auth.Signup(r.Context(), services.SignupRequest{
			Email:    req.Email,
			Password: req.Password,
			Username: req.Username,
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}

		writeJSON(w, map[string]interface{}{
			"success": true,
			"userId":  user.ID,
		})
	}
}

func Signin(auth *services.Auth, store sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SigninRequest
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}

		res, err := auth.Signin(r.Context(), services.SigninRequest{
			Email:     req.Email,
			Password:  req.Password,
			UserAgent: r.UserAgent(),
			IPAddress: clientIP(r),
			Remember:  req.Remember,
		})
		if err != nil {
			apperr.Write(w, err)
			return
		}

		// Session oluştur
		session, _ := store.Get(r, middleware.SessionName)
		session.Values["authenticated"] = true
		session.Values["user_id"] = res.User.ID
		session.Values["session_id"] = res.Session.ID
		session.Values["username"] = res.User.Username
		session.Options.MaxAge = int(res.Session.ExpiresAt.Sub(res.Session.CreatedAt).Seconds())
		if err := session.Save(r, w); err != nil {
			log.Printf("Session kaydedilemedi: %v", err)
		}

		writeJSON(w, SigninResponse{Success: true, Token: res.Token, User: res.User})
	}
}

func Signout(auth *services.Auth, store sessions.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := currentUser(r)
		if err != nil {
			apperr.Write(w, err)
			return
		}
		if err := auth.Signout(r.Context(), id.UserID, id.SessionID); err != nil {
			apperr.Write(w, err)
			return
		}

		session, _ := store.Get(r, middleware.SessionName)
		session.Values["authenticated"] = false
		session.Options.MaxAge = -1
		session.Save(r, w)

		writeJSON(w, map[string]interface{}{"success": true})
	}
}

func RefreshToken(auth *services.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Token string `json:"token"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			apperr.Write(w, err)
			return
		}

		token, err := auth.Refresh(r.Context(), req.Token)
		if err != nil {
			apperr.Write(w, err)
			return
		}

		writeJSON(w, map[string]interface{}{
			"success": true,
			"token":   token,
		})
	}
}

func clientIP(r *http.Request) string {
	// İlk adres istemcidir, proxy'ler sonrakileri ekler
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
