// services/auth.go
package services

import (
	"context"
	"log"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"hausa-platform/apperr"
	"hausa-platform/config"
	"hausa-platform/database"
	"hausa-platform/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
)

type SignupRequest struct {
	Email    string
	Password string
	Username string
}

type SigninRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
	Remember  bool
}

type SigninResult struct {
	User    *models.User
	Token   string
	Session *models.Session
}

// Claims JWT içeriği; sid oturum satırına işaret eder.
type Claims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

type Auth struct {
	store        *database.Store
	cfg          config.AuthConfig
	dailyGoal    int
	users        *Users
	achievements *AchievementTracker
	now          func() time.Time
}

func (a *Auth) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return nil, apperr.New(apperr.InvalidArgument, "username must be %d-%d characters", minUsernameLength, maxUsernameLength)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, apperr.New(apperr.InvalidArgument, "a valid email address is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperr.New(apperr.InvalidArgument, "password must be at least %d characters", minPasswordLength)
	}

	taken, err := a.store.Users.Taken(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.Conflict, "email or username already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "could not hash password")
	}

	now := a.now()
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		LastLogin:    now,
		CreatedAt:    now,
		DailyGoal:    a.dailyGoal,
	}
	// Taken ile Create arasındaki yarışı benzersizlik kısıtı yakalar (Conflict)
	if err := a.store.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	u.Level = 1
	log.Printf("Yeni kullanıcı: %s (%s)", u.Username, u.ID)
	return u, nil
}

func (a *Auth) Signin(ctx context.Context, req SigninRequest) (*SigninResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := a.store.Users.GetByEmail(ctx, email)
	if apperr.IsKind(err, apperr.NotFound) {
		return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperr.New(apperr.Unauthorized, "invalid email or password")
	}

	now := a.now()
	ttl := a.sessionTTL(req.Remember)
	streak := nextStreak(u.StreakDays, u.LastLogin, now)
	session := &models.Session{
		ID:           uuid.NewString(),
		UserID:       u.ID,
		UserAgent:    req.UserAgent,
		IPAddress:    req.IPAddress,
		CreatedAt:    now,
		LastActivity: now,
		ExpiresAt:    now.Add(ttl),
		IsActive:     true,
	}

	err = a.store.InTx(ctx, func(tx *database.Store) error {
		if err := tx.Users.UpdateLogin(ctx, u.ID, now, streak); err != nil {
			return err
		}
		return tx.Sessions.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}
	a.users.Invalidate(ctx, u.ID)

	if _, err := a.achievements.Raise(ctx, u.ID, models.RequirementStreakDays, streak); err != nil {
		log.Printf("Seri başarıları güncellenemedi (%s): %v", u.ID, err)
	}

	token, err := a.issueToken(u.ID, u.Username, session.ID, now, session.ExpiresAt)
	if err != nil {
		return nil, err
	}

	u.LastLogin = now
	u.StreakDays = streak
	fresh, err := a.users.Get(ctx, u.ID)
	if err == nil {
		u = fresh
	}
	session.IsCurrent = true
	return &SigninResult{User: u, Token: token, Session: session}, nil
}

// nextStreak aynı gün girişte seriyi korur, ertesi gün artırır, daha uzun arada 1'e döner.
func nextStreak(current int, lastLogin, now time.Time) int {
	last := truncateDay(lastLogin)
	today := truncateDay(now)

	switch days := int(today.Sub(last).Hours() / 24); {
	case days <= 0:
		if current < 1 {
			return 1
		}
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sessionTTL hatırlanan oturumlar için RememberTTL'i kullanır; TokenTTL'den kısa olamaz.
func (a *Auth) sessionTTL(remember bool) time.Duration {
	if remember && a.cfg.RememberTTL > a.cfg.TokenTTL {
		return a.cfg.RememberTTL
	}
	return a.cfg.TokenTTL
}

func (a *Auth) issueToken(userID, username, sessionID string, now, expires time.Time) (string, error) {
	claims := Claims{
		SessionID: sessionID,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "could not sign token")
	}
	return token, nil
}

// ParseToken imzayı ve süreyi doğrular.
func (a *Auth) ParseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return nil, apperr.New(apperr.Unauthorized, "invalid token")
	}
	if claims.Subject == "" || claims.SessionID == "" {
		return nil, apperr.New(apperr.Unauthorized, "invalid token claims")
	}
	return claims, nil
}

// Authenticate oturum satırının açık ve süresinin dolmamış olduğunu doğrular.
func (a *Auth) Authenticate(ctx context.Context, userID, sessionID string) (*models.Session, error) {
	s, err := a.store.Sessions.GetByID(ctx, sessionID)
	if apperr.IsKind(err, apperr.NotFound) {
		return nil, apperr.New(apperr.Unauthorized, "session not found")
	}
	if err != nil {
		return nil, err
	}

	now := a.now()
	if s.UserID != userID || !s.IsActive || !s.ExpiresAt.After(now) {
		return nil, apperr.New(apperr.Unauthorized, "session expired")
	}
	if err := a.store.Sessions.Touch(ctx, s.ID, now); err != nil {
		log.Printf("Oturum güncellenemedi (%s): %v", s.ID, err)
	}
	return s, nil
}

// Refresh geçerli bir token için oturumu uzatır ve yeni token üretir.
func (a *Auth) Refresh(ctx context.Context, raw string) (string, error) {
	claims, err := a.ParseToken(raw)
	if err != nil {
		return "", err
	}
	s, err := a.Authenticate(ctx, claims.Subject, claims.SessionID)
	if err != nil {
		return "", err
	}
	now := a.now()
	// Hatırlanan oturumun kalan süresi kısaltılmaz
	expires := now.Add(a.cfg.TokenTTL)
	if s.ExpiresAt.After(expires) {
		expires = s.ExpiresAt
	}
	if err := a.store.Sessions.Extend(ctx, claims.SessionID, now, expires); err != nil {
		return "", err
	}
	return a.issueToken(claims.Subject, claims.Username, claims.SessionID, now, expires)
}

func (a *Auth) Signout(ctx context.Context, userID, sessionID string) error {
	err := a.store.Sessions.Terminate(ctx, sessionID, userID, a.now())
	if apperr.IsKind(err, apperr.NotFound) {
		return nil
	}
	return err
}

func (a *Auth) Sessions(ctx context.Context, userID, currentID string) ([]models.Session, error) {
	list, err := a.store.Sessions.ListActive(ctx, userID, a.now())
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].IsCurrent = list[i].ID == currentID
	}
	return list, nil
}

func (a *Auth) TerminateSession(ctx context.Context, userID, sessionID string) error {
	return a.store.Sessions.Terminate(ctx, sessionID, userID, a.now())
}

func (a *Auth) TerminateOtherSessions(ctx context.Context, userID, currentID string) (int64, error) {
	return a.store.Sessions.TerminateAllExcept(ctx, userID, currentID, a.now())
}
