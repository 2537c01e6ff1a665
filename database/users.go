// database/users.go
package database

import (
	"context"
	"time"

	"hausa-platform/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	q sqlx.ExtContext
}

const userColumns = `id, email, username, password_hash, xp, streak_days, last_login,
	created_at, daily_goal, total_lessons_completed, achievement_points`

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := exec(ctx, r.q, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Email, u.Username, u.PasswordHash, u.XP, u.StreakDays, u.LastLogin,
		u.CreatedAt, u.DailyGoal, u.TotalLessonsCompleted, u.AchievementPoints)
	return storageErr(err, "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := get(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, storageErr(err, "user")
	}
	return &u, nil
}

// GetByIDForUpdate Postgres'te satırı transaction sonuna kadar kilitler.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := get(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`+forUpdate(r.q), id)
	if err != nil {
		return nil, storageErr(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := get(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, storageErr(err, "user")
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := get(ctx, r.q, &u, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	if err != nil {
		return nil, storageErr(err, "user")
	}
	return &u, nil
}

// Taken e-posta ya da kullanıcı adının kullanımda olup olmadığını döner.
func (r *UserRepository) Taken(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := get(ctx, r.q, &n, `SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`, email, username)
	if err != nil {
		return false, storageErr(err, "user")
	}
	return n > 0, nil
}

// CreditCompletion bir ders tamamlamasını kullanıcıya işler ve yeni XP'yi döner.
func (r *UserRepository) CreditCompletion(ctx context.Context, id string, xp int) (int, error) {
	res, err := exec(ctx, r.q, `
		UPDATE users
		SET xp = xp + ?, total_lessons_completed = total_lessons_completed + 1
		WHERE id = ?
	`, xp, id)
	if err != nil {
		return 0, storageErr(err, "user")
	}
	if err := expectOne(res, "user"); err != nil {
		return 0, err
	}

	var total int
	if err := get(ctx, r.q, &total, `SELECT xp FROM users WHERE id = ?`, id); err != nil {
		return 0, storageErr(err, "user")
	}
	return total, nil
}

func (r *UserRepository) UpdateLogin(ctx context.Context, id string, at time.Time, streak int) error {
	res, err := exec(ctx, r.q, `UPDATE users SET last_login = ?, streak_days = ? WHERE id = ?`, at, streak, id)
	if err != nil {
		return storageErr(err, "user")
	}
	return expectOne(res, "user")
}

func (r *UserRepository) AddAchievementPoints(ctx context.Context, id string, points int) error {
	res, err := exec(ctx, r.q, `UPDATE users SET achievement_points = achievement_points + ? WHERE id = ?`, points, id)
	if err != nil {
		return storageErr(err, "user")
	}
	return expectOne(res, "user")
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, hash string) error {
	res, err := exec(ctx, r.q, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return storageErr(err, "user")
	}
	return expectOne(res, "user")
}

func (r *UserRepository) UpdateDailyGoal(ctx context.Context, id string, goal int) error {
	res, err := exec(ctx, r.q, `UPDATE users SET daily_goal = ? WHERE id = ?`, goal, id)
	if err != nil {
		return storageErr(err, "user")
	}
	return expectOne(res, "user")
}

// ResetStaleStreaks before'dan önce giriş yapmamış kullanıcıların serisini sıfırlar.
func (r *UserRepository) ResetStaleStreaks(ctx context.Context, before time.Time) ([]string, error) {
	var ids []string
	err := selectAll(ctx, r.q, &ids, `
		SELECT id FROM users WHERE streak_days > 0 AND last_login < ?
	`, before)
	if err != nil {
		return nil, storageErr(err, "user")
	}
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`UPDATE users SET streak_days = 0 WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	if _, err := exec(ctx, r.q, query, args...); err != nil {
		return nil, storageErr(err, "user")
	}
	return ids, nil
}

func (r *UserRepository) Leaderboard(ctx context.Context, limit, offset int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := selectAll(ctx, r.q, &entries, `
		SELECT id, username, xp, streak_days, total_lessons_completed, achievement_points
		FROM users
		ORDER BY xp DESC, created_at ASC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, storageErr(err, "leaderboard")
	}
	return entries, nil
}

func (r *UserRepository) Stats(ctx context.Context) (models.LeaderboardStats, error) {
	var stats models.LeaderboardStats
	row := r.q.QueryRowxContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_lessons_completed), 0), COALESCE(SUM(xp), 0)
		FROM users
	`)
	if err := row.Scan(&stats.TotalUsers, &stats.TotalCompleted, &stats.TotalXP); err != nil {
		return stats, storageErr(err, "leaderboard")
	}
	return stats, nil
}

// Rank kullanıcının XP sıralamasındaki yerini döner (1'den başlar).
func (r *UserRepository) Rank(ctx context.Context, id string) (int, error) {
	var rank int
	err := get(ctx, r.q, &rank, `
		SELECT (SELECT COUNT(*) FROM users o WHERE o.xp > u.xp) + 1
		FROM users u WHERE u.id = ?
	`, id)
	if err != nil {
		return 0, storageErr(err, "user")
	}
	return rank, nil
}
