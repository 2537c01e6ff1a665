// database/db.go
package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"hausa-platform/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc sürücüsü "sqlite" adıyla kaydolur; sqlx varsayılan olarak tanımıyor
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func Connect(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := sqlx.Open("postgres", cfg.DataSourceName())
		if err != nil {
			return nil, err
		}

		// Bağlantıyı test et
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}

		// Bağlantı havuzu ayarları
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)

		log.Println("Postgres veritabanına başarıyla bağlandı")
		return db, nil

	case "sqlite":
		db, err := OpenSQLite(cfg.DataSourceName())
		if err != nil {
			return nil, err
		}
		log.Printf("SQLite veritabanı açıldı: %s", cfg.DataSourceName())
		return db, nil
	}
	return nil, fmt.Errorf("desteklenmeyen veritabanı sürücüsü: %s", cfg.Driver)
}

// OpenSQLite dosya ya da ":memory:" için tek bağlantılı bir havuz açar.
func OpenSQLite(path string) (*sqlx.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "_pragma") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	// SQLite tek yazıcı destekler; bellek içi veritabanı da bağlantıya özeldir
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return db, nil
}

var schema = []string{
	// Kullanıcılar tablosu (seviye tutulmaz, xp'den hesaplanır)
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		xp INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
		streak_days INTEGER NOT NULL DEFAULT 0 CHECK (streak_days >= 0),
		last_login TIMESTAMP NOT NULL,
		created_at TIMESTAMP NOT NULL,
		daily_goal INTEGER NOT NULL DEFAULT 50,
		total_lessons_completed INTEGER NOT NULL DEFAULT 0,
		achievement_points INTEGER NOT NULL DEFAULT 0
	)`,

	// Dersler tablosu
	`CREATE TABLE IF NOT EXISTS lessons (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL DEFAULT '',
		level INTEGER NOT NULL CHECK (level >= 1),
		category TEXT NOT NULL,
		xp_reward INTEGER NOT NULL CHECK (xp_reward > 0),
		required_level INTEGER NOT NULL DEFAULT 1 CHECK (required_level >= 1),
		has_audio BOOLEAN NOT NULL DEFAULT FALSE,
		has_video BOOLEAN NOT NULL DEFAULT FALSE,
		features TEXT NOT NULL DEFAULT '[]',
		prerequisites TEXT NOT NULL DEFAULT '[]',
		difficulty TEXT NOT NULL DEFAULT 'beginner',
		estimated_time INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,

	// Başarılar tablosu
	`CREATE TABLE IF NOT EXISTS achievements (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon_name TEXT NOT NULL DEFAULT '',
		points INTEGER NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT '',
		requirement_type TEXT NOT NULL,
		requirement_value INTEGER NOT NULL CHECK (requirement_value > 0),
		created_at TIMESTAMP NOT NULL
	)`,

	// Ders tamamlama kayıtları (yalnızca ekleme)
	`CREATE TABLE IF NOT EXISTS learning_progress (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		lesson_id TEXT NOT NULL REFERENCES lessons(id),
		attempt_id TEXT,
		completed BOOLEAN NOT NULL DEFAULT TRUE,
		score INTEGER NOT NULL CHECK (score >= 0 AND score <= 100),
		xp_earned INTEGER NOT NULL CHECK (xp_earned >= 0),
		completed_at TIMESTAMP NOT NULL,
		time_spent INTEGER NOT NULL DEFAULT 0,
		mistakes_made INTEGER NOT NULL DEFAULT 0,
		perfect_score BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE(user_id, attempt_id)
	)`,

	// Kullanıcı başarıları tablosu
	`CREATE TABLE IF NOT EXISTS user_achievements (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		achievement_id TEXT NOT NULL REFERENCES achievements(id),
		unlocked_at TIMESTAMP,
		progress INTEGER NOT NULL DEFAULT 0 CHECK (progress >= 0),
		UNIQUE(user_id, achievement_id)
	)`,

	// Günlük XP hedefi takibi
	`CREATE TABLE IF NOT EXISTS daily_streaks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		day TEXT NOT NULL,
		xp_earned INTEGER NOT NULL DEFAULT 0,
		goal_completed BOOLEAN NOT NULL DEFAULT FALSE,
		UNIQUE(user_id, day)
	)`,

	// Kullanıcı oturumları tablosu
	`CREATE TABLE IF NOT EXISTS user_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		user_agent TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL,
		last_activity TIMESTAMP NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		terminated_at TIMESTAMP
	)`,

	// Kod parçacıkları
	`CREATE TABLE IF NOT EXISTS snippets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		code TEXT NOT NULL,
		language TEXT NOT NULL DEFAULT 'text',
		created_at TIMESTAMP NOT NULL
	)`,

	// Alıştırma oturumları; bitince XP learning_progress üzerinden verilir
	`CREATE TABLE IF NOT EXISTS practice_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		lesson_id TEXT NOT NULL REFERENCES lessons(id),
		started_at TIMESTAMP NOT NULL,
		completed_at TIMESTAMP,
		duration INTEGER NOT NULL DEFAULT 0 CHECK (duration >= 0),
		correct_answers INTEGER NOT NULL DEFAULT 0 CHECK (correct_answers >= 0),
		total_questions INTEGER NOT NULL DEFAULT 0 CHECK (total_questions >= 0),
		xp_earned INTEGER NOT NULL DEFAULT 0 CHECK (xp_earned >= 0)
	)`,

	// Ders notları
	`CREATE TABLE IF NOT EXISTS user_notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		lesson_id TEXT NOT NULL REFERENCES lessons(id),
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,

	// İndeksler
	`CREATE INDEX IF NOT EXISTS idx_learning_progress_user_id ON learning_progress(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_learning_progress_lesson_id ON learning_progress(lesson_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_level_seq ON lessons(level, seq)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_category ON lessons(category)`,
	`CREATE INDEX IF NOT EXISTS idx_user_achievements_user_id ON user_achievements(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_sessions_user_id ON user_sessions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_users_xp ON users(xp)`,
	`CREATE INDEX IF NOT EXISTS idx_snippets_user_id ON snippets(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_sessions_user_id ON practice_sessions(user_id, started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_user_notes_user_lesson ON user_notes(user_id, lesson_id)`,
}

// addedColumns önceki sürümlerle oluşturulmuş tablolara eklenen sütunlar.
var addedColumns = []struct {
	table, column, ddl string
}{
	{"lessons", "prerequisites", "TEXT NOT NULL DEFAULT '[]'"},
}

// InitDB tabloları oluşturur; iki sürücüde de aynı DDL çalışır.
func InitDB(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("şema oluşturulamadı: %w", err)
		}
	}

	// ADD COLUMN IF NOT EXISTS SQLite'ta yok; sütun sorgulanarak kontrol edilir
	for _, c := range addedColumns {
		check := fmt.Sprintf("SELECT %s FROM %s LIMIT 0", c.column, c.table)
		if _, err := db.ExecContext(ctx, check); err == nil {
			continue
		}
		alter := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", c.table, c.column, c.ddl)
		if _, err := db.ExecContext(ctx, alter); err != nil {
			return fmt.Errorf("%s.%s sütunu eklenemedi: %w", c.table, c.column, err)
		}
		log.Printf("Sütun eklendi: %s.%s", c.table, c.column)
	}
	return nil
}
