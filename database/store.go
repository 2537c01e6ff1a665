// database/store.go
package database

import (
	"context"
	"database/sql"
	"errors"

	"hausa-platform/apperr"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store tüm repository'leri aynı sorgulayıcı (DB ya da Tx) üzerinde toplar.
type Store struct {
	db *sqlx.DB

	Users        *UserRepository
	Lessons      *LessonRepository
	Progress     *ProgressRepository
	Achievements *AchievementRepository
	Sessions     *SessionRepository
	Snippets     *SnippetRepository
	Practice     *PracticeRepository
	Notes        *NoteRepository
}

func NewStore(db *sqlx.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sqlx.DB, q sqlx.ExtContext) *Store {
	return &Store{
		db:           db,
		Users:        &UserRepository{q: q},
		Lessons:      &LessonRepository{q: q},
		Progress:     &ProgressRepository{q: q},
		Achievements: &AchievementRepository{q: q},
		Sessions:     &SessionRepository{q: q},
		Snippets:     &SnippetRepository{q: q},
		Practice:     &PracticeRepository{q: q},
		Notes:        &NoteRepository{q: q},
	}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperr.Wrap(apperr.Unavailable, err, "database unreachable")
	}
	return nil
}

// InTx fn'i tek bir transaction içinde çalıştırır; fn hata dönerse her şey geri alınır.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, err, "could not start transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err = fn(newStore(s.db, tx)); err != nil {
		tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		return apperr.Wrap(apperr.Unavailable, err, "could not commit transaction")
	}
	return nil
}

func get(ctx context.Context, q sqlx.ExtContext, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, q, dest, q.Rebind(query), args...)
}

func selectAll(ctx context.Context, q sqlx.ExtContext, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, q, dest, q.Rebind(query), args...)
}

func exec(ctx context.Context, q sqlx.ExtContext, query string, args ...interface{}) (sql.Result, error) {
	return q.ExecContext(ctx, q.Rebind(query), args...)
}

// forUpdate satır kilidini destekleyen sürücülerde FOR UPDATE ekler.
func forUpdate(q sqlx.ExtContext) string {
	if q.DriverName() == "postgres" {
		return " FOR UPDATE"
	}
	return ""
}

// storageErr sürücü hatalarını uygulama hata türlerine çevirir.
func storageErr(err error, what string) error {
	if err == nil {
		return nil
	}
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(apperr.NotFound, "%s not found", what)
	}
	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.Conflict, err, "%s already exists", what)
	}
	return apperr.Wrap(apperr.Unavailable, err, "%s: storage error", what)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func expectOne(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, err, "%s: storage error", what)
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "%s not found", what)
	}
	if n > 1 {
		return apperr.New(apperr.Internal, "%s: %d rows affected", what, n)
	}
	return nil
}
