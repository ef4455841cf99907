package patterns

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const userSchema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT UNIQUE NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// SQLiteUserRepository stores users in a SQLite database.
type SQLiteUserRepository struct {
	db *sql.DB
}

// OpenSQLiteUserRepository opens the database at dsn and creates the users
// table. ":memory:" is supported; the pool is pinned to one connection so
// every call sees the same in-memory database.
func OpenSQLiteUserRepository(ctx context.Context, dsn string) (*SQLiteUserRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, userSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}
	return &SQLiteUserRepository{db: db}, nil
}

func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteUserRepository) Save(ctx context.Context, u *User) error {
	if other, err := r.FindByEmail(ctx, u.Email); err == nil && other.ID != u.ID {
		return ErrDuplicateEmail
	}

	created := sql.NullString{String: formatTime(u.CreatedAt), Valid: !u.CreatedAt.IsZero()}

	if u.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			"INSERT INTO users (name, email, created_at) VALUES (?, ?, ?)",
			u.Name, u.Email, created)
		if err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		u.ID = id
		return nil
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET name = ?, email = ?, created_at = ? WHERE id = ?",
		u.Name, u.Email, created, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", u.ID, err)
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, created_at) VALUES (?, ?, ?, ?)",
		u.ID, u.Name, u.Email, created)
	if err != nil {
		return fmt.Errorf("failed to insert user %d: %w", u.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	var created sql.NullString
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &created); err != nil {
		return User{}, err
	}
	if created.Valid && created.String != "" {
		t, err := parseTime(created.String)
		if err != nil {
			return User{}, err
		}
		u.CreatedAt = t
	}
	return u, nil
}

const selectUsers = "SELECT id, name, email, created_at FROM users"

func (r *SQLiteUserRepository) findOne(ctx context.Context, where string, arg any) (*User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUsers+" WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteUserRepository) findMany(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *SQLiteUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *SQLiteUserRepository) FindByName(ctx context.Context, name string) ([]User, error) {
	return r.findMany(ctx, selectUsers+" WHERE name = ? ORDER BY id", name)
}

func (r *SQLiteUserRepository) FindAll(ctx context.Context) ([]User, error) {
	return r.findMany(ctx, selectUsers+" ORDER BY id")
}

func (r *SQLiteUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

var _ UserRepository = (*SQLiteUserRepository)(nil)
