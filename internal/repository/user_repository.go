package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/lfmelo/stockboard/internal/model"
)

// mysqlDupEntry is the MySQL error number for a unique-key violation.
const mysqlDupEntry = 1062

// UserRepo persists accounts. The unique index on users.email is the
// authoritative guard against duplicate registrations; the handler-level
// existence check is only a friendlier fast path.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const accountColumns = "id, username, email, password_hash, theme_preference, notifications_enabled, created_at"

func scanAccount(row *sql.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash,
		&a.Theme, &a.NotificationsEnabled, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrNotFound
	}
	return a, err
}

// Create inserts an account and returns its id. A duplicate email, whether
// caught by the caller's pre-check or by the unique index during a
// concurrent registration, surfaces as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, created_at) VALUES (?,?,?,UTC_TIMESTAMP())",
		name, email, passwordHash)
	if err != nil {
		if isDupEntry(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by exact email match.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.TrimSpace(email)
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return scanAccount(r.DB.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns every account with only its public fields populated.
func (r *UserRepo) List(ctx context.Context) ([]model.Account, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, username, email FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// EmailTakenByOther reports whether some other account already uses email.
func (r *UserRepo) EmailTakenByOther(ctx context.Context, email string, id uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=? AND id<>?", email, id).Scan(&n)
	return n > 0, err
}

// UpdateProfile rewrites the display name and email of an account.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, email string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, email=? WHERE id=?", name, email, id)
	if err != nil {
		if isDupEntry(err) {
			return ErrEmailExists
		}
		return err
	}
	return requireRow(res)
}

// UpdatePassword overwrites the stored password hash. Identity columns are
// never touched.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", passwordHash, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdatePreferences applies a partial preference change. The SET clause is
// assembled only from the fields explicitly present in the update.
func (r *UserRepo) UpdatePreferences(ctx context.Context, id uint64, u model.PreferenceUpdate) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if u.Theme != nil {
		sets = append(sets, "theme_preference=?")
		args = append(args, *u.Theme)
	}
	if u.NotificationsEnabled != nil {
		sets = append(sets, "notifications_enabled=?")
		args = append(args, *u.NotificationsEnabled)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func isDupEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDupEntry
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
