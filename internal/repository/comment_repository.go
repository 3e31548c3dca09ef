package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lfmelo/stockboard/internal/model"
)

// CommentRepo persists per-company comments.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

// ListByCompany returns a company's comments oldest first, with the author
// name joined in.
func (r *CommentRepo) ListByCompany(ctx context.Context, companyID string) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT comments.id, users.username, comments.content, comments.created_at
		 FROM comments
		 JOIN users ON comments.user_id = users.id
		 WHERE comments.company_id = ?
		 ORDER BY comments.created_at ASC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.CompanyID = companyID
		out = append(out, c)
	}
	return out, rows.Err()
}

// Add inserts a comment and returns it with the author name resolved. The
// author id always comes from the authenticated session, never the body.
func (r *CommentRepo) Add(ctx context.Context, userID uint64, companyID, content string) (model.Comment, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (user_id, company_id, content) VALUES (?,?,?)",
		userID, companyID, content)
	if err != nil {
		return model.Comment{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Comment{}, err
	}

	var username string
	err = r.DB.QueryRowContext(ctx,
		"SELECT username FROM users WHERE id=? LIMIT 1", userID).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Comment{}, ErrNotFound
	}
	if err != nil {
		return model.Comment{}, err
	}
	return model.Comment{
		ID:        uint64(id),
		Username:  username,
		CompanyID: companyID,
		Content:   content,
	}, nil
}
