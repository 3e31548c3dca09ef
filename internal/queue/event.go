// Package queue defines message payloads exchanged over the message broker.
package queue

// UserRegisteredEvent is published after a successful registration so
// downstream consumers (welcome e-mail, analytics) can react without
// querying the primary database. It never carries password material.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	RegisteredAt string `json:"registered_at"`
}

// CommentPostedEvent is published when a user posts a comment on a company
// page, so notification consumers can fan it out to watchers of the symbol.
type CommentPostedEvent struct {
	CommentID uint64 `json:"comment_id"`
	UserID    uint64 `json:"user_id"`
	Username  string `json:"username"`
	CompanyID string `json:"company_id"`
	PostedAt  string `json:"posted_at"`
}
