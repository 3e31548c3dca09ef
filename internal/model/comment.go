package model

import "time"

// Comment is a user note attached to a company page. Username is joined in
// from the users table when listing; the comments table itself stores only
// the author id.
type Comment struct {
	ID        uint64
	Username  string
	CompanyID string
	Content   string
	CreatedAt time.Time
}
