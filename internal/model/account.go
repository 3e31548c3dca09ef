package model

import (
	"database/sql"
	"time"
)

// Theme preference values accepted by the dashboard.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// ValidTheme reports whether s is one of the accepted theme values.
func ValidTheme(s string) bool {
	return s == ThemeSystem || s == ThemeLight || s == ThemeDark
}

// Account mirrors the 'users' table. The preference columns are nullable:
// rows created before the preference feature existed carry NULL, which
// reads as the documented defaults (system theme, notifications on).
type Account struct {
	ID                   uint64
	Name                 string // users.username, the display name
	Email                string
	PasswordHash         string
	Theme                sql.NullString // users.theme_preference
	NotificationsEnabled sql.NullBool   // users.notifications_enabled
	CreatedAt            time.Time
}

// ThemeOrDefault returns the stored theme preference, or "system" when the
// column is NULL.
func (a Account) ThemeOrDefault() string {
	if a.Theme.Valid && a.Theme.String != "" {
		return a.Theme.String
	}
	return ThemeSystem
}

// NotificationsOrDefault returns the stored notification preference, or
// true when the column is NULL.
func (a Account) NotificationsOrDefault() bool {
	if a.NotificationsEnabled.Valid {
		return a.NotificationsEnabled.Bool
	}
	return true
}

// PreferenceUpdate carries a partial preference change. A nil field means
// "leave unchanged"; updates are never assembled from open-ended maps.
type PreferenceUpdate struct {
	Theme                *string
	NotificationsEnabled *bool
}

// Empty reports whether the update carries no fields at all.
func (u PreferenceUpdate) Empty() bool {
	return u.Theme == nil && u.NotificationsEnabled == nil
}
