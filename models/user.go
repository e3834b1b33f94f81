package models

import (
	"time"
)

type User struct {
	ID             string    `json:"id"               db:"id"`
	AuthProvider   string    `json:"auth_provider"    db:"auth_provider"`
	AuthProviderID string    `json:"auth_provider_id" db:"auth_provider_id"`
	DisplayName    string    `json:"display_name"     db:"display_name"`
	CreatedAt      time.Time `json:"created_at"       db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"       db:"updated_at"`
}
