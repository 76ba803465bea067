package domain

import "time"

// User is an account resolved by the upstream identity collaborator.
// Staff users may write to the catalog and see every order.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IsStaff   bool      `json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
}
