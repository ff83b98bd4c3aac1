package models

import "time"

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash []byte
	CreatedAt    time.Time
}
