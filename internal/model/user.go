package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	Name      string
	Role      string
	UpdatedAt time.Time
	CreatedAt time.Time
}

func (u *User) InitMeta() {
	u.ID = uuid.New()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = "customer"
	}
}
