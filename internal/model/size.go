package model

import "github.com/google/uuid"

// Size represents a selectable product size (S, M, L, ...).
type Size struct {
	ID   uuid.UUID
	Name string
}

func (s *Size) InitMeta() {
	s.ID = uuid.New()
}
