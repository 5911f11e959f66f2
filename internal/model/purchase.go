package model

import "github.com/google/uuid"

// Purchase records that a user bought a course. At most one exists per (user, course).
type Purchase struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	CourseID uuid.UUID `json:"course_id"`
}

// PurchaseResponse is returned after a successful purchase.
type PurchaseResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
