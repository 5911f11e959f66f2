package model

import (
	"time"

	"github.com/google/uuid"
)

// Course is a purchasable course owned by exactly one admin.
// AdminID is fixed at creation.
type Course struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	ImageURL  *string   `json:"image_url"`
	Price     int32     `json:"price"`
	AdminID   uuid.UUID `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseRequest is the payload for creating and updating a course.
// Price is in the smallest currency unit and must be present, zero included.
type CourseRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	ImageURL *string `json:"image_url" binding:"omitempty,url,max=2048"`
	Price    *int32  `json:"price" binding:"required,gte=0"`
}

// CourseResponse is the wire shape of a course.
type CourseResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL *string `json:"image_url"`
	Price    int32   `json:"price"`
	AdminID  string  `json:"admin_id"`
}

// ToResponse renders the course with its ids as display text.
func (c *Course) ToResponse() CourseResponse {
	return CourseResponse{
		ID:       c.ID.String(),
		Title:    c.Title,
		ImageURL: c.ImageURL,
		Price:    c.Price,
		AdminID:  c.AdminID.String(),
	}
}

// CourseResponses maps a list of courses, never returning nil.
func CourseResponses(courses []Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, courses[i].ToResponse())
	}
	return out
}
