package models

import "time"

// Purchase links a user to a course. At most one exists per (course, user).
type Purchase struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"courseId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PurchasedCourse is a purchase enriched with the course it refers to.
type PurchasedCourse struct {
	Purchase
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}
