package httpapi

import "github.com/dmitrijs2005/coursehub/internal/server/models"

type signInRequest struct {
	Email    string `json:"email" binding:"required,email,min=3,max=30"`
	Password string `json:"password" binding:"required,min=5,max=30"`
}

// Price is a pointer so that an explicit 0 passes "required".
type courseRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,min=3,max=300"`
	ImageURL    string   `json:"imageUrl" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
}

func (r courseRequest) fields() models.CourseFields {
	return models.CourseFields{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       *r.Price,
	}
}

type updateCourseRequest struct {
	CourseID    string   `json:"courseId" binding:"required,uuid"`
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"required,min=3,max=300"`
	ImageURL    string   `json:"imageUrl" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
}

func (r updateCourseRequest) fields() models.CourseFields {
	return courseRequest{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Price:       r.Price,
	}.fields()
}

type courseIDRequest struct {
	CourseID string `json:"courseId" binding:"required,uuid"`
}
