package validation

import "github.com/dmitrijs2005/coursehub/internal/server/services"

// SignUpForm is the sign-up payload for both principal classes.
type SignUpForm struct {
	Email     string  `json:"email" binding:"required,email,min=3,max=30"`
	Password  string  `json:"password" binding:"required,min=5,max=30,bcrypt"`
	FirstName string  `json:"firstName" binding:"required,min=3,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=3,max=30"`
}

func (f SignUpForm) Input() services.SignUpInput {
	return services.SignUpInput{
		Email:     f.Email,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
	}
}
