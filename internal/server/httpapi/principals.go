package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/validation"
	"github.com/gin-gonic/gin"
)

func (s *Server) signUp(svc PrincipalService) gin.HandlerFunc {
	class := svc.Class()

	return func(c *gin.Context) {
		var req validation.SignUpForm
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, err)
			return
		}

		_, err := svc.SignUp(c.Request.Context(), req.Input())
		if err != nil {
			if errors.Is(err, common.ErrPasswordTooLong) {
				c.JSON(http.StatusBadRequest, errorResponse{
					Message: "Invalid request body",
					Problem: []validation.Issue{{
						Field:   "password",
						Rule:    validation.BcryptTag,
						Message: err.Error(),
					}},
				})
				return
			}
			if errors.Is(err, common.ErrorAlreadyExists) {
				// 409 for admins, 400 for users.
				status := http.StatusBadRequest
				if class == auth.ClassAdmin {
					status = http.StatusConflict
				}
				c.JSON(status, errorResponse{
					Message: class.Title() + " Already Signed Up",
					Error:   "email is already registered",
				})
				return
			}
			s.fail(c, http.StatusInternalServerError, err)
			return
		}

		s.logger.Info(c.Request.Context(), "signed up", "class", class)
		c.JSON(http.StatusOK, gin.H{"message": class.Title() + " Signed Up Successfully..! Now Login"})
	}
}

func (s *Server) signIn(svc PrincipalService) gin.HandlerFunc {
	class := svc.Class()

	return func(c *gin.Context) {
		var req signInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeValidationError(c, err)
			return
		}

		token, p, err := svc.SignIn(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				c.JSON(http.StatusForbidden, errorResponse{
					Message: "Unauthorized " + class.Title() + " - Invalid Email or Password",
				})
				return
			}
			s.fail(c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome " + p.FirstName,
			"token":   token,
		})
	}
}
