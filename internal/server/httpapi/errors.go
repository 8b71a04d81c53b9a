package httpapi

import (
	"net/http"
	"sync"

	"github.com/dmitrijs2005/coursehub/internal/server/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const somethingWentWrong = "Something Went Wrong..!"

type errorResponse struct {
	Message string             `json:"message"`
	Error   string             `json:"error,omitempty"`
	Problem []validation.Issue `json:"problem,omitempty"`
}

var registerOnce sync.Once

// registerValidation installs the shared rules and json field names on gin's
// binding validator.
func registerValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := validation.Register(v); err != nil {
			panic(err)
		}
	})
}

func writeValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
		Message: "Invalid request body",
		Problem: validation.Issues(err),
	})
}

// fail logs err and aborts with a generic message.
func (s *Server) fail(c *gin.Context, status int, err error) {
	s.logger.Error(c.Request.Context(), "request failed",
		"path", c.FullPath(),
		"error", err,
	)
	c.AbortWithStatusJSON(status, errorResponse{Message: somethingWentWrong})
}
