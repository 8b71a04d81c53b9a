package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/gin-gonic/gin"
)

type ctxKey string

const subjectIDKey ctxKey = "subjectID"

// RequireToken admits requests whose token header verifies under class and
// stores the token subject in the request context. Every failure gets the
// same 401 response.
func RequireToken(tokens TokenVerifier, class auth.Class) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.TokenHeaderName)
		if token == "" {
			abortUnauthorized(c, class)
			return
		}

		subjectID, err := tokens.Verify(token, class)
		if err != nil {
			abortUnauthorized(c, class)
			return
		}

		c.Set(string(subjectIDKey), subjectID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), subjectIDKey, subjectID))

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, class auth.Class) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
		Message: "Unauthorized " + class.Title() + " Access",
	})
}

// SubjectFromContext returns the principal id stored by RequireToken.
func SubjectFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(subjectIDKey).(string)
	return id, ok && id != ""
}

func requestLogger(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		l.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
