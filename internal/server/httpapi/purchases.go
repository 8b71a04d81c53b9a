package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *Server) purchaseCourse(c *gin.Context) {
	userID, ok := s.subject(c)
	if !ok {
		return
	}

	var req courseIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := s.purchases.Purchase(c.Request.Context(), userID, req.CourseID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Message: noCourseFound})
			return
		}
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	if !result.Created {
		c.JSON(http.StatusOK, gin.H{"message": "Course Already Purchased"})
		return
	}

	s.logger.Info(c.Request.Context(), "course purchased", "course_id", req.CourseID, "user_id", userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Course Purchase Done by " + result.Buyer.FullName(),
		"details": result.Purchase,
	})
}

func (s *Server) listPurchases(c *gin.Context) {
	userID, ok := s.subject(c)
	if !ok {
		return
	}

	list, err := s.purchases.ListByUser(c.Request.Context(), userID)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All Purchased Courses",
		"data":    list,
	})
}
