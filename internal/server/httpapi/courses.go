package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const noCourseFound = "No Course Found"

// subject returns the id set by RequireToken. Routes without the middleware
// never call it.
func (s *Server) subject(c *gin.Context) (string, bool) {
	id, ok := SubjectFromContext(c.Request.Context())
	if !ok {
		s.fail(c, http.StatusInternalServerError, errors.New("subject missing from context"))
	}
	return id, ok
}

func (s *Server) createCourse(c *gin.Context) {
	adminID, ok := s.subject(c)
	if !ok {
		return
	}

	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	course, err := s.courses.Create(c.Request.Context(), adminID, req.fields())
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			c.JSON(http.StatusBadRequest, errorResponse{
				Message: somethingWentWrong,
				Error:   "course title is already taken",
			})
			return
		}
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Course Created Successfully",
		"CourseDetails": course,
	})
}

func (s *Server) updateCourse(c *gin.Context) {
	adminID, ok := s.subject(c)
	if !ok {
		return
	}

	var req updateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	course, err := s.courses.Update(c.Request.Context(), adminID, req.CourseID, req.fields())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotOwned):
			c.JSON(http.StatusUnauthorized, errorResponse{Message: "You are not Authorized to update this course"})
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusBadRequest, errorResponse{
				Message: somethingWentWrong,
				Error:   "course title is already taken",
			})
		default:
			s.fail(c, http.StatusBadRequest, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Course Updated Successfully",
		"NewCourseDetails": course,
	})
}

func (s *Server) deleteCourse(c *gin.Context) {
	adminID, ok := s.subject(c)
	if !ok {
		return
	}

	var req courseIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	course, err := s.courses.Delete(c.Request.Context(), adminID, req.CourseID)
	if err != nil {
		if errors.Is(err, common.ErrorNotOwned) {
			c.JSON(http.StatusUnauthorized, errorResponse{Message: "You are not Authorized to delete this course"})
			return
		}
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Course Deleted Successfully",
		"DeletedCourse": course,
	})
}

func (s *Server) listOwnCourses(c *gin.Context) {
	adminID, ok := s.subject(c)
	if !ok {
		return
	}

	list, err := s.courses.ListByCreator(c.Request.Context(), adminID)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	message := "All Courses By You..!"
	if len(list) == 0 {
		message = noCourseFound
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"allCourse": list,
	})
}

func (s *Server) presignCourseImage(c *gin.Context) {
	adminID, ok := s.subject(c)
	if !ok {
		return
	}

	var req courseIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	upload, err := s.courses.PresignImageUpload(c.Request.Context(), adminID, req.CourseID)
	if err != nil {
		if errors.Is(err, common.ErrorNotOwned) {
			c.JSON(http.StatusUnauthorized, errorResponse{Message: "You are not Authorized to update this course"})
			return
		}
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Upload URL Created",
		"key":       upload.Key,
		"uploadUrl": upload.UploadURL,
	})
}

func (s *Server) listCatalog(c *gin.Context) {
	list, err := s.courses.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "All Courses Endpoint",
		"AllCourses": list,
	})
}

func (s *Server) previewCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse{Message: noCourseFound})
		return
	}

	course, err := s.courses.Preview(c.Request.Context(), courseID.String())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Message: noCourseFound})
			return
		}
		s.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Course Preview",
		"courseDetails": course,
	})
}
