package server

import (
	"context"
	"errors"
	"net/http"

	"articlesummarizer/internal/domain"
	"articlesummarizer/internal/service"

	"github.com/gin-gonic/gin"
)

// Summarizer is the request flow behind the HTTP surface.
type Summarizer interface {
	Summarize(ctx context.Context, req domain.Request) (service.Result, error)
	ModelLoaded() bool
}

func (s *Server) summarizeHandler(c *gin.Context) {
	var req domain.Request

	// A body that is not a JSON object carries no URL. Non-string fields
	// are dropped by domain.Request itself.
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.WarnContext(c.Request.Context(), "Failed to bind summarize request",
			"error", err)

		req = domain.Request{}
	}

	result, err := s.svc.Summarize(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusFor(err), domain.ErrorResponse{Error: service.ErrorMessage(err)})
		return
	}

	c.JSON(http.StatusOK, domain.Response{Summary: result.Summary})
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, domain.HealthResponse{
		Status:      "ok",
		ModelLoaded: s.svc.ModelLoaded(),
	})
}

func statusFor(err error) int {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
