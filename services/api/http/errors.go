package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qcdash/qc-dashboard/services/api/control"
	"github.com/qcdash/qc-dashboard/services/api/model"
	"github.com/qcdash/qc-dashboard/services/api/report"
	"github.com/qcdash/qc-dashboard/services/api/table"
)

// statusError is implemented by backend errors that carry their own status.
type statusError interface {
	HTTPStatus() int
}

func statusFor(err error) int {
	var verr *model.ValidationError
	var serr statusError
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr),
		errors.Is(err, control.ErrNoFillReading),
		errors.Is(err, control.ErrNoNetReading),
		errors.Is(err, control.ErrTooManyReadings),
		errors.Is(err, table.ErrUnknownColumn),
		errors.Is(err, table.ErrNotSortable),
		errors.Is(err, table.ErrNotHideable),
		errors.Is(err, table.ErrDuplicateColumn),
		errors.Is(err, table.ErrPageSize):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInactive):
		return http.StatusConflict
	case errors.Is(err, report.ErrNoData):
		return http.StatusNotFound
	case errors.As(err, &serr):
		return serr.HTTPStatus()
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...} with the status mapped from err.
func (s *Server) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}
