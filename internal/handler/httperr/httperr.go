package httperr

import (
	"log/slog"
	"net/http"

	"hotel-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Response is the failure form of the {success, message, data} envelope.
type Response struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

// Surface tells whether a missing record is the caller's mistake (Command) or a plain 404 (Query).
type Surface int

const (
	Command Surface = iota
	Query
)

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Message: msg, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func StatusFor(err error, surface Surface) int {
	switch errs.Category(err) {
	case errs.ErrValidation, errs.ErrDomainRule, errs.ErrConflict:
		return http.StatusBadRequest
	case errs.ErrNotFound:
		if surface == Query {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Abort maps a use-case error to its status. Categorized errors carry a message meant for
// the caller; anything else is logged and hidden.
func Abort(c *gin.Context, err error, surface Surface) {
	status := StatusFor(err, surface)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"path", c.FullPath(),
			"error", err.Error(),
			"stack", errs.ExtractStackLines(err, 12),
		)
		AbortWithError(c, status, err, "Internal server error", nil)
		return
	}
	AbortWithError(c, status, err, err.Error(), nil)
}

func BadRequest(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, err, msg, nil)
}
