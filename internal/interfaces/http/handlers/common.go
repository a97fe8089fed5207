// Package handlers implements the HTTP endpoints of the API server.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/ProfitLeak-Intelligence/pkg/errors"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// respondError writes a structured error response.  AppError codes map to
// their registered status; anything else is a plain 500 with no internals
// leaked.
func respondError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !errors.AsAppError(err, &appErr) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    errors.CodeInternal.String(),
			Message: errors.DefaultMessageForCode(errors.CodeInternal),
		})
		return
	}

	body := ErrorResponse{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
	}
	// Detail is shown for client errors only; server-side detail stays in
	// the logs.
	if errors.IsClientError(appErr.Code) {
		body.Detail = appErr.Detail
	}
	c.JSON(errors.HTTPStatusForCode(appErr.Code), body)
}

//Personal.AI order the ending
