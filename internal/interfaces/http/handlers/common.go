// Package handlers holds the gin handlers of the MolGen HTTP API.
package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
	"github.com/turtacn/molgen/pkg/types/common"
)

// writeAppError maps err onto a status code and an ErrorDetail. Server-side
// failures are masked behind the code's default message.
func writeAppError(c *gin.Context, log logging.Logger, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)

	resp := common.ErrorDetail{Code: code.String()}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) && status < http.StatusInternalServerError {
		resp.Message = appErr.Message
		resp.Detail = appErr.Detail
	} else {
		resp.Message = errors.DefaultMessageForCode(code)
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			logging.String("path", c.FullPath()),
			logging.String("code", code.String()),
			logging.Err(err))
	}
	c.AbortWithStatusJSON(status, resp)
}

// writeBindError reports a body that could not be decoded.
func writeBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorDetail{
		Code:    errors.ErrCodeBadRequest.String(),
		Message: "malformed request body",
		Detail:  err.Error(),
	})
}

// queryInt reads a positive integer query parameter, falling back to def
// when it is absent or not a number.
func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

//Personal.AI order the ending
