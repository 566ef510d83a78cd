package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job-board/internal/service"
)

// StatusFor 把服务层错误类别映射为 HTTP 状态码
func StatusFor(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindSelfAction:
		return http.StatusBadRequest
	case service.KindConflict:
		return http.StatusConflict
	case service.KindAuthentication:
		return http.StatusUnauthorized
	case service.KindAuthorization:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// HandleServiceError 以 {"error": reason} 写出服务层错误。内部错误不暴露细节。
func HandleServiceError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		// Log the internal error for debugging
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Unhandled internal server error")
		ErrorResponse(c, status, "An unexpected error occurred")
		return
	}
	ErrorResponse(c, status, err.Error())
}
