package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job-board/internal/dto"
	"job-board/internal/service"
)

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

func SuccessResponse(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// MessageResponse 只带提示信息的成功响应
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// PageResponse 分页列表响应，key 为列表字段名 (jobs / users / applications)
func PageResponse[T, R any](c *gin.Context, key string, page *service.Page[T], convert func([]T) []R) {
	c.JSON(http.StatusOK, gin.H{
		key:            convert(page.Items),
		"total":        page.Total,
		"pages":        page.Pages,
		"current_page": page.Page,
		"per_page":     page.PerPage,
	})
}

// bindQuery 解析列表查询参数。非数字的 page / per_page 视为未提供。
func bindQuery(c *gin.Context) dto.ListQuery {
	q := dto.ListQuery{
		Search:   c.Query("search"),
		Location: c.Query("location"),
		UserType: c.Query("user_type"),
		Status:   c.Query("status"),
	}
	q.Page, _ = strconv.Atoi(c.Query("page"))
	q.PerPage, _ = strconv.Atoi(c.Query("per_page"))
	return q
}

// paramID 解析路径中的数字 ID，失败时直接写出 400
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		logrus.WithField(name, c.Param(name)).Warn("Handler: Invalid id parameter")
		ErrorResponse(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// bindJSON 绑定请求体，失败时直接写出 400
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logrus.WithError(err).Warn("Handler: Invalid input format")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "details": err.Error()})
		return false
	}
	return true
}
