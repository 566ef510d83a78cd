package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/dto"
	"job-board/internal/middleware"
	"job-board/internal/service"
)

// ApplicationHandler 求职申请相关的 HTTP 处理逻辑
type ApplicationHandler struct {
	appService *service.ApplicationService
}

func NewApplicationHandler(appService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// Apply POST /api/jobs/:id/apply，请求体可为空
func (h *ApplicationHandler) Apply(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.ApplyRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	app, err := h.appService.Apply(c.Request.Context(), middleware.Principal(c), id, service.ApplyInput{
		CoverLetter:    req.CoverLetter,
		ResumeFilename: req.ResumeFilename,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application submitted successfully", "application": dto.NewApplicationRecord(app)})
}

// Mine GET /api/my-applications
func (h *ApplicationHandler) Mine(c *gin.Context) {
	apps, err := h.appService.MyApplications(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApplicationRecords(apps))
}

// UpdateStatus PUT /api/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	app, err := h.appService.UpdateStatus(c.Request.Context(), middleware.Principal(c), id, req.Status)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application status updated successfully", "application": dto.NewApplicationRecord(app)})
}

// AdminList GET /api/admin/applications
func (h *ApplicationHandler) AdminList(c *gin.Context) {
	q := bindQuery(c)
	page, err := h.appService.ListAll(c.Request.Context(), middleware.Principal(c), service.ApplicationQuery{
		Status:  q.Status,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	PageResponse(c, "applications", page, dto.ApplicationRecords)
}

// AdminDelete DELETE /api/admin/applications/:id
func (h *ApplicationHandler) AdminDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.appService.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	MessageResponse(c, "Application deleted successfully")
}
