package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/dto"
	"job-board/internal/middleware"
	"job-board/internal/service"
)

// AdminHandler 管理员仪表盘
type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Dashboard GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.adminService.Dashboard(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	s := dash.Stats
	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"total_users":        s.TotalUsers,
			"total_employers":    s.TotalEmployers,
			"total_job_seekers":  s.TotalJobSeekers,
			"total_jobs":         s.TotalJobs,
			"active_jobs":        s.ActiveJobs,
			"total_applications": s.TotalApplications,
		},
		"recent_activity": gin.H{
			"users":        dto.UserRecords(dash.RecentUsers),
			"jobs":         dto.JobRecords(dash.RecentJobs),
			"applications": dto.ApplicationRecords(dash.RecentApplications),
		},
	})
}
