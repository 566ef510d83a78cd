package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/dto"
	"job-board/internal/middleware"
	"job-board/internal/service"
)

// JobHandler 职位相关的 HTTP 处理逻辑
type JobHandler struct {
	jobService *service.JobService
}

func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// List GET /api/jobs，公开的在招职位
func (h *JobHandler) List(c *gin.Context) {
	q := bindQuery(c)
	page, err := h.jobService.ListActive(c.Request.Context(), service.JobQuery{
		Search:   q.Search,
		Location: q.Location,
		Page:     q.Page,
		PerPage:  q.PerPage,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	PageResponse(c, "jobs", page, dto.JobRecords)
}

// Get GET /api/jobs/:id
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewJobRecord(job))
}

// Create POST /api/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.jobService.Create(c.Request.Context(), middleware.Principal(c), service.JobInput{
		Title:        deref(req.Title),
		Description:  deref(req.Description),
		Location:     deref(req.Location),
		Salary:       req.Salary.Value,
		Requirements: req.Requirements.Value,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job created successfully", "job": dto.NewJobRecord(job)})
}

// Update PUT /api/jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.JobRequest
	if !bindJSON(c, &req) {
		return
	}
	job, err := h.jobService.Update(c.Request.Context(), middleware.Principal(c), id, service.JobUpdate{
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		Salary:       service.Optional[string](req.Salary),
		Requirements: service.Optional[string](req.Requirements),
		IsActive:     req.IsActive,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": dto.NewJobRecord(job)})
}

// Delete DELETE /api/jobs/:id
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.jobService.Delete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	MessageResponse(c, "Job deleted successfully")
}

// MyJobs GET /api/my-jobs
func (h *JobHandler) MyJobs(c *gin.Context) {
	jobs, err := h.jobService.MyJobs(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.JobRecords(jobs))
}

// Applications GET /api/jobs/:id/applications
func (h *JobHandler) Applications(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	apps, err := h.jobService.Applications(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ApplicationRecords(apps))
}

// AdminList GET /api/admin/jobs
func (h *JobHandler) AdminList(c *gin.Context) {
	q := bindQuery(c)
	page, err := h.jobService.ListAll(c.Request.Context(), middleware.Principal(c), service.AdminJobQuery{
		Status:  q.Status,
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	PageResponse(c, "jobs", page, dto.JobRecords)
}

// AdminDelete DELETE /api/admin/jobs/:id
func (h *JobHandler) AdminDelete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.jobService.AdminDelete(c.Request.Context(), middleware.Principal(c), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	MessageResponse(c, "Job deleted successfully")
}

// ToggleStatus PUT /api/admin/jobs/:id/toggle-status
func (h *JobHandler) ToggleStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	job, err := h.jobService.ToggleStatus(c.Request.Context(), middleware.Principal(c), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	message := "Job deactivated successfully"
	if job.IsActive {
		message = "Job activated successfully"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "job": dto.NewJobRecord(job)})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
