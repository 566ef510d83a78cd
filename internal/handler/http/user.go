package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/dto"
	"job-board/internal/middleware"
	"job-board/internal/service"
)

// UserHandler 个人资料与用户管理
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Profile GET /api/profile
func (h *UserHandler) Profile(c *gin.Context) {
	user, err := h.userService.Profile(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserRecord(user))
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.Principal(c), service.ProfileInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       service.Optional[string](req.Phone),
		CompanyName: service.Optional[string](req.CompanyName),
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": dto.NewUserRecord(user)})
}

// All GET /api/users，不分页
func (h *UserHandler) All(c *gin.Context) {
	users, err := h.userService.AllUsers(c.Request.Context(), middleware.Principal(c))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserRecords(users))
}

// List GET /api/admin/users
func (h *UserHandler) List(c *gin.Context) {
	q := bindQuery(c)
	page, err := h.userService.ListUsers(c.Request.Context(), middleware.Principal(c), service.UserQuery{
		Role:    q.UserType,
		Search:  q.Search,
		Page:    q.Page,
		PerPage: q.PerPage,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	PageResponse(c, "users", page, dto.UserRecords)
}

// Delete DELETE /api/users/:id 与 /api/admin/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.DeleteUser(c.Request.Context(), middleware.Principal(c), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	MessageResponse(c, "User deleted successfully")
}
