package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-board/internal/middleware"
	"job-board/internal/service"
)

// Handlers 汇总所有 HTTP 处理器
type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Job         *JobHandler
	Application *ApplicationHandler
	Admin       *AdminHandler
}

// RegisterRoutes 在 router 上注册 /api 下的全部路由。
// 每条路由先经过 middleware.Require 执行授权规则，服务层会再检查一次。
func RegisterRoutes(router gin.IRouter, h Handlers, auth middleware.Authenticator) {
	public := middleware.Require(service.PublicAccess)
	authed := middleware.Require(service.Authenticated)
	admin := middleware.Require(service.AdminOnly)

	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })

	api := router.Group("/api", middleware.Authenticate(auth))
	{
		api.POST("/register", public, h.Auth.Register)
		api.POST("/login", public, h.Auth.Login)
		api.POST("/logout", authed, h.Auth.Logout)

		api.GET("/profile", authed, h.User.Profile)
		api.PUT("/profile", authed, h.User.UpdateProfile)
		api.GET("/users", admin, h.User.All)
		// 删除自己的检查先于角色检查，这里只要求已认证
		api.DELETE("/users/:id", authed, h.User.Delete)

		api.GET("/jobs", public, h.Job.List)
		api.GET("/jobs/:id", public, h.Job.Get)
		api.POST("/jobs", middleware.Require(service.PostJob), h.Job.Create)
		api.PUT("/jobs/:id", authed, h.Job.Update)
		api.DELETE("/jobs/:id", authed, h.Job.Delete)
		api.GET("/jobs/:id/applications", authed, h.Job.Applications)
		api.POST("/jobs/:id/apply", middleware.Require(service.ApplyToJob), h.Application.Apply)
		api.GET("/my-jobs", middleware.Require(service.ViewMyJobs), h.Job.MyJobs)

		api.GET("/my-applications", middleware.Require(service.ViewMyApplications), h.Application.Mine)
		api.PUT("/applications/:id/status", authed, h.Application.UpdateStatus)
	}

	adminRoutes := api.Group("/admin", admin)
	{
		adminRoutes.GET("/dashboard", h.Admin.Dashboard)
		adminRoutes.GET("/users", h.User.List)
		adminRoutes.DELETE("/users/:id", h.User.Delete)
		adminRoutes.GET("/jobs", h.Job.AdminList)
		adminRoutes.DELETE("/jobs/:id", h.Job.AdminDelete)
		adminRoutes.PUT("/jobs/:id/toggle-status", h.Job.ToggleStatus)
		adminRoutes.GET("/applications", h.Application.AdminList)
		adminRoutes.DELETE("/applications/:id", h.Application.AdminDelete)
	}
}
