package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job-board/internal/dto"
	"job-board/internal/middleware"
	"job-board/internal/service"
)

// AuthHandler 封装了与用户认证相关的 HTTP 处理逻辑
type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

// NewAuthHandler 创建 AuthHandler 实例。secureCookie 为 true 时会话 cookie 只通过 HTTPS 发送。
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// LoginResponse 定义登录成功的响应结构体
type LoginResponse struct {
	Message string         `json:"message"`
	Token   string         `json:"token"`
	User    dto.UserRecord `json:"user"`
}

// Register 处理用户注册请求
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	newUser, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		UserType:    req.UserType,
		FullName:    req.FullName,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	logrus.WithField("user_id", newUser.ID).Info("Handler.Register: User registered successfully")
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    dto.NewUserRecord(newUser),
	})
}

// Login 处理用户登录请求，token 同时写入 cookie 并在响应体中返回
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.authService.SessionTTL().Seconds()), "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    dto.NewUserRecord(user),
	})
}

// Logout 删除当前会话并清除 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.Principal(c)); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	MessageResponse(c, "Logout successful")
}
