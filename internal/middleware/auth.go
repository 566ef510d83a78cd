package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"job-board/internal/domain"
	"job-board/internal/service"
)

const (
	// SessionCookie 浏览器客户端携带会话令牌的 cookie 名
	SessionCookie = "jb_session"

	principalKey = "principal"
)

// ErrMissingToken 请求既没有 Authorization 头也没有会话 cookie
var ErrMissingToken = errors.New("missing session token")

// Authenticator 把会话令牌解析为认证上下文，由 service.AuthService 实现
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// Authenticate 返回一个 Gin 中间件：令牌有效时把 Principal 放入上下文。
// 它从不终止请求，是否需要认证由 Require 决定。
func Authenticate(auth Authenticator) gin.HandlerFunc {
	if auth == nil {
		panic("Authenticator cannot be nil for Authenticate middleware")
	}
	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil {
			if !errors.Is(err, ErrMissingToken) {
				logrus.WithError(err).Debug("Auth middleware: Could not extract token")
			}
			c.Next()
			return
		}

		principal, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			// 会话存储故障不能当作匿名请求处理
			if service.KindOf(err) != service.KindAuthentication {
				logrus.WithError(err).Error("Auth middleware: Failed to resolve session")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred"})
				return
			}
			logrus.WithError(err).Debug("Auth middleware: Token rejected, continuing anonymously")
			c.Next()
			return
		}

		c.Set(principalKey, principal)
		logrus.WithField("user_id", principal.UserID).Debug("Auth middleware: User authenticated")
		c.Next()
	}
}

// Require 在处理函数之前执行授权规则，不满足时按错误类别返回 401 或 403
func Require(policy service.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := policy.Check(Principal(c)); err != nil {
			status := http.StatusForbidden
			if service.KindOf(err) == service.KindAuthentication {
				status = http.StatusUnauthorized
			}
			logrus.WithFields(logrus.Fields{"policy": policy.Name, "path": c.FullPath()}).Debug("Policy rejected request")
			c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}

// Principal 返回当前请求的认证上下文，未认证时为 nil
func Principal(c *gin.Context) *domain.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Principal)
	return p
}

// extractToken 优先读取 Bearer Token，其次读取会话 cookie
func extractToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		// Authorization header 格式应为 "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", errors.New("malformed Authorization header")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", ErrMissingToken
}
