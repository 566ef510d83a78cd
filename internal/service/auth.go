package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"job-board/internal/credential"
	"job-board/internal/domain"
	"job-board/internal/repository"
)

// AuthService 负责注册、登录、登出以及把会话令牌解析为请求的认证上下文。
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      credential.Hasher
	jwtSecret   []byte        // 存储密钥的字节形式
	sessionTTL  time.Duration // 会话与 token 的有效期
}

// NewAuthService 创建 AuthService 实例。
// jwtSecretKey 应从安全配置中获取；sessionTTLHours <= 0 时默认 24 小时。
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, hasher credential.Hasher, jwtSecretKey string, sessionTTLHours int) (*AuthService, error) {
	if userRepo == nil || sessionRepo == nil || hasher == nil {
		panic("UserRepository, SessionRepository and Hasher cannot be nil for AuthService")
	}
	if jwtSecretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if sessionTTLHours <= 0 {
		sessionTTLHours = 24
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		jwtSecret:   []byte(jwtSecretKey),
		sessionTTL:  time.Duration(sessionTTLHours) * time.Hour,
	}, nil
}

// SessionTTL 会话有效期，HTTP 层用它设置 cookie 的 Max-Age
func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

// RegisterInput 注册所需字段
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	UserType    string
	FullName    string
	Phone       *string
	CompanyName *string
}

// Register 处理用户注册。所有检查都在写入之前完成。
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": in.Username, "email": in.Email, "user_type": in.UserType})

	// 1. 必填字段
	required := []struct{ name, value string }{
		{"username", strings.TrimSpace(in.Username)},
		{"email", strings.TrimSpace(in.Email)},
		{"password", in.Password},
		{"user_type", strings.TrimSpace(in.UserType)},
		{"full_name", strings.TrimSpace(in.FullName)},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, validationError("%s is required", f.name)
		}
	}
	if len(in.Password) > credential.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	// 2. 角色：只能自助注册为求职者或雇主
	role := domain.Role(in.UserType)
	if !role.Registrable() {
		logCtx.Warn("Registration rejected: invalid user type")
		return nil, ErrInvalidUserType
	}

	// 3. 唯一性：先查用户名，再查邮箱
	if err := s.ensureAvailable(ctx, s.userRepo.FindByUsername, in.Username, ErrUsernameTaken); err != nil {
		logCtx.WithError(err).Warn("Registration rejected")
		return nil, err
	}
	if err := s.ensureAvailable(ctx, s.userRepo.FindByEmail, in.Email, ErrEmailTaken); err != nil {
		logCtx.WithError(err).Warn("Registration rejected")
		return nil, err
	}

	// 4. 哈希密码
	hashed, err := s.hasher.Hash(in.Password)
	if errors.Is(err, credential.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	}
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         role,
		FullName:     in.FullName,
		Phone:        in.Phone,
	}
	if role == domain.RoleEmployer {
		user.CompanyName = in.CompanyName
	}

	// 5. 保存；并发注册时唯一约束兜底
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration failed: username or email already exists (repo error)")
			return nil, ErrUsernameOrEmailTaken
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	user.PasswordHash = "" // 清除密码哈希再返回
	return user, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, find func(context.Context, string) (*domain.User, error), value string, taken *Error) error {
	existing, err := find(ctx, value)
	switch {
	case err == nil && existing != nil:
		return taken
	case err == nil, errors.Is(err, repository.ErrNotFound):
		return nil
	}
	logrus.WithError(err).Error("Failed to check user uniqueness")
	return ErrInternalServer
}

// Login 校验用户名密码，创建会话并返回会话令牌。
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	logCtx := logrus.WithField("username", username)

	if username == "" || password == "" {
		return nil, "", validationError("username and password are required")
	}

	// 1. 查找用户
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: User not found")
			return nil, "", ErrInvalidCredentials
		}
		logCtx.WithError(err).Error("Login attempt failed: Error finding user")
		return nil, "", ErrInternalServer
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	// 2. 验证密码
	if !s.hasher.Verify(password, user.PasswordHash) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return nil, "", ErrInvalidCredentials
	}

	// 3. 创建会话，只缓存用户 ID 和角色
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessionRepo.Create(ctx, session, s.sessionTTL); err != nil {
		logCtx.WithError(err).Error("Failed to store session during login")
		return nil, "", ErrInternalServer
	}

	// 4. 签发 token
	token, err := s.generateJWT(session)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate JWT token during login")
		return nil, "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	user.PasswordHash = ""
	return user, token, nil
}

// Logout 删除当前会话
func (s *AuthService) Logout(ctx context.Context, principal *domain.Principal) error {
	if err := Authenticated.Check(principal); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, principal.SessionID); err != nil {
		logrus.WithError(err).WithField("user_id", principal.UserID).Error("Failed to delete session")
		return ErrInternalServer
	}
	logrus.WithField("user_id", principal.UserID).Info("User logged out")
	return nil
}

// Authenticate 校验 token 并从会话存储中取出认证上下文
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*domain.Principal, error) {
	claims, err := s.validateToken(tokenStr)
	if err != nil {
		logrus.WithError(err).Debug("Authenticate: invalid token")
		return nil, ErrInvalidSession
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, ErrInvalidSession
	}

	session, err := s.sessionRepo.Get(ctx, sid)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		logrus.WithError(err).Error("Authenticate: session store error")
		return nil, ErrInternalServer
	}

	// JWT 数字默认为 float64，需与会话中的用户一致
	if uid, ok := claims["user_id"].(float64); !ok || uint(uid) != session.UserID {
		logrus.WithField("sid", sid).Warn("Authenticate: token user does not match session")
		return nil, ErrInvalidSession
	}

	return &domain.Principal{
		UserID:    session.UserID,
		Role:      session.Role,
		SessionID: session.ID,
	}, nil
}

// --- 私有辅助函数 ---

// generateJWT 为会话签发 JWT，token 只携带会话 ID 和用户 ID
func (s *AuthService) generateJWT(session *domain.Session) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":     session.ID,
		"user_id": session.UserID,
		"exp":     now.Add(s.sessionTTL).Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// validateToken 解析并验证 JWT token 字符串
func (s *AuthService) validateToken(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法是否为 HMAC (HS256)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token or claims type")
}
