package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"job-board/internal/credential"
	"job-board/internal/domain"
	httpHandler "job-board/internal/handler/http"
	gormpersistence "job-board/internal/infra/persistence/gorm"
	"job-board/internal/infra/setup"
	"job-board/internal/repository"
	"job-board/internal/service"
)

// memorySessions 是测试用的内存会话存储
type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func (m *memorySessions) Create(_ context.Context, s *domain.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *memorySessions) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memorySessions) DeleteByUser(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

type testServer struct {
	router *gin.Engine
	users  *gormpersistence.GormUserRepository
	hasher credential.Hasher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := setup.InitDB(setup.DBConfig{Driver: setup.DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, setup.MigrateDB(db))

	userRepo := gormpersistence.NewGormUserRepository(db)
	jobRepo := gormpersistence.NewGormJobRepository(db)
	appRepo := gormpersistence.NewGormApplicationRepository(db)
	sessions := &memorySessions{sessions: map[string]domain.Session{}}
	hasher := credential.NewBcryptHasher(bcrypt.MinCost)

	authService, err := service.NewAuthService(userRepo, sessions, hasher, "test-secret", 1)
	require.NoError(t, err)

	router := gin.New()
	httpHandler.RegisterRoutes(router, httpHandler.Handlers{
		Auth:        httpHandler.NewAuthHandler(authService, false),
		User:        httpHandler.NewUserHandler(service.NewUserService(userRepo, sessions)),
		Job:         httpHandler.NewJobHandler(service.NewJobService(jobRepo, appRepo)),
		Application: httpHandler.NewApplicationHandler(service.NewApplicationService(jobRepo, appRepo)),
		Admin:       httpHandler.NewAdminHandler(service.NewAdminService(userRepo, jobRepo, appRepo)),
	}, authService)

	return &testServer{router: router, users: userRepo, hasher: hasher}
}

// do 发送请求并把响应解析为通用 JSON
func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (s *testServer) register(t *testing.T, body map[string]interface{}) {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, "/api/register", "", body)
	require.Equal(t, http.StatusCreated, code, "%v", resp)
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": username, "password": password})
	require.Equal(t, http.StatusOK, code, "%v", resp)
	return obj(resp)["token"].(string)
}

func obj(v interface{}) map[string]interface{} { return v.(map[string]interface{}) }
func arr(v interface{}) []interface{}          { return v.([]interface{}) }

func TestEndToEnd_HiringFlow(t *testing.T) {
	s := newTestServer(t)

	// 雇主注册并登录
	s.register(t, map[string]interface{}{
		"username": "acme", "email": "hr@acme.com", "password": "pw-acme",
		"user_type": "employer", "full_name": "Acme HR", "company_name": "Acme",
	})
	acme := s.login(t, "acme", "pw-acme")

	// 发布职位
	code, resp := s.do(t, http.MethodPost, "/api/jobs", acme, map[string]string{
		"title": "Backend Engineer", "description": "Build APIs in Go", "location": "Remote",
	})
	require.Equal(t, http.StatusCreated, code, "%v", resp)
	job := obj(obj(resp)["job"])
	jobID := uint(job["id"].(float64))
	assert.Equal(t, "Acme", job["employer_name"])
	assert.Equal(t, true, job["is_active"])

	// 显式 null 清空薪资，缺省字段保持不变
	code, resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/jobs/%d", jobID), acme, map[string]interface{}{"salary": "$120k", "requirements": "Go"})
	require.Equal(t, http.StatusOK, code, "%v", resp)
	assert.Equal(t, "$120k", obj(obj(resp)["job"])["salary"])
	code, resp = s.do(t, http.MethodPut, fmt.Sprintf("/api/jobs/%d", jobID), acme, map[string]interface{}{"salary": nil})
	require.Equal(t, http.StatusOK, code, "%v", resp)
	assert.Nil(t, obj(obj(resp)["job"])["salary"])
	assert.Equal(t, "Go", obj(obj(resp)["job"])["requirements"])
	_, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/jobs/%d", jobID), "", nil)
	assert.Nil(t, obj(resp)["salary"])

	// 公开搜索可见
	code, resp = s.do(t, http.MethodGet, "/api/jobs?search=Backend", "", nil)
	require.Equal(t, http.StatusOK, code)
	listing := obj(resp)
	assert.Len(t, arr(listing["jobs"]), 1)
	assert.Equal(t, float64(1), listing["total"])
	assert.Equal(t, float64(1), listing["pages"])
	assert.Equal(t, float64(1), listing["current_page"])
	assert.Equal(t, float64(10), listing["per_page"])

	// 求职者注册、登录并申请
	s.register(t, map[string]interface{}{
		"username": "alice", "email": "alice@example.com", "password": "pw-alice",
		"user_type": "job_seeker", "full_name": "Alice Smith",
	})
	alice := s.login(t, "alice", "pw-alice")

	code, resp = s.do(t, http.MethodPost, fmt.Sprintf("/api/jobs/%d/apply", jobID), alice, map[string]string{"cover_letter": "Hi"})
	require.Equal(t, http.StatusCreated, code, "%v", resp)
	appID := uint(obj(obj(resp)["application"])["id"].(float64))

	code, resp = s.do(t, http.MethodPost, fmt.Sprintf("/api/jobs/%d/apply", jobID), alice, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "already applied to this job", obj(resp)["error"])

	// 雇主查看申请
	code, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/jobs/%d/applications", jobID), acme, nil)
	require.Equal(t, http.StatusOK, code)
	apps := arr(resp)
	require.Len(t, apps, 1)
	assert.Equal(t, "pending", obj(apps[0])["status"])
	assert.Equal(t, "Alice Smith", obj(apps[0])["applicant_name"])

	// 求职者不能改状态
	code, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), alice, map[string]string{"status": "accepted"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), acme, map[string]string{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPut, fmt.Sprintf("/api/applications/%d/status", appID), acme, map[string]string{"status": "accepted"})
	require.Equal(t, http.StatusOK, code)

	code, resp = s.do(t, http.MethodGet, "/api/my-applications", alice, nil)
	require.Equal(t, http.StatusOK, code)
	mine := arr(resp)
	require.Len(t, mine, 1)
	assert.Equal(t, "accepted", obj(mine[0])["status"])
	assert.Equal(t, "Backend Engineer", obj(mine[0])["job_title"])
}

func TestEndToEnd_AuthAndErrors(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "mallory", "email": "m@example.com", "password": "pw", "user_type": "admin", "full_name": "M",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid user type", obj(resp)["error"])

	code, resp = s.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "longpw", "email": "long@example.com", "password": strings.Repeat("p", 73),
		"user_type": "job_seeker", "full_name": "Long",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "password must be at most 72 bytes", obj(resp)["error"])

	s.register(t, map[string]interface{}{
		"username": "bob", "email": "bob@example.com", "password": "pw-bob", "user_type": "job_seeker", "full_name": "Bob",
	})
	code, _ = s.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"username": "bob", "email": "bob2@example.com", "password": "pw", "user_type": "job_seeker", "full_name": "Bob",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, resp = s.do(t, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "authentication required", obj(resp)["error"])

	bob := s.login(t, "bob", "pw-bob")
	code, resp = s.do(t, http.MethodGet, "/api/profile", bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "bob", obj(resp)["username"])
	assert.NotContains(t, obj(resp), "password_hash")

	code, resp = s.do(t, http.MethodGet, "/api/admin/dashboard", bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "admin privileges required", obj(resp)["error"])

	code, _ = s.do(t, http.MethodPost, "/api/jobs", bob, map[string]string{"title": "x", "description": "y", "location": "z"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/api/jobs/999", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = s.do(t, http.MethodGet, "/api/jobs/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	// 登出后 token 失效
	code, _ = s.do(t, http.MethodPost, "/api/logout", bob, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodGet, "/api/profile", bob, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/api/login", "", map[string]string{"username": "bob", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestEndToEnd_AdminModeration(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	// 管理员不能自助注册，直接写入
	hash, err := s.hasher.Hash("pw-admin")
	require.NoError(t, err)
	admin := &domain.User{Username: "root", Email: "root@example.com", PasswordHash: hash, Role: domain.RoleAdmin, FullName: "Root"}
	require.NoError(t, s.users.Create(ctx, admin))
	rootToken := s.login(t, "root", "pw-admin")

	s.register(t, map[string]interface{}{
		"username": "acme", "email": "hr@acme.com", "password": "pw-acme", "user_type": "employer", "full_name": "Acme HR",
	})
	acme := s.login(t, "acme", "pw-acme")
	var jobIDs []uint
	for i := 0; i < 3; i++ {
		code, resp := s.do(t, http.MethodPost, "/api/jobs", acme, map[string]string{
			"title": fmt.Sprintf("Job %d", i), "description": "d", "location": "Remote",
		})
		require.Equal(t, http.StatusCreated, code)
		jobIDs = append(jobIDs, uint(obj(obj(resp)["job"])["id"].(float64)))
	}

	// 下线一个职位后公开列表只剩两个
	code, resp := s.do(t, http.MethodPut, fmt.Sprintf("/api/admin/jobs/%d/toggle-status", jobIDs[0]), rootToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Job deactivated successfully", obj(resp)["message"])
	_, resp = s.do(t, http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, float64(2), obj(resp)["total"])
	_, resp = s.do(t, http.MethodGet, "/api/admin/jobs?status=inactive", rootToken, nil)
	assert.Equal(t, float64(1), obj(resp)["total"])

	code, resp = s.do(t, http.MethodGet, "/api/admin/dashboard", rootToken, nil)
	require.Equal(t, http.StatusOK, code)
	stats := obj(obj(resp)["stats"])
	assert.Equal(t, float64(2), stats["total_users"])
	assert.Equal(t, float64(3), stats["total_jobs"])
	assert.Equal(t, float64(2), stats["active_jobs"])
	recent := obj(obj(resp)["recent_activity"])
	assert.Len(t, arr(recent["jobs"]), 3)
	assert.Len(t, arr(recent["users"]), 2)
	assert.Empty(t, arr(recent["applications"]))

	// 不能删除自己
	code, resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", admin.ID), rootToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "cannot delete your own account", obj(resp)["error"])

	// 删除雇主：职位级联删除，会话被吊销
	acmeUser, err := s.users.FindByUsername(ctx, "acme")
	require.NoError(t, err)
	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", acmeUser.ID), rootToken, nil)
	require.Equal(t, http.StatusOK, code)

	_, resp = s.do(t, http.MethodGet, "/api/admin/jobs", rootToken, nil)
	assert.Equal(t, float64(0), obj(resp)["total"])
	code, _ = s.do(t, http.MethodGet, "/api/profile", acme, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp = s.do(t, http.MethodGet, "/api/users", rootToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, arr(resp), 1)

	// 越界页返回空列表
	code, resp = s.do(t, http.MethodGet, "/api/admin/users?page=100&per_page=10", rootToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, arr(obj(resp)["users"]))
	assert.Equal(t, float64(1), obj(resp)["total"])
	assert.Equal(t, float64(1), obj(resp)["pages"])
}
