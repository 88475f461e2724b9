package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Dhuruvdev/thats.wtf-sub000/config"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/model/dto"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/oauth"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/response"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/pkg/session"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/repository"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/service"
	"github.com/Dhuruvdev/thats.wtf-sub000/internal/testutil"
)

const testCookieName = "wtf_session"

func init() {
	gin.SetMode(gin.TestMode)
}

// testContext 本地测试上下文
type testContext struct {
	DB       *gorm.DB
	Sessions *session.Store
}

func setupAuthHandler(t *testing.T) (*AuthHandler, *testContext, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		Server: config.ServerConfig{
			BaseURL: "http://localhost:8080",
		},
		Session: config.SessionConfig{
			CookieName: testCookieName,
			TTLHours:   24,
		},
		OAuth: config.OAuthConfig{
			Discord: config.DiscordOAuthConfig{
				ClientID:     "test-client-id",
				ClientSecret: "test-client-secret",
				RedirectURI:  "http://localhost:8080/api/auth/discord/callback",
			},
		},
	}

	sessions := session.NewStore(rdb, 24*time.Hour)
	stateStore := oauth.NewStateStore(rdb)
	authService := service.NewAuthService(userRepo, nil, cfg)
	handler := NewAuthHandler(authService, sessions, stateStore, cfg)

	ctx := &testContext{
		DB:       db,
		Sessions: sessions,
	}

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
		rdb.Close()
		mr.Close()
	}

	return handler, ctx, cleanup
}

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseErrorBody(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	var body response.ErrorBody
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	return body
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	handler, ctx, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/register", handler.Register)

	w := performRequest(router, "POST", "/api/register", dto.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "testuser", body["username"])

	// 注册成功即建立会话
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	userID, err := ctx.Sessions.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.NotZero(t, userID)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/register", handler.Register)

	// 密码太短
	w := performRequest(router, "POST", "/api/register", dto.RegisterRequest{
		Username: "testuser",
		Email:    "test@example.com",
		Password: "short",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, "password", body.Field)
}

func TestAuthHandler_Register_DuplicateUsername(t *testing.T) {
	handler, ctx, cleanup := setupAuthHandler(t)
	defer cleanup()

	testutil.TestUser(t, ctx.DB, testutil.WithUsername("taken"))

	router := gin.New()
	router.POST("/api/register", handler.Register)

	w := performRequest(router, "POST", "/api/register", dto.RegisterRequest{
		Username: "taken",
		Email:    "fresh@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, "Username is already taken", body.Message)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	handler, ctx, cleanup := setupAuthHandler(t)
	defer cleanup()

	testutil.TestUser(t, ctx.DB, testutil.WithEmail("taken@example.com"))

	router := gin.New()
	router.POST("/api/register", handler.Register)

	w := performRequest(router, "POST", "/api/register", dto.RegisterRequest{
		Username: "freshuser",
		Email:    "taken@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, "Email is already registered", body.Message)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/register", handler.Register)
	router.POST("/api/login", handler.Login)

	w := performRequest(router, "POST", "/api/register", dto.RegisterRequest{
		Username: "loginuser",
		Email:    "login@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "POST", "/api/login", dto.LoginRequest{
		Identifier: "login@example.com",
		Password:   "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, sessionCookie(w))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "loginuser", body["username"])
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/login", handler.Login)

	w := performRequest(router, "POST", "/api/login", dto.LoginRequest{
		Identifier: "ghost@example.com",
		Password:   "password123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, "Invalid email or password", body.Message)
	assert.Nil(t, sessionCookie(w))
}

func TestAuthHandler_Logout_DestroysSession(t *testing.T) {
	handler, ctx, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/register", handler.Register)
	router.POST("/api/logout", handler.Logout)

	w := performRequest(router, "POST", "/api/register", dto.RegisterRequest{
		Username: "logoutuser",
		Email:    "logout@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	req := httptest.NewRequest("POST", "/api/logout", nil)
	req.AddCookie(cookie)
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, req)

	assert.Equal(t, http.StatusOK, lw.Code)

	// 会话已销毁
	_, err := ctx.Sessions.Get(req.Context(), cookie.Value)
	assert.ErrorIs(t, err, session.ErrNotFound)

	// 响应清掉了 Cookie
	cleared := sessionCookie(lw)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/logout", handler.Logout)

	// 没有会话也返回 200
	w := performRequest(router, "POST", "/api/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// 带一个无效令牌重复登出同样 200
	req := httptest.NewRequest("POST", "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "stale-token"})
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	assert.Equal(t, http.StatusOK, lw.Code)
}

func TestAuthHandler_VerifyEmail_Success(t *testing.T) {
	handler, ctx, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/register", handler.Register)
	router.POST("/api/verify-email", handler.VerifyEmail)

	w := performRequest(router, "POST", "/api/register", dto.RegisterRequest{
		Username: "verifyuser",
		Email:    "verify@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	userRepo := repository.NewUserRepository(ctx.DB)
	user, err := userRepo.GetByUsername("verifyuser")
	require.NoError(t, err)
	require.NotNil(t, user.VerificationToken)

	w = performRequest(router, "POST", "/api/verify-email", dto.VerifyEmailRequest{
		Token: *user.VerificationToken,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, sessionCookie(w))
}

func TestAuthHandler_VerifyEmail_InvalidToken(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.POST("/api/verify-email", handler.VerifyEmail)

	w := performRequest(router, "POST", "/api/verify-email", dto.VerifyEmailRequest{
		Token: "bogus-token",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := parseErrorBody(t, w)
	assert.Equal(t, "Invalid or expired verification token", body.Message)
}

func TestAuthHandler_DiscordAuth_Redirects(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/api/auth/discord", handler.DiscordAuth)

	w := performRequest(router, "GET", "/api/auth/discord", nil)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	location := w.Header().Get("Location")
	assert.Contains(t, location, "discord.com/oauth2/authorize")
	assert.Contains(t, location, "state=")
}

func TestAuthHandler_DiscordCallback_BadState(t *testing.T) {
	handler, _, cleanup := setupAuthHandler(t)
	defer cleanup()

	router := gin.New()
	router.GET("/api/auth/discord/callback", handler.DiscordCallback)

	w := performRequest(router, "GET", "/api/auth/discord/callback?state=forged&code=x", nil)

	// state 校验失败回落到登录页
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/auth", w.Header().Get("Location"))
}
