package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/repository"
	"github.com/taskhive/taskhive/internal/service"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Logger = zap.NewNop()
	m.Run()
}

type guardFixture struct {
	engine *gin.Engine
	tokens *service.TokenService
	user   *model.User
	token  string
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.SessionToken{}))

	user := &model.User{Name: "Guarded", Email: "guarded@example.com", Password: "hash"}
	require.NoError(t, db.Create(user).Error)

	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	tokens := service.NewTokenService("guard-test-secret", time.Hour, tokenRepo)

	token, err := tokens.Issue(context.Background(), user.ID)
	require.NoError(t, err)

	guard := NewAuthMiddleware(tokens, userRepo)

	engine := gin.New()
	engine.GET("/protected", guard.RequireAuth(), func(c *gin.Context) {
		userID, ok := ctxutil.GetUserID(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return &guardFixture{engine: engine, tokens: tokens, user: user, token: token}
}

func (f *guardFixture) request(authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	f.engine.ServeHTTP(recorder, req)
	return recorder
}

func TestRequireAuthAcceptsLiveToken(t *testing.T) {
	f := newGuardFixture(t)

	recorder := f.request("Bearer " + f.token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"user_id":1`)
}

func TestRequireAuthRejectionIsUniform(t *testing.T) {
	f := newGuardFixture(t)

	revoked, err := f.tokens.Issue(context.Background(), f.user.ID)
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(context.Background(), f.user.ID, revoked))

	tests := []struct {
		name       string
		authHeader string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare token without scheme", f.token},
		{"malformed token", "Bearer not-a-jwt"},
		{"revoked token", "Bearer " + revoked},
	}

	var firstBody string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := f.request(tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			// Every rejection cause must produce the identical body.
			if firstBody == "" {
				firstBody = recorder.Body.String()
				assert.Contains(t, firstBody, "please authenticate")
			} else {
				assert.Equal(t, firstBody, recorder.Body.String())
			}
		})
	}
}

func TestRequireAuthRejectsDeletedUser(t *testing.T) {
	f := newGuardFixture(t)

	// Simulate account deletion racing a live token: the session row is gone.
	require.NoError(t, f.tokens.RevokeAll(context.Background(), f.user.ID))

	recorder := f.request("Bearer " + f.token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
