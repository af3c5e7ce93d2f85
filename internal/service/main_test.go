package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive/config"
	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/internal/mailer"
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/repository"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-signing-secret"

// fixture wires the full service stack onto one in-memory database.
type fixture struct {
	db     *gorm.DB
	users  *UserService
	tasks  *TaskService
	tokens *TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Task{}, &model.SessionToken{}))

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	// SMTP stays disabled so lifecycle emails are skipped, not sent.
	cfg := &config.Config{}
	sender := mailer.NewSender(cfg, zap.NewNop())

	tokens := NewTokenService(testSecret, time.Hour, tokenRepo)

	return &fixture{
		db:     db,
		users:  NewUserService(userRepo, tokens, sender),
		tasks:  NewTaskService(taskRepo),
		tokens: tokens,
	}
}

func testCtx() context.Context {
	return context.Background()
}

func listAll() constants.ListParams {
	return constants.ListParams{Limit: 100}
}
