package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database with the full schema. One
// connection keeps every query on the same memory instance.
func testDB(t *testing.T) *gorm.DB {
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

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed-password",
		Age:      30,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func testCtx() context.Context {
	return context.Background()
}

func listAll() constants.ListParams {
	return constants.ListParams{Limit: 100}
}
