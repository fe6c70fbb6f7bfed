package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"dms-backend/internal/entity"
	"dms-backend/internal/repository/specification"
	"dms-backend/internal/repository/unitofwork"
	"dms-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.DocumentRepository())
	assert.NotNil(t, uow.SmartFolderRepository())
	assert.NotNil(t, uow.NotificationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Repository", func(t *testing.T) {
		count, err := uow.DocumentRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Document count: %d", count)
	})

	t.Run("Check Smart Folder Round Trip", func(t *testing.T) {
		ctx := context.Background()

		// Folders carry an owner FK, so create a throwaway user first.
		owner := &entity.User{
			Id:           uuid.New(),
			Username:     "it-" + uuid.New().String()[:8],
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			PasswordHash: "x",
			FullName:     "Integration Test User",
			Role:         entity.UserRoleUser,
			Department:   "IT",
			IsActive:     true,
			CreatedAt:    time.Now(),
		}
		err := uow.UserRepository().Create(ctx, owner)
		assert.NoError(t, err)

		folder := &entity.SmartFolder{
			Id:         uuid.New(),
			Name:       "Integration Folder",
			Definition: `{"documentTypes": ["CONTRACT"]}`,
			Scope:      entity.SmartFolderScopePrivate,
			OwnerId:    owner.Id,
			IsActive:   true,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
		err = uow.SmartFolderRepository().Create(ctx, folder)
		assert.NoError(t, err)

		saved, err := uow.SmartFolderRepository().FindOne(ctx, specification.ByID{ID: folder.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, saved) {
			assert.Equal(t, folder.Name, saved.Name)
			assert.Equal(t, folder.Definition, saved.Definition)
			assert.Equal(t, entity.SmartFolderScopePrivate, saved.Scope)
		}

		owned, err := uow.SmartFolderRepository().FindAll(ctx, specification.OwnedBy{UserID: owner.Id})
		assert.NoError(t, err)
		assert.Len(t, owned, 1)

		// Cleanup
		err = uow.SmartFolderRepository().Delete(ctx, folder.Id)
		assert.NoError(t, err)
		err = uow.UserRepository().Delete(ctx, owner.Id)
		assert.NoError(t, err)
	})
}
