package database

import (
	"testing"

	"warbler/internal/config"
	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	assert.NoError(t, configurePool(db, cfg))
}

func TestMigrateEnforcesUniqueIndexes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	// Duplicate username is rejected by the store itself.
	require.NoError(t, db.Create(&models.User{Username: "alice", Email: "alice@example.com", Password: "h"}).Error)
	err = db.Create(&models.User{Username: "alice", Email: "other@example.com", Password: "h"}).Error
	assert.Error(t, err)

	// Duplicate follow edge is rejected by the composite unique index.
	require.NoError(t, db.Create(&models.Follow{FollowerID: 1, FolloweeID: 2}).Error)
	err = db.Create(&models.Follow{FollowerID: 1, FolloweeID: 2}).Error
	assert.Error(t, err)

	// Duplicate like pair is rejected; the same message liked by a different
	// user is fine.
	require.NoError(t, db.Create(&models.Like{UserID: 1, MessageID: 5}).Error)
	err = db.Create(&models.Like{UserID: 1, MessageID: 5}).Error
	assert.Error(t, err)
	assert.NoError(t, db.Create(&models.Like{UserID: 2, MessageID: 5}).Error)
}
