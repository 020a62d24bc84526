package seed

import (
	"os"
	"testing"

	"warbler/internal/database"
	"warbler/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func TestRunSeedsConsistentGraph(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Run(db, Options{NumUsers: 5, NumMessages: 12, SkipBcrypt: true}))

	var userCount, messageCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Message{}).Count(&messageCount).Error)
	assert.EqualValues(t, 5, userCount)
	assert.EqualValues(t, 12, messageCount)

	// No self-follow edges and every like references an existing message.
	var selfFollows int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = followee_id").Count(&selfFollows).Error)
	assert.Zero(t, selfFollows)

	var orphanLikes int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("message_id NOT IN (?)", db.Model(&models.Message{}).Select("id")).
		Count(&orphanLikes).Error)
	assert.Zero(t, orphanLikes)

	// Every message stays within the character limit.
	var tooLong int64
	require.NoError(t, db.Model(&models.Message{}).
		Where("LENGTH(text) > ?", models.MaxMessageLength).Count(&tooLong).Error)
	assert.Zero(t, tooLong)
}

func TestCreateUserHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{})

	user, err := factory.CreateUser()
	require.NoError(t, err)
	assert.NotEqual(t, SeedPassword, user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(SeedPassword)))
}

func TestCreateUserOverrides(t *testing.T) {
	db := setupTestDB(t)
	factory := NewFactory(db, Options{SkipBcrypt: true})

	user, err := factory.CreateUser(func(u *models.User) {
		u.Username = "demo_user"
		u.Email = "demo@example.com"
	})
	require.NoError(t, err)
	assert.Equal(t, "demo_user", user.Username)
	assert.Equal(t, "demo@example.com", user.Email)
}

func TestCleanRemovesEverything(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Run(db, Options{NumUsers: 3, NumMessages: 6, SkipBcrypt: true}))

	require.NoError(t, Clean(db))

	for _, model := range []any{&models.User{}, &models.Message{}, &models.Follow{}, &models.Like{}} {
		var count int64
		require.NoError(t, db.Unscoped().Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}
