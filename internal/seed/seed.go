package seed

import (
	"fmt"
	"log"

	"warbler/internal/models"

	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumMessages int
	// MaxDays spreads message timestamps over the past N days.
	MaxDays int
	// SkipBcrypt stores the seed password in plaintext for faster local runs.
	// Seeded accounts with plaintext passwords cannot log in.
	SkipBcrypt bool
	// ShouldClean truncates all domain tables before seeding.
	ShouldClean bool
}

// Run populates the database with a demo social graph: users, messages,
// follow edges and likes.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumMessages <= 0 {
		opts.NumMessages = opts.NumUsers * 5
	}

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return fmt.Errorf("cleaning tables: %w", err)
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("seeding user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	messages := make([]*models.Message, 0, opts.NumMessages)
	for i := 0; i < opts.NumMessages; i++ {
		owner := users[factory.rand.Intn(len(users))]
		messages = append(messages, factory.BuildMessage(owner))
	}
	if err := factory.CreateMessagesBatch(messages); err != nil {
		return fmt.Errorf("seeding messages: %w", err)
	}
	log.Printf("seeded %d messages", len(messages))

	// Each user follows a handful of others.
	edges := 0
	for _, follower := range users {
		for i := 0; i < factory.rand.Intn(6); i++ {
			followee := users[factory.rand.Intn(len(users))]
			if followee.ID == follower.ID {
				continue
			}
			if err := factory.CreateFollow(follower.ID, followee.ID); err != nil {
				return fmt.Errorf("seeding follow: %w", err)
			}
			edges++
		}
	}
	log.Printf("seeded %d follow edges", edges)

	likes := 0
	for _, user := range users {
		for i := 0; i < factory.rand.Intn(8); i++ {
			message := messages[factory.rand.Intn(len(messages))]
			if err := factory.CreateLike(user.ID, message.ID); err != nil {
				return fmt.Errorf("seeding like: %w", err)
			}
			likes++
		}
	}
	log.Printf("seeded %d likes", likes)

	return nil
}

// Clean removes all domain rows, edges first so no orphan references remain.
func Clean(db *gorm.DB) error {
	for _, model := range []any{
		&models.Like{},
		&models.Follow{},
		&models.Message{},
		&models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
