package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"clubhouse/internal/config"
	"clubhouse/internal/db"
	"clubhouse/internal/model"
	"clubhouse/internal/repository"
)

// demoUser is a fixture account created by the seed script. All demo
// accounts share the same password so the board can be explored right away.
type demoUser struct {
	Firstname string
	Lastname  string
	Username  string
	Messages  []demoMessage
}

type demoMessage struct {
	Title string
	Body  string
}

const demoPassword = "Passw0rdDemo"

var demoUsers = []demoUser{
	{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Username:  "ada.l",
		Messages: []demoMessage{
			{Title: "Hello", Body: "First post on the board."},
		},
	},
	{
		Firstname: "Alan",
		Lastname:  "Turing",
		Username:  "alan_t",
		Messages: []demoMessage{
			{Title: "Welcome", Body: "Glad to see this place up and running."},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Message{}, &model.Session{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	messages := repository.NewMessageRepository(gormDB)

	created := 0
	for _, demo := range demoUsers {
		user, err := users.FindByUsername(ctx, demo.Username)
		if err == nil {
			log.Printf("User %q already exists, skipping", demo.Username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up user %q: %v", demo.Username, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		user = &model.User{
			Firstname:    demo.Firstname,
			Lastname:     demo.Lastname,
			Username:     demo.Username,
			PasswordHash: string(hashed),
		}
		if err := users.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %q: %v", demo.Username, err)
		}

		for _, msg := range demo.Messages {
			if err := messages.Create(ctx, &model.Message{
				Title:     msg.Title,
				Body:      msg.Body,
				UserID:    user.ID,
				CreatedAt: time.Now(),
			}); err != nil {
				log.Fatalf("Failed to create message for %q: %v", demo.Username, err)
			}
		}
		created++
	}

	log.Printf("Seed completed: %d users created (password %q)", created, demoPassword)
}
