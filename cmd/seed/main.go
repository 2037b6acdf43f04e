package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/orryin/orryin-backend/config"
	"github.com/orryin/orryin-backend/pkg/helpers"
)

// Seeds one dev user with a USD account for local testing.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "dev@example.com"
	password := "dev-mvp-flow"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (email, hashed_password, is_active)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (email) DO UPDATE SET is_active = TRUE
		RETURNING id
	`, email, hash).Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", userID, email, password)

	var accountID int64
	err = db.QueryRow(`SELECT id FROM accounts WHERE user_id = $1 ORDER BY id LIMIT 1`, userID).Scan(&accountID)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`
			INSERT INTO accounts (user_id, currency, balance)
			VALUES ($1, 'USD', 0)
			RETURNING id
		`, userID).Scan(&accountID)
	}
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	fmt.Printf("seeded account: id=%d user_id=%d currency=USD\n", accountID, userID)
}
