package db

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the initial Admin account when the users table is
// empty. adminEmail/adminPassword come from configuration; when the
// password is empty, seeding is skipped.
func SeedAdmin(db *sql.DB, adminEmail, adminPassword string) error {
	if adminPassword == "" {
		return nil
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("error counting users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing admin password: %w", err)
	}

	_, err = db.Exec(
		`INSERT INTO users (id, name, email, role, password_hash) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), "Administrator", adminEmail, "Admin", string(hash),
	)
	if err != nil {
		return fmt.Errorf("error seeding admin user: %w", err)
	}

	return nil
}
