// Command token mints a bearer token for local development.
//
//	go run ./cmd/token -user 3f2b8c1e-9a4d-4c6b-8e21-0a1b2c3d4e5f -role admin
package main

import (
	"flag"
	"fmt"
	"os"

	"educk/internal/auth"
	"educk/internal/config"
	"educk/internal/model"

	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	userFlag := flag.String("user", "", "user id (uuid)")
	roleFlag := flag.String("role", model.RoleStudent, "role: student, teacher or admin")
	flag.Parse()

	userID, err := uuid.Parse(*userFlag)
	if err != nil {
		return fmt.Errorf("invalid -user: %w", err)
	}

	switch *roleFlag {
	case model.RoleStudent, model.RoleTeacher, model.RoleAdmin:
	default:
		return fmt.Errorf("invalid -role: %s", *roleFlag)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	token, err := auth.NewManager(cfg.Auth).Sign(model.Principal{UserID: userID, Role: *roleFlag})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
