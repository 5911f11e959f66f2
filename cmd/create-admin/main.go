package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/stemsi/course-marketplace/internal/config"
	"github.com/stemsi/course-marketplace/internal/database"
	"github.com/stemsi/course-marketplace/internal/logger"
	"github.com/stemsi/course-marketplace/internal/model"
	"github.com/stemsi/course-marketplace/internal/repository"
	"github.com/stemsi/course-marketplace/internal/service"
	"github.com/stemsi/course-marketplace/internal/validator"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	adminRepo := repository.NewAdminRepository(pool)
	adminAccounts := service.NewAccountService(model.PrincipalAdmin, adminRepo, service.NewAuthService(cfg), log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Admin ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Newline after password input
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}

	req := model.SignupRequest{
		Name:     name,
		Email:    email,
		Password: string(bytePassword),
	}

	// Same rules as POST /api/v1/admin/signup.
	if fields := validator.Struct(req); fields != nil {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("Error: %s\n", fields[k])
		}
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	id, err := adminAccounts.Signup(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateEmail) {
			fmt.Println("Error: User exists already with this email")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %s\n", name, email, id)
}
