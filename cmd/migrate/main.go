package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"mindcare-be/internal/config"
	"mindcare-be/internal/entity"
	"mindcare-be/internal/model"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/repository/unitofwork"
	"mindcare-be/pkg/database"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	seedEmail string
	seedName  string
	tokenTTL  time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the mindcare database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.Flags().StringVar(&seedEmail, "seed-user", "", "create a user with this email and print a bearer token for it")
	rootCmd.Flags().StringVar(&seedName, "seed-name", "Dev User", "full name of the seeded user")
	rootCmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "lifetime of the printed token")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		return fmt.Errorf("DB_CONNECTION_STRING is not set")
	}

	db, err := database.Open(cfg.Database.Connection, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := migrate(db); err != nil {
		return err
	}
	log.Println("Success: database migration completed")

	if seedEmail == "" {
		return nil
	}
	return seedUser(cmd.Context(), db, cfg.App.JwtSecret)
}

func migrate(db *gorm.DB) error {
	log.Println("Step 1: Setting up extensions...")
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.DiaryEntry{},
		&model.DiaryAnalysis{},
		&model.ConversationSignal{},
		&model.CheckIn{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func seedUser(ctx context.Context, db *gorm.DB, secret string) error {
	if secret == "" {
		return fmt.Errorf("JWT_SECRET is required to issue a token")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	user := &entity.User{
		Id:       uuid.New(),
		Email:    strings.ToLower(strings.TrimSpace(seedEmail)),
		FullName: seedName,
	}
	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx)
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	token, err := serverutils.IssueToken(secret, user.Id, tokenTTL)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Printf("user_id: %s\ntoken:   %s\n", user.Id, token)
	return nil
}
