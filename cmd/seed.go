package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adminboard/internal"
	"github.com/adminboard/internal/feature"
	featurePostgres "github.com/adminboard/internal/feature/postgres"
	"github.com/adminboard/internal/user"
	userPostgres "github.com/adminboard/internal/user/postgres"
	"github.com/adminboard/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	seedAdminEmail    string
	seedAdminPassword string
)

func init() {
	seedCmd.Flags().StringVar(&seedAdminEmail, "admin-email", "admin@adminboard.local", "email of the bootstrap super-admin")
	seedCmd.Flags().StringVar(&seedAdminPassword, "admin-password", "ChangeMe123!", "initial password of the bootstrap super-admin")
}

// seedCmd bootstraps the minimum data a fresh deployment needs: one
// super-admin account and the default feature flags. Re-running is a no-op.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with bootstrap data",
	Long:  `Create the bootstrap super-admin account and default feature flags. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		ctx := context.Background()
		userRepo := userPostgres.NewUserRepository(gormDB)

		email := user.NormalizeEmail(seedAdminEmail)
		existing, err := userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil && existing != nil:
			fmt.Println("super-admin already exists:", email)
		default:
			hash, err := user.HashPassword(seedAdminPassword, cfg.Security.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash admin password: %v", err)
			}
			now := time.Now().UTC()
			admin := &user.User{
				ID:             internal.NewID("user_"),
				FirstName:      "Admin",
				LastName:       "Adminboard",
				Email:          email,
				HashedPassword: hash,
				SuperAdmin:     true,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := userRepo.Create(ctx, admin); err != nil {
				log.Fatalf("failed to insert super-admin: %v", err)
			}
			fmt.Println("Seeded super-admin:", email)
		}

		featureService := feature.NewService(featurePostgres.NewFeatureRepository(gormDB), logger.L())
		defaultFlags := []struct {
			Name   string
			Status feature.Status
		}{
			{"registration", feature.StatusOn},
			{"dark_mode", feature.StatusTesters},
			{"offline_cache", feature.StatusOff},
		}

		for _, f := range defaultFlags {
			if _, err := featureService.Ensure(ctx, f.Name, f.Status); err != nil {
				log.Fatalf("failed to seed feature %s: %v", f.Name, err)
			}
			fmt.Printf("Ensured feature flag: %s (%s)\n", f.Name, f.Status)
		}

		fmt.Println("Bootstrap data seeded successfully")
	},
}
