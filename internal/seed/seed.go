package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/eyobt/schoolhub/internal/app/models"
	"github.com/eyobt/schoolhub/internal/app/repositories"
	"github.com/eyobt/schoolhub/internal/config"
	"github.com/eyobt/schoolhub/internal/pkg/auth"
)

// CreateDefaultData seeds the default superuser account and a starter
// program when the database is empty. Seeding is idempotent: existing rows
// are left alone.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	programRepo := repositories.NewProgramRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default superuser --- //
	adminUsername := cfg.Seed.AdminUsername
	exists, err := userRepo.UsernameExists(ctx, adminUsername)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		password := cfg.Seed.AdminPassword
		if password == "" {
			lgr.Warn().Msg("No seed admin password configured, skipping admin creation")
		} else {
			hashedPassword, err := auth.HashPassword(password)
			if err != nil {
				lgr.Error().Err(err).Msg("Error hashing admin password")
				finalErr = errors.Join(finalErr, err)
			} else {
				admin := &models.User{
					Username:    adminUsername,
					Password:    hashedPassword,
					FirstName:   "System",
					LastName:    "Administrator",
					IsSuperuser: true,
				}
				if err := userRepo.Create(ctx, admin); err != nil {
					lgr.Error().Err(err).Msg("Error creating default admin account")
					finalErr = errors.Join(finalErr, err)
				} else {
					lgr.Info().Int64("adminID", admin.ID).Str("username", adminUsername).
						Msg("Default admin account created")
				}
			}
		}
	} else {
		lgr.Info().Msg("Admin account already exists, skipping creation")
	}

	// --- Starter program --- //
	programs, err := programRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing programs")
		finalErr = errors.Join(finalErr, err)
	} else if len(programs) == 0 {
		summary := "Default curriculum covering the general school program"
		general := &models.Program{Title: "General Education", Summary: &summary}
		if err := programRepo.Create(ctx, general); err != nil {
			lgr.Error().Err(err).Msg("Error creating starter program")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Int64("programID", general.ID).Msg("Starter program created")
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
