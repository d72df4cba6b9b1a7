package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/eakgun/sims-backend/internal/app/models"
	appRepos "github.com/eakgun/sims-backend/internal/app/repositories"
	"github.com/eakgun/sims-backend/internal/pkg/apperrors"
	"github.com/eakgun/sims-backend/internal/pkg/auth"
)

// Default admin credential created on first startup so the system is usable
// before any other account exists.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// CreateDefaultData provisions the default admin credential if it does not
// exist yet. Safe to run on every startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, defaultAdminUsername)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Msg("Default admin already present, skipping seed")
		return nil
	}

	hash, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Username:     defaultAdminUsername,
		PasswordHash: hash,
		Role:         appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// A concurrent instance may have seeded first; that is fine.
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Default admin credential created")
	return nil
}
