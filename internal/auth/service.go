package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/worktrack/worktrack/internal/database"
	"github.com/worktrack/worktrack/internal/team"
)

// ErrInvalidCredentials is returned when the username is unknown or the password does not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// demoManagers are created by BootstrapManagers on an empty database.
var demoManagers = []struct {
	username string
	teamName string
}{
	{"admin", "team1"},
	{"admin2", "team2"},
}

const demoPassword = "admin"

// Service provides authentication operations.
type Service struct {
	userRepo   UserRepository
	teamRepo   team.Repository
	tx         database.Transactor
	bcryptCost int

	// dummyHash is compared against when the user does not exist so both
	// failure paths take roughly the same time.
	dummyHash string
}

// NewService creates a new auth Service.
func NewService(userRepo UserRepository, teamRepo team.Repository, tx database.Transactor, bcryptCost int) *Service {
	dummy, err := HashPassword("worktrack-dummy-password", bcryptCost)
	if err != nil {
		slog.Warn("failed to prepare dummy password hash", "error", err)
	}
	return &Service{
		userRepo:   userRepo,
		teamRepo:   teamRepo,
		tx:         tx,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// Verify checks a username/password pair and returns the manager identity on success.
func (s *Service) Verify(ctx context.Context, username, password string) (*Identity, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			CheckPassword(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if !CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &Identity{UserID: u.ID, Username: u.Username}, nil
}

// Resolve loads the identity for a user id carried by a session. A user deleted since the
// session was issued yields ErrUserNotFound.
func (s *Service) Resolve(ctx context.Context, userID int64) (*Identity, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Identity{UserID: u.ID, Username: u.Username}, nil
}

// HashPassword hashes plain with the service's configured bcrypt cost.
func (s *Service) HashPassword(plain string) (string, error) {
	return HashPassword(plain, s.bcryptCost)
}

// BootstrapManagers creates the demo managers and their teams if the users table is empty.
// It returns the number of managers created.
func (s *Service) BootstrapManagers(ctx context.Context) (int, error) {
	count, err := s.userRepo.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}

	if count > 0 {
		return 0, nil
	}

	hash, err := s.HashPassword(demoPassword)
	if err != nil {
		return 0, fmt.Errorf("hashing demo password: %w", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, m := range demoManagers {
			u := &User{Username: m.username, PasswordHash: hash}
			if err := s.userRepo.Create(ctx, u); err != nil {
				return fmt.Errorf("creating manager %s: %w", m.username, err)
			}
			if err := s.teamRepo.Create(ctx, &team.Team{Name: m.teamName, ManagerID: u.ID}); err != nil {
				return fmt.Errorf("creating team %s: %w", m.teamName, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, m := range demoManagers {
		slog.Info("demo manager created", "username", m.username, "team", m.teamName)
	}

	return len(demoManagers), nil
}
