package team

import (
	"context"
	"errors"
)

// ErrTeamNotFound is returned when a team record is not found.
var ErrTeamNotFound = errors.New("team not found")

// ErrDuplicateTeamName is returned when a team with the same name already exists.
var ErrDuplicateTeamName = errors.New("team name already exists")

// ErrManagerHasTeam is returned when the manager already owns a team.
var ErrManagerHasTeam = errors.New("manager already owns a team")

// Repository provides operations on the team table.
type Repository interface {
	Create(ctx context.Context, team *Team) error
	GetByManager(ctx context.Context, managerID int64) (*Team, error)
}
