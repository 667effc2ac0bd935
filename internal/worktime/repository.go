package worktime

import (
	"context"
	"errors"
)

// ErrWorkTimeNotFound is returned when a work-time record is not found.
var ErrWorkTimeNotFound = errors.New("work time not found")

// Repository provides operations on the work_time table. It does not scope by manager;
// ownership is checked by the caller before any of these run.
type Repository interface {
	ListByEmployees(ctx context.Context, employeeIDs []int64) ([]WorkTime, error)
	GetByID(ctx context.Context, id int64) (*WorkTime, error)
	Create(ctx context.Context, wt *WorkTime) error
	Update(ctx context.Context, wt *WorkTime) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]WorkTime, error)
}
