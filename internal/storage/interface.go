package storage

import (
	"context"

	"github.com/subhajit/appointment-booking/internal/model"
)

// DoctorRepository persists the doctor directory
type DoctorRepository interface {
	// ListDoctors returns every doctor ordered by ID
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	GetDoctor(ctx context.Context, id model.DoctorID) (*model.Doctor, error)

	// CreateDoctor assigns a fresh ID to doctor and stores it
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error

	// UpdateDoctor replaces an existing record; model.ErrDoctorNotFound if there is none
	UpdateDoctor(ctx context.Context, doctor *model.Doctor) error
	DeleteDoctor(ctx context.Context, id model.DoctorID) error
}
