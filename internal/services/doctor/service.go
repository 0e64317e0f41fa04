package doctor

import (
	"context"
	"log/slog"

	"github.com/subhajit/appointment-booking/internal/model"
	"github.com/subhajit/appointment-booking/internal/storage"
)

// Service manages the doctor directory
type Service struct {
	repo   storage.DoctorRepository
	logger *slog.Logger
}

// New creates a new doctor Service
func New(repo storage.DoctorRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns every doctor ordered by ID
func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

// Get returns one doctor
func (s *Service) Get(ctx context.Context, id model.DoctorID) (*model.Doctor, error) {
	return s.repo.GetDoctor(ctx, id)
}

// Create validates and stores a new doctor, returning it with its assigned ID
func (s *Service) Create(ctx context.Context, d model.Doctor) (*model.Doctor, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	d.ID = 0
	if err := s.repo.CreateDoctor(ctx, &d); err != nil {
		return nil, err
	}

	s.logger.Info("doctor created", slog.Int64("doctor_id", int64(d.ID)))
	return &d, nil
}

// Update replaces the doctor with the given ID. Any ID in d is ignored.
func (s *Service) Update(ctx context.Context, id model.DoctorID, d model.Doctor) (*model.Doctor, error) {
	d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}

	d.ID = id
	if err := s.repo.UpdateDoctor(ctx, &d); err != nil {
		return nil, err
	}

	s.logger.Info("doctor updated", slog.Int64("doctor_id", int64(id)))
	return &d, nil
}

// Delete removes the doctor with the given ID
func (s *Service) Delete(ctx context.Context, id model.DoctorID) error {
	if err := s.repo.DeleteDoctor(ctx, id); err != nil {
		return err
	}

	s.logger.Info("doctor deleted", slog.Int64("doctor_id", int64(id)))
	return nil
}
