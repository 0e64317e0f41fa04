package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/subhajit/appointment-booking/internal/model"
	"github.com/subhajit/appointment-booking/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	doctors map[model.DoctorID]model.Doctor
	lastID  model.DoctorID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		doctors: make(map[model.DoctorID]model.Doctor),
	}
}

// Ensure Storage implements the interface
var _ storage.DoctorRepository = (*Storage)(nil)

// Records are stored by value; callers never share memory with the map.

func (s *Storage) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doctors := make([]*model.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		doctors = append(doctors, &d)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].ID < doctors[j].ID })
	return doctors, nil
}

func (s *Storage) GetDoctor(ctx context.Context, id model.DoctorID) (*model.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil, model.ErrDoctorNotFound
	}
	return &d, nil
}

func (s *Storage) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID++
	doctor.ID = s.lastID
	s.doctors[doctor.ID] = *doctor
	return nil
}

func (s *Storage) UpdateDoctor(ctx context.Context, doctor *model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[doctor.ID]; !ok {
		return model.ErrDoctorNotFound
	}
	s.doctors[doctor.ID] = *doctor
	return nil
}

func (s *Storage) DeleteDoctor(ctx context.Context, id model.DoctorID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[id]; !ok {
		return model.ErrDoctorNotFound
	}
	delete(s.doctors, id)
	return nil
}
