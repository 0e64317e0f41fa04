// Package storagetest holds behavior tests shared by every DoctorRepository backend.
package storagetest

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/subhajit/appointment-booking/internal/model"
	"github.com/subhajit/appointment-booking/internal/storage"
)

// DoctorRepositorySuite runs against the repository returned by NewRepository,
// which is called before each test.
type DoctorRepositorySuite struct {
	suite.Suite
	NewRepository func() storage.DoctorRepository

	repo storage.DoctorRepository
	ctx  context.Context
}

func (s *DoctorRepositorySuite) SetupTest() {
	s.repo = s.NewRepository()
	s.ctx = context.Background()
}

func newDoctor(name string) *model.Doctor {
	return &model.Doctor{
		DoctorName:    name,
		Contact:       "9830012345",
		Address:       "12 Park Street",
		Timing:        "10:00 - 14:00",
		AvailableDays: "Mon, Wed",
	}
}

func (s *DoctorRepositorySuite) TestCreateAssignsIncreasingIDs() {
	first := newDoctor("Dr. Sen")
	second := newDoctor("Dr. Roy")

	s.Require().NoError(s.repo.CreateDoctor(s.ctx, first))
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, second))

	s.Positive(int64(first.ID))
	s.Greater(second.ID, first.ID)
}

func (s *DoctorRepositorySuite) TestCreateAndGet() {
	d := newDoctor("Dr. Sen")
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, d))

	got, err := s.repo.GetDoctor(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(*d, *got)
}

func (s *DoctorRepositorySuite) TestGetNotFound() {
	_, err := s.repo.GetDoctor(s.ctx, 999)
	s.ErrorIs(err, model.ErrDoctorNotFound)
}

func (s *DoctorRepositorySuite) TestListOrderedByID() {
	for _, name := range []string{"Dr. A", "Dr. B", "Dr. C"} {
		s.Require().NoError(s.repo.CreateDoctor(s.ctx, newDoctor(name)))
	}

	doctors, err := s.repo.ListDoctors(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(doctors, 3)
	s.Equal("Dr. A", doctors[0].DoctorName)
	s.Equal("Dr. C", doctors[2].DoctorName)
	s.Less(doctors[0].ID, doctors[1].ID)
}

func (s *DoctorRepositorySuite) TestListEmpty() {
	doctors, err := s.repo.ListDoctors(s.ctx)
	s.Require().NoError(err)
	s.Empty(doctors)
}

func (s *DoctorRepositorySuite) TestUpdateReplacesRecord() {
	d := newDoctor("Dr. Sen")
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, d))

	d.Timing = "16:00 - 20:00"
	s.Require().NoError(s.repo.UpdateDoctor(s.ctx, d))

	got, err := s.repo.GetDoctor(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal("16:00 - 20:00", got.Timing)
}

func (s *DoctorRepositorySuite) TestUpdateMissingDoesNotCreate() {
	d := newDoctor("Dr. Ghost")
	d.ID = 42

	s.ErrorIs(s.repo.UpdateDoctor(s.ctx, d), model.ErrDoctorNotFound)

	doctors, err := s.repo.ListDoctors(s.ctx)
	s.Require().NoError(err)
	s.Empty(doctors)
}

func (s *DoctorRepositorySuite) TestReturnedRecordIsACopy() {
	d := newDoctor("Dr. Sen")
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, d))

	got, err := s.repo.GetDoctor(s.ctx, d.ID)
	s.Require().NoError(err)
	got.DoctorName = "changed"

	again, err := s.repo.GetDoctor(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal("Dr. Sen", again.DoctorName)
}

func (s *DoctorRepositorySuite) TestDelete() {
	d := newDoctor("Dr. Sen")
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, d))

	s.Require().NoError(s.repo.DeleteDoctor(s.ctx, d.ID))

	_, err := s.repo.GetDoctor(s.ctx, d.ID)
	s.ErrorIs(err, model.ErrDoctorNotFound)

	doctors, err := s.repo.ListDoctors(s.ctx)
	s.Require().NoError(err)
	s.Empty(doctors)
}

func (s *DoctorRepositorySuite) TestDeleteMissing() {
	s.ErrorIs(s.repo.DeleteDoctor(s.ctx, 7), model.ErrDoctorNotFound)
}

func (s *DoctorRepositorySuite) TestIDsNotReusedAfterDelete() {
	first := newDoctor("Dr. Sen")
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, first))
	s.Require().NoError(s.repo.DeleteDoctor(s.ctx, first.ID))

	second := newDoctor("Dr. Roy")
	s.Require().NoError(s.repo.CreateDoctor(s.ctx, second))
	s.Greater(second.ID, first.ID)
}
