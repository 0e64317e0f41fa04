package memory

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/subhajit/appointment-booking/internal/storage"
	"github.com/subhajit/appointment-booking/internal/storage/storagetest"
)

func TestDoctorRepository(t *testing.T) {
	suite.Run(t, &storagetest.DoctorRepositorySuite{
		NewRepository: func() storage.DoctorRepository { return New() },
	})
}
