package response

import "github.com/subhajit/appointment-booking/internal/model"

// LoginSuccessful is the body returned by a successful login
const LoginSuccessful = "Login successful"

// Me is the response for the current-user endpoint
type Me struct {
	Username string `json:"username"`
}

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
}

// Doctor represents a doctor in API responses
type Doctor struct {
	ID            int64  `json:"id"`
	DoctorName    string `json:"doctorName"`
	Contact       string `json:"contact"`
	Address       string `json:"address"`
	Timing        string `json:"timing"`
	AvailableDays string `json:"availableDays"`
}

// DoctorFromModel converts a model.Doctor to a response Doctor
func DoctorFromModel(d *model.Doctor) Doctor {
	return Doctor{
		ID:            int64(d.ID),
		DoctorName:    d.DoctorName,
		Contact:       d.Contact,
		Address:       d.Address,
		Timing:        d.Timing,
		AvailableDays: d.AvailableDays,
	}
}

// DoctorsFromModel converts a list, never returning nil
func DoctorsFromModel(doctors []*model.Doctor) []Doctor {
	out := make([]Doctor, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, DoctorFromModel(d))
	}
	return out
}
