package request

import "github.com/subhajit/appointment-booking/internal/model"

// DoctorRequest is the body for creating or replacing a doctor.
// Field names match the booking frontend's form.
type DoctorRequest struct {
	DoctorName    string `json:"doctorName"`
	Contact       string `json:"contact"`
	Address       string `json:"address"`
	Timing        string `json:"timing"`
	AvailableDays string `json:"availableDays"`
}

// Doctor converts the request into a model record without an ID
func (r DoctorRequest) Doctor() model.Doctor {
	return model.Doctor{
		DoctorName:    r.DoctorName,
		Contact:       r.Contact,
		Address:       r.Address,
		Timing:        r.Timing,
		AvailableDays: r.AvailableDays,
	}
}
