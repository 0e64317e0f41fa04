package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/subhajit/appointment-booking/internal/api/apierr"
	"github.com/subhajit/appointment-booking/internal/api/request"
	"github.com/subhajit/appointment-booking/internal/api/response"
	"github.com/subhajit/appointment-booking/internal/model"
	"github.com/subhajit/appointment-booking/internal/services/doctor"
)

// maxDoctorBody caps doctor create/update bodies
const maxDoctorBody = 1 << 16

// DoctorHandler handles the doctor directory endpoints
type DoctorHandler struct {
	doctorService *doctor.Service
	logger        *slog.Logger
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService *doctor.Service, logger *slog.Logger) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
		logger:        logger,
	}
}

// List handles GET /api/doctors
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorService.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DoctorsFromModel(doctors))
}

// Get handles GET /api/doctors/{id}
func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.doctorID(w, r)
	if !ok {
		return
	}

	d, err := h.doctorService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DoctorFromModel(d))
}

// Create handles POST /api/doctors
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	d, err := h.doctorService.Create(r.Context(), req.Doctor())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.DoctorFromModel(d))
}

// Update handles PUT /api/doctors/{id}
func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.doctorID(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	d, err := h.doctorService.Update(r.Context(), id, req.Doctor())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DoctorFromModel(d))
}

// Delete handles DELETE /api/doctors/{id}
func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.doctorID(w, r)
	if !ok {
		return
	}

	if err := h.doctorService.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *DoctorHandler) doctorID(w http.ResponseWriter, r *http.Request) (model.DoctorID, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		apierr.WriteJSONError(w, apierr.NewInvalidRequestError("Invalid doctor id"))
		return 0, false
	}
	return model.DoctorID(id), true
}

func (h *DoctorHandler) decode(w http.ResponseWriter, r *http.Request) (request.DoctorRequest, bool) {
	var req request.DoctorRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDoctorBody)).Decode(&req); err != nil {
		apierr.WriteJSONError(w, apierr.NewInvalidRequestError("Invalid request body"))
		return req, false
	}
	return req, true
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, err error) {
	if apierr.Status(err) >= http.StatusInternalServerError {
		h.logger.Error("doctor request failed", slog.String("error", err.Error()))
	}
	apierr.WriteJSONError(w, err)
}
