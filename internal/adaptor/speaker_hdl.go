package adaptor

import (
	"net/http"
	"strings"

	"speaker-booking/internal/dto/request"
	"speaker-booking/internal/usecase"
	"speaker-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SpeakerHandler struct {
	service usecase.SpeakerService
	slots   usecase.SlotService
	log     *zap.Logger
}

func NewSpeakerHandler(service usecase.SpeakerService, slots usecase.SlotService, log *zap.Logger) *SpeakerHandler {
	return &SpeakerHandler{
		service: service,
		slots:   slots,
		log:     log.With(zap.String("handler", "speaker")),
	}
}

// ListSpeakers handles GET /api/speakers (public)
func (h *SpeakerHandler) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ListSpeakersRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Search: query.Get("search"),
	}

	speakers, err := h.service.ListSpeakers(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list speakers")
		return
	}

	utils.ResponseSuccess(w, "success", speakers)
}

// GetSpeakerByID handles GET /api/speakers/{id} (public)
func (h *SpeakerHandler) GetSpeakerByID(w http.ResponseWriter, r *http.Request) {
	speakerID := chi.URLParam(r, "id")
	if speakerID == "" {
		utils.ResponseBadRequest(w, "Speaker ID is required", nil)
		return
	}

	speaker, err := h.service.GetSpeakerByID(r.Context(), speakerID)
	if err != nil {
		h.handleServiceError(w, err, "get speaker by ID")
		return
	}

	utils.ResponseSuccess(w, "success", speaker)
}

// GetAvailability handles GET /api/speakers/{id}/slots?date=YYYY-MM-DD (public)
func (h *SpeakerHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	speakerID := chi.URLParam(r, "id")
	if speakerID == "" {
		utils.ResponseBadRequest(w, "Speaker ID is required", nil)
		return
	}

	req := request.AvailabilityRequest{
		Date: r.URL.Query().Get("date"),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	availability, err := h.slots.GetAvailability(r.Context(), speakerID, req.Date)
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// handleServiceError handles errors for speaker operations
func (h *SpeakerHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
