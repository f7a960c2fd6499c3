package request

type CreateBookingRequest struct {
	SpeakerID string `json:"speaker_id" validate:"required,uuid"`
	SlotID    string `json:"slot_id" validate:"required,uuid"`
}

// ListBookingsRequest carries the bookings-page filters. Status "all" (or
// empty) disables the status filter; search matches speaker name or date.
type ListBookingsRequest struct {
	Search string `json:"search"`
	Status string `json:"status" validate:"omitempty,oneof=all pending confirmed cancelled completed"`
}
