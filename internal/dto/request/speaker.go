package request

type ListSpeakersRequest struct {
	PaginatedRequest
	Search string `json:"search"`
}

type AvailabilityRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}
