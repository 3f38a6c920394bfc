package check_availability

import (
	checkAvailability "github.com/m04kA/SMC-CourtService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available bool     `json:"available"`
	SlotCount int      `json:"slotCount"`
	Conflicts []string `json:"conflicts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available: resp.Available,
		SlotCount: resp.SlotCount,
		Conflicts: resp.Conflicts,
	}
}
