package check_availability

import (
	"time"

	"github.com/m04kA/SMC-CourtService/pkg/types"
)

// Request модель запроса проверки доступности диапазона
type Request struct {
	CourtID   int64            // ID корта
	Date      time.Time        // Дата (компонент времени игнорируется)
	StartTime types.TimeString // Время начала
	EndTime   types.TimeString // Время конца, не включается в диапазон

	// ExcludeBookingID бронь, слоты которой не считаются конфликтом
	// Используется при реактивации: бронь не конфликтует сама с собой
	ExcludeBookingID *int64
}

// Response модель ответа проверки доступности
type Response struct {
	Available bool     // true, если все запрошенные слоты свободны
	SlotCount int      // Количество слотов в запрошенном диапазоне
	Conflicts []string // Занятые слоты в формате "HH:MM", отсортированы
}
