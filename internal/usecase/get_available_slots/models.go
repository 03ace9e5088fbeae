package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/strandly/booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	StylistID uuid.UUID  // ID стилиста
	ServiceID *uuid.UUID // ID услуги; nil — длительность по умолчанию (60 минут)
	// DaysForward горизонт в днях; 0 — дефолт (14 дней)
	DaysForward int
}

// Response модель ответа со сгенерированными слотами
type Response struct {
	StylistID       uuid.UUID
	ServiceID       *uuid.UUID
	DurationMinutes int // фактическая длительность услуги, по которой считались слоты
	DaysForward     int

	// Slots все слоты в порядке генерации (по дням, внутри дня по блокам и курсору)
	Slots []domain.BookableSlot

	// Groups те же слоты, сгруппированные по календарной дате для отображения
	Groups []domain.SlotGroup
}
