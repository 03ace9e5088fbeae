package get_available_slots

import (
	"sort"
	"time"

	"github.com/strandly/booking-service/internal/domain"
)

// GenerateSlots разворачивает недельное расписание стилиста в конкретные
// бронируемые слоты на daysForward календарных дней вперёд, начиная с даты now.
//
// Чистая функция: результат детерминирован по входам и now, никакого I/O.
// Часовой пояс берётся из now.Location().
//
// Правила генерации:
//   - курсор идёт от начала блока с фиксированным шагом SlotScanStrideMinutes
//     (30 минут), независимо от длительности услуги — поэтому времена начала
//     выровнены по сетке от начала блока, а не по абсолютным границам часа;
//   - слот валиден, пока cursor + длительность услуги <= конец блока;
//   - слоты, начинающиеся не строго позже now, молча отбрасываются
//     (так обеспечивается "нет слотов в прошлом");
//   - блоки с start >= end или с нераспознаваемым временем дают ноль слотов,
//     это не ошибка;
//   - блоки одного дня обрабатываются в порядке хранения и независимо друг
//     от друга, пересечения между блоками допустимы.
func GenerateSlots(
	availability *domain.WeeklyAvailability,
	serviceDurationMinutes int,
	daysForward int,
	now time.Time,
) []domain.BookableSlot {
	if serviceDurationMinutes <= 0 {
		serviceDurationMinutes = domain.DefaultServiceDurationMinutes
	}

	duration := time.Duration(serviceDurationMinutes) * time.Minute
	stride := time.Duration(domain.SlotScanStrideMinutes) * time.Minute

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slots := make([]domain.BookableSlot, 0)

	for i := 0; i < daysForward; i++ {
		date := today.AddDate(0, 0, i)

		for _, block := range availability.BlocksFor(domain.WeekdayOf(date)) {
			blockStart, err := block.Start.At(date)
			if err != nil {
				continue // мусорное время в блоке — ноль слотов, не ошибка
			}
			blockEnd, err := block.End.At(date)
			if err != nil {
				continue
			}

			for cursor := blockStart; !cursor.Add(duration).After(blockEnd); cursor = cursor.Add(stride) {
				if !cursor.After(now) {
					continue
				}
				slots = append(slots, domain.BookableSlot{
					StartAt: cursor,
					EndAt:   cursor.Add(duration),
					Label:   domain.SlotLabel(cursor),
				})
			}
		}
	}

	return slots
}

// GroupSlotsByDate группирует слоты по локальной календарной дате начала.
// Даты в результате отсортированы по возрастанию, порядок слотов внутри
// даты сохраняется в порядке генерации
func GroupSlotsByDate(slots []domain.BookableSlot) []domain.SlotGroup {
	byDate := make(map[string][]domain.BookableSlot)
	for _, slot := range slots {
		key := slot.DateKey()
		byDate[key] = append(byDate[key], slot)
	}

	keys := make([]string, 0, len(byDate))
	for key := range byDate {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]domain.SlotGroup, 0, len(keys))
	for _, key := range keys {
		groups = append(groups, domain.SlotGroup{
			Date:  key,
			Slots: byDate[key],
		})
	}

	return groups
}
