// Package timedec конвертирует время суток между строкой "HH:MM",
// десятичным представлением в часах (9.5 == "09:30") и 12-часовой меткой.
// Десятичное представление используется редактором расписания (range slider).
package timedec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// fallbackDecimal значение по умолчанию при нераспознаваемой строке времени
// Парсер намеренно не возвращает ошибку: редактор расписания всегда отдаёт
// валидные строки, а на мусорном входе страница не должна падать
const fallbackDecimal = 9.0

// TimeToDecimal конвертирует "HH:MM" в десятичные часы: "09:30" -> 9.5
// На нераспознаваемом входе возвращает fallbackDecimal (9.0)
func TimeToDecimal(s string) float64 {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return fallbackDecimal
	}

	hours, err1 := numericComponent(parts[0])
	minutes, err2 := numericComponent(parts[1])
	if err1 != nil || err2 != nil {
		return fallbackDecimal
	}

	return float64(hours) + float64(minutes)/60
}

// numericComponent парсит компонент времени; пустой компонент считается нулём,
// поэтому ":30" даёт 0.5, а "9:" — 9.0. Fallback срабатывает только на
// действительно нечисловом вводе
func numericComponent(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// DecimalToTime конвертирует десятичные часы в "HH:MM": 9.5 -> "09:30"
// Значения не ограничиваются диапазоном [0, 24] — за это отвечает вызывающий код
func DecimalToTime(d float64) string {
	hours := int(math.Floor(d))
	minutes := int(math.Round((d - float64(hours)) * 60))
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// DecimalToLabel форматирует десятичные часы в 12-часовую метку: 13.5 -> "1:30 PM"
// Часы 0 и 12 отображаются как 12 (полночь и полдень)
func DecimalToLabel(d float64) string {
	hours := int(math.Floor(d))
	minutes := int(math.Round((d - float64(hours)) * 60))

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}

	h := hours % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%d:%02d %s", h, minutes, period)
}
