package formatting

import (
	"fmt"
	"strings"
	"time"
)

// InputLayout формат ввода даты и времени в диалогах
const InputLayout = "02.01.2006 15:04"

func FormatDateTime(t time.Time) string {
	return t.Format(InputLayout)
}

// FormatSlotRange форматирует интервал слота. Если слот укладывается в один день,
// дата окончания не повторяется: "02.03.2025 09:00-10:30".
func FormatSlotRange(start, end time.Time) string {
	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s-%s", start.Format(InputLayout), end.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", start.Format(InputLayout), end.Format(InputLayout))
}

// ParseDateTime разбирает ввод пользователя в его часовом поясе
func ParseDateTime(input string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(InputLayout, strings.TrimSpace(input), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s: %w", InputLayout, err)
	}
	return t, nil
}

// FormatDuration форматирует длительность в часах и минутах
func FormatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%d мин", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d ч", hours)
	}
	return fmt.Sprintf("%d ч %d мин", hours, mins)
}
