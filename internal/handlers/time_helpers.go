package handlers

import "time"

// Toda a API fala hora civil local: datas "2006-01-02", horários
// "15:04", sem offset. A location do processo é a da barbearia.

func parseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, time.Local)
}

func parseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		time.Local,
	)
}
