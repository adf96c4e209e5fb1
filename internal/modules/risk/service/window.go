package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// InWindow — попадает ли момент в торговое окно "HH:MM".."HH:MM" в зоне tz.
// Локация и границы пересчитываются на каждый вызов, ничего не кэшируем:
// переход DST не должен ловиться только после рестарта.
func InWindow(now time.Time, start, end, tz string) (bool, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return false, fmt.Errorf("load tz %q: %w", tz, err)
	}
	local := now.In(loc)

	sh, sm, err := parseHHMM(start)
	if err != nil {
		return false, err
	}
	eh, em, err := parseHHMM(end)
	if err != nil {
		return false, err
	}

	cur := local.Hour()*60 + local.Minute()
	from := sh*60 + sm
	to := eh*60 + em

	return cur >= from && cur <= to, nil
}

// SessionDate — торговая дата в зоне окна, ключ дневного сброса.
func SessionDate(now time.Time, tz string) string {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return now.In(loc).Format("2006-01-02")
}

func parseHHMM(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("bad time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return h, m, nil
}
