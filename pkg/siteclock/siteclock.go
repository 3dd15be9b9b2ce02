package siteclock

import (
	"fmt"
	"time"
)

// Clock источник текущего времени в таймзоне сайта
// Вся арифметика дедлайнов и cutoff обязана идти через него:
// таймзона процесса и таймзона площадки, как правило, не совпадают
type Clock interface {
	Now() time.Time
	Today() time.Time
	Location() *time.Location
}

// SiteClock реализация Clock поверх сконфигурированной таймзоны площадки
type SiteClock struct {
	loc *time.Location
}

// New создает SiteClock для указанной IANA таймзоны (например "Europe/Rome")
func New(timezone string) (*SiteClock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("siteclock: load timezone %q: %w", timezone, err)
	}
	return &SiteClock{loc: loc}, nil
}

// Now возвращает текущее время в таймзоне площадки
func (c *SiteClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today возвращает начало текущего дня в таймзоне площадки
func (c *SiteClock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// Location возвращает таймзону площадки
func (c *SiteClock) Location() *time.Location {
	return c.loc
}

// Fixed часы с фиксированным моментом времени для тестов
type Fixed struct {
	Time time.Time
}

// Now возвращает зафиксированный момент
func (f *Fixed) Now() time.Time {
	return f.Time
}

// Today возвращает начало дня зафиксированного момента
func (f *Fixed) Today() time.Time {
	return time.Date(f.Time.Year(), f.Time.Month(), f.Time.Day(), 0, 0, 0, 0, f.Time.Location())
}

// Location возвращает таймзону зафиксированного момента
func (f *Fixed) Location() *time.Location {
	return f.Time.Location()
}
