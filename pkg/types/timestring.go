package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString время в формате "HH:MM" (без даты и секунд)
// Используется для времени начала слотов и бронирований
type TimeString string

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("types: invalid time string format, expected HH:MM")
)

const timeLayout = "15:04"

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку "HH:MM" в TimeString
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return NewTimeString(t), nil
}

// String возвращает строковое представление "HH:MM"
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true, если время не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет корректность формата
func (ts TimeString) Validate() error {
	_, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// parse возвращает time.Time для внутренних вычислений
func (ts TimeString) parse() (time.Time, error) {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return t, nil
}

// IsBefore возвращает true, если ts строго раньше other
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err := ts.parse()
	if err != nil {
		return false
	}
	b, err := other.parse()
	if err != nil {
		return false
	}
	return a.Before(b)
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	a, err := ts.parse()
	if err != nil {
		return false
	}
	b, err := other.parse()
	if err != nil {
		return false
	}
	return a.After(b)
}

// AddMinutes возвращает новый TimeString, сдвинутый на minutes минут вперед
// Выход за границу суток считается ошибкой (слоты не пересекают полночь)
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	t, err := ts.parse()
	if err != nil {
		return "", err
	}
	shifted := t.Add(time.Duration(minutes) * time.Minute)
	if shifted.Day() != t.Day() {
		return "", fmt.Errorf("%w: %q + %dm crosses midnight", ErrInvalidTimeString, string(ts), minutes)
	}
	return NewTimeString(shifted), nil
}

// OnDate совмещает время с датой в указанной таймзоне
func (ts TimeString) OnDate(date time.Time, loc *time.Location) (time.Time, error) {
	t, err := ts.parse()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// Value реализует driver.Valuer для записи в БД
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Поддерживает string, []byte и time.Time (колонки типа TIME)
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		return ts.scanString(v)
	case []byte:
		return ts.scanString(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (ts *TimeString) scanString(s string) error {
	// Postgres TIME приходит как "HH:MM:SS" - обрезаем секунды
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
