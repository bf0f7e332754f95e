package service

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

// trimmed 去空白；空串视为未提供
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", invalid(field, "is required")
	}
	return v, nil
}

// parseInstant RFC 3339 时间，统一转成 UTC 存储
func parseInstant(field string, value *string) (*time.Time, error) {
	v := trimmed(value)
	if v == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *v)
	if err != nil {
		return nil, invalid(field, "must be an RFC 3339 timestamp")
	}
	t = t.UTC()
	return &t, nil
}

// parseDay YYYY-MM-DD 日历日（不带时区）
func parseDay(field string, value *string) (*time.Time, error) {
	v := trimmed(value)
	if v == nil {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, *v, time.UTC)
	if err != nil {
		return nil, invalid(field, "must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
