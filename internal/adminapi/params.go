package adminapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// paramError reports a malformed query parameter.
type paramError struct {
	name  string
	value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid value %q for %s", e.value, e.name)
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, &paramError{name: name, value: v}
	}
	return &d, nil
}

func queryInt(c echo.Context, name string) (*int, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return nil, &paramError{name: name, value: v}
	}
	return &i, nil
}

func queryID(c echo.Context, name string) (*int64, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, &paramError{name: name, value: v}
	}
	return &id, nil
}

// queryTime parses a date or datetime in the local zone. With endOfDay a bare
// date means the last instant of that day, so created_at_lte=2024-05-01
// includes records created during May 1st.
func queryTime(c echo.Context, name string, endOfDay bool) (*time.Time, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	t, err := dateparse.ParseIn(v, time.Local)
	if err != nil {
		return nil, &paramError{name: name, value: v}
	}
	if endOfDay && isDateOnly(v, t) {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}

func isDateOnly(raw string, t time.Time) bool {
	if strings.ContainsAny(raw, ":T") {
		return false
	}
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// flexID accepts an id as a JSON number or a JSON string, since entity ids are
// rendered as strings to survive JavaScript number precision.
type flexID int64

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	*f = flexID(id)
	return nil
}

func toInt64s(ids []flexID) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
