package hours

import (
	"strconv"
	"strings"
	"time"

	"github.com/cardapiolabs/cardapio/internal/models"
)

// Status is the open/closed indicator shown in the storefront header.
type Status struct {
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
	Open   bool   `json:"open"`
}

// Evaluator answers "are we open right now" against the weekly schedule,
// resolved in the configured timezone. Schedules spanning midnight are not
// supported; a closing time past midnight needs two rows.
type Evaluator struct {
	schedule models.WeekSchedule
	location *time.Location
	now      func() time.Time
}

func NewEvaluator(schedule models.WeekSchedule, location *time.Location) *Evaluator {
	return &Evaluator{
		schedule: schedule,
		location: location,
		now:      time.Now,
	}
}

// Evaluate computes the current status. The open interval is half-open: a
// wall clock exactly at closing time counts as closed.
func (e *Evaluator) Evaluate() Status {
	now := e.now().In(e.location)
	today, ok := e.schedule[int(now.Weekday())]
	if !ok || !today.OpenToday() {
		return Status{Label: models.HoursStatusClosedToday}
	}

	current := now.Hour()*60 + now.Minute()
	opensAt := parseMinutes(today.Open)
	closesAt := parseMinutes(today.Close)

	if current >= opensAt && current < closesAt {
		return Status{
			Label:  models.HoursStatusOpen,
			Detail: "até " + today.Close,
			Open:   true,
		}
	}
	return Status{
		Label:  models.HoursStatusClosed,
		Detail: "abre às " + today.Open,
	}
}

// parseMinutes converts "HH:MM" to minutes since midnight. Malformed values
// resolve to zero.
func parseMinutes(value string) int {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return h*60 + m
}
