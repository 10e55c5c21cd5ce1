package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"catering-shop/models"
)

const dateLayout = "2006-01-02"

var (
	ErrDateNotBookable = errors.New("date is not available for booking")
	ErrNoDateSelected  = errors.New("no date selected")
	ErrInvalidSlot     = errors.New("time is outside the bookable window")
)

// BlockedDateSource supplies the dates already at capacity. Implemented by
// repositories.AvailabilityRepository.
type BlockedDateSource interface {
	BlockedDates(ctx context.Context) (map[string]struct{}, error)
}

// BookingPolicy is configuration, not hardcoded rules: lead time, blocked
// weekdays and holidays vary per storefront.
type BookingPolicy struct {
	LeadTimeDays    int
	BlockedWeekdays []time.Weekday
	HolidayDates    []string
	SlotStartHour   int
	SlotEndHour     int
}

// BookingService owns the month grid, the hourly slots and one transient
// BookingSelection per session.
type BookingService struct {
	source BlockedDateSource
	policy BookingPolicy
	now    func() time.Time

	holidays        map[string]struct{}
	blockedWeekdays map[time.Weekday]struct{}

	mu      sync.RWMutex
	blocked map[string]struct{}

	selMu      sync.Mutex
	selections map[string]models.BookingSelection
}

func NewBookingService(source BlockedDateSource, policy BookingPolicy) *BookingService {
	holidays := map[string]struct{}{}
	for _, d := range policy.HolidayDates {
		holidays[d] = struct{}{}
	}
	weekdays := map[time.Weekday]struct{}{}
	for _, w := range policy.BlockedWeekdays {
		weekdays[w] = struct{}{}
	}

	return &BookingService{
		source:          source,
		policy:          policy,
		now:             time.Now,
		holidays:        holidays,
		blockedWeekdays: weekdays,
		blocked:         map[string]struct{}{},
		selections:      map[string]models.BookingSelection{},
	}
}

// RefreshAvailability reloads the full-date snapshot the grid renders from.
// Failure is fail-open: availability display falls back to an empty blocked
// set because the hard check happens again at submission time.
func (s *BookingService) RefreshAvailability(ctx context.Context) {
	blocked, err := s.source.BlockedDates(ctx)
	if err != nil {
		log.Printf("Availability fetch failed, showing all dates as open: %v", err)
		blocked = map[string]struct{}{}
	}

	s.mu.Lock()
	s.blocked = blocked
	s.mu.Unlock()
}

// MonthGrid renders one month of day cells, eligibility recomputed against
// "now" at render time. It uses the current availability snapshot and does
// not refetch.
func (s *BookingService) MonthGrid(year int, month time.Month) models.MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	grid := models.MonthGrid{
		Year:         year,
		Month:        int(month),
		FirstWeekday: int(first.Weekday()),
		Days:         make([]models.DayCell, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		reason := s.disqualify(date)
		grid.Days = append(grid.Days, models.DayCell{
			Date:       date.Format(dateLayout),
			Day:        day,
			Weekday:    date.Weekday().String(),
			Selectable: reason == "",
			Reason:     reason,
		})
	}
	return grid
}

// disqualify returns the first rule that blocks the date, or "" when bookable.
func (s *BookingService) disqualify(date time.Time) string {
	today := s.today()

	if date.Before(today) {
		return models.ReasonPast
	}
	if date.Before(today.AddDate(0, 0, s.policy.LeadTimeDays)) {
		return models.ReasonLeadTime
	}
	if _, ok := s.blockedWeekdays[date.Weekday()]; ok {
		return models.ReasonWeekdayBlocked
	}

	key := date.Format(dateLayout)
	if _, ok := s.holidays[key]; ok {
		return models.ReasonHoliday
	}

	s.mu.RLock()
	_, full := s.blocked[key]
	s.mu.RUnlock()
	if full {
		return models.ReasonFull
	}
	return ""
}

func (s *BookingService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// Slots is the fixed hourly sequence spanning the configured window,
// inclusive on both ends.
func (s *BookingService) Slots() []models.Slot {
	slots := []models.Slot{}
	for hour := s.policy.SlotStartHour; hour <= s.policy.SlotEndHour; hour++ {
		displayHour := hour
		if hour > 12 {
			displayHour = hour - 12
		}
		ampm := "AM"
		if hour >= 12 {
			ampm = "PM"
		}
		slots = append(slots, models.Slot{
			Value: fmt.Sprintf("%02d:00", hour),
			Label: fmt.Sprintf("%d:00 %s", displayHour, ampm),
		})
	}
	return slots
}

// SelectDate moves the session to DateSelected: any previously chosen time is
// cleared, so checkout stays hidden until a time is re-picked.
func (s *BookingService) SelectDate(sessionID, date string) ([]models.Slot, error) {
	parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if reason := s.disqualify(parsed); reason != "" {
		return nil, fmt.Errorf("%w (%s)", ErrDateNotBookable, reason)
	}

	s.selMu.Lock()
	s.selections[sessionID] = models.BookingSelection{Date: date}
	s.selMu.Unlock()

	return s.Slots(), nil
}

// SelectTime completes the selection. The slot must be one of the rendered
// hourly buttons; it is matched by value or display label.
func (s *BookingService) SelectTime(sessionID, slot string) (models.BookingSelection, error) {
	var label string
	for _, candidate := range s.Slots() {
		if candidate.Value == slot || candidate.Label == slot {
			label = candidate.Label
			break
		}
	}
	if label == "" {
		return models.BookingSelection{}, ErrInvalidSlot
	}

	s.selMu.Lock()
	defer s.selMu.Unlock()

	sel, ok := s.selections[sessionID]
	if !ok || sel.Date == "" {
		return models.BookingSelection{}, ErrNoDateSelected
	}

	sel.Time = label
	s.selections[sessionID] = sel
	return sel, nil
}

// Selection returns the session's current selection by value; the checkout
// gate receives it at invocation rather than reading ambient state.
func (s *BookingService) Selection(sessionID string) (models.BookingSelection, bool) {
	s.selMu.Lock()
	defer s.selMu.Unlock()

	sel, ok := s.selections[sessionID]
	return sel, ok
}

// ClearSelection drops the session's selection, both after a successful order
// and when its date fills before submission.
func (s *BookingService) ClearSelection(sessionID string) {
	s.selMu.Lock()
	delete(s.selections, sessionID)
	s.selMu.Unlock()
}
