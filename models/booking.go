package models

// BookingSelection tracks the calendar state machine for one session:
// no date -> date chosen (Time empty) -> date and time chosen.
type BookingSelection struct {
	Date string `json:"date"`
	Time string `json:"time,omitempty"`
}

func (s BookingSelection) Complete() bool {
	return s.Date != "" && s.Time != ""
}

// DayCell is one day of the month grid. A non-selectable cell carries the
// first reason that disqualified it.
type DayCell struct {
	Date       string `json:"date"`
	Day        int    `json:"day"`
	Weekday    string `json:"weekday"`
	Selectable bool   `json:"selectable"`
	Reason     string `json:"reason,omitempty"`
}

// Day cell disqualification reasons.
const (
	ReasonPast           = "past"
	ReasonLeadTime       = "lead_time"
	ReasonWeekdayBlocked = "weekday_blocked"
	ReasonHoliday        = "holiday"
	ReasonFull           = "full"
)

type MonthGrid struct {
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	FirstWeekday int       `json:"first_weekday"`
	Days         []DayCell `json:"days"`
}

// Slot is one bookable hour. Value is the 24h form ("13:00"), Label the
// display form ("1:00 PM") that ends up in the order payload.
type Slot struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
