package model

import (
	"github.com/sherpa-concierge-poc/server/internal/inventory"
)

// Step is the discrete stage of the guided dialog.
type Step string

const (
	StepBrowseStart           Step = "browse_start"
	StepBrowseBudget          Step = "browse_budget"
	StepBrowseType            Step = "browse_type"
	StepBrowseBrand           Step = "browse_brand"
	StepShowCars              Step = "show_cars"
	StepShowMoreCars          Step = "show_more_cars"
	StepCarSelectedOptions    Step = "car_selected_options"
	StepTestDriveDate         Step = "test_drive_date"
	StepTestDriveDay          Step = "test_drive_day"
	StepTestDriveTime         Step = "test_drive_time"
	StepTDName                Step = "td_name"
	StepTDPhone               Step = "td_phone"
	StepTDLicense             Step = "td_license"
	StepTDLocationMode        Step = "td_location_mode"
	StepTDHomeAddress         Step = "td_home_address"
	StepTDDropLocation        Step = "td_drop_location"
	StepTestDriveConfirmation Step = "test_drive_confirmation"
	StepBookingComplete       Step = "booking_complete"
	StepChangeCriteriaConfirm Step = "change_criteria_confirm"
)

var knownSteps = map[Step]struct{}{
	StepBrowseStart: {}, StepBrowseBudget: {}, StepBrowseType: {},
	StepBrowseBrand: {}, StepShowCars: {}, StepShowMoreCars: {},
	StepCarSelectedOptions: {}, StepTestDriveDate: {}, StepTestDriveDay: {},
	StepTestDriveTime: {}, StepTDName: {}, StepTDPhone: {}, StepTDLicense: {},
	StepTDLocationMode: {}, StepTDHomeAddress: {}, StepTDDropLocation: {},
	StepTestDriveConfirmation: {}, StepBookingComplete: {},
	StepChangeCriteriaConfirm: {},
}

// Known reports whether the step is a member of the enumerated state set.
func (s Step) Known() bool {
	_, ok := knownSteps[s]
	return ok
}

// Session is the per-conversation state record, keyed by user identity.
// JSON tags keep the legacy wire names so existing stored sessions remain
// readable. Each turn receives a Session value and returns the mutated
// successor; nothing mutates a shared instance.
type Session struct {
	UserID            string          `json:"userId,omitempty"`
	Step              Step            `json:"step,omitempty"`
	Budget            string          `json:"budget,omitempty"`
	Type              string          `json:"type,omitempty"`
	Brand             string          `json:"brand,omitempty"`
	FilteredCars      []inventory.Car `json:"filteredCars,omitempty"`
	CarIndex          int             `json:"carIndex,omitempty"`
	SelectedCar       string          `json:"selectedCar,omitempty"`
	TestDriveDate     string          `json:"testDriveDate,omitempty"`
	TestDriveDay      string          `json:"testDriveDay,omitempty"`
	TestDriveTime     string          `json:"testDriveTime,omitempty"`
	Name              string          `json:"td_name,omitempty"`
	Phone             string          `json:"td_phone,omitempty"`
	License           string          `json:"td_license,omitempty"`
	LocationMode      string          `json:"td_location_mode,omitempty"`
	HomeAddress       string          `json:"td_home_address,omitempty"`
	DropLocation      string          `json:"td_drop_location,omitempty"`
	ConversationEnded bool            `json:"conversationEnded,omitempty"`
}

// NewSession returns the canonical initial state for a user.
func NewSession(userID string) Session {
	return Session{UserID: userID, Step: StepBrowseStart}
}

// ResetCriteria clears the browsing facets, result set and selection, and
// puts the session back at the start of the flow. Collected test-drive
// fields are left alone; restarting the browse loop does not forget them.
func (s Session) ResetCriteria() Session {
	s.Step = StepBrowseStart
	s.Budget = ""
	s.Type = ""
	s.Brand = ""
	s.CarIndex = 0
	s.FilteredCars = nil
	s.SelectedCar = ""
	return s
}

// Ended is the canonical terminal state: everything cleared except the
// conversation-ended marker.
func Ended(userID string) Session {
	return Session{UserID: userID, ConversationEnded: true}
}

// ScheduledDay resolves the day line of the booking: "Today"/"Tomorrow"
// directly, otherwise the concrete day picked in the day menu.
func (s Session) ScheduledDay() string {
	if s.TestDriveDate == "Today" || s.TestDriveDate == "Tomorrow" {
		return s.TestDriveDate
	}
	if s.TestDriveDay != "" {
		return s.TestDriveDay
	}
	return "Not selected"
}
