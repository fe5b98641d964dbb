// Package dialog implements the guided browse-and-book conversation as a
// state machine over per-user sessions.
package dialog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sherpa-concierge-poc/server/internal/booking"
	"github.com/sherpa-concierge-poc/server/internal/dialog/model"
	"github.com/sherpa-concierge-poc/server/internal/dialog/presenter"
	"github.com/sherpa-concierge-poc/server/internal/inventory"
	logx "github.com/sherpa-concierge-poc/server/pkg/logger"
)

// BudgetOptions are the five fixed budget labels offered to the user.
var BudgetOptions = []string{
	"Under ₹5 Lakhs",
	"₹5-10 Lakhs",
	"₹10-15 Lakhs",
	"₹15-20 Lakhs",
	"Above ₹20 Lakhs",
}

// Inventory answers the facet queries the dialog needs. Implementations
// degrade internally and never fail a turn.
type Inventory interface {
	AvailableTypes(ctx context.Context, budget string) []string
	AvailableMakes(ctx context.Context, budget, carType string) []string
	FilterCars(ctx context.Context, budget, carType, brand string) []inventory.Car
}

// BookingRepo persists a confirmed test drive.
type BookingRepo interface {
	Create(ctx context.Context, td *booking.TestDrive) error
}

// Engine maps (session, user message) to (successor session, response).
// Apart from the booking timestamp the mapping is deterministic: replaying
// the same step, session and message yields the same result.
type Engine struct {
	inventory Inventory
	bookings  BookingRepo
	presenter *presenter.Presenter
	now       func() time.Time
}

func NewEngine(inv Inventory, bookings BookingRepo, p *presenter.Presenter) *Engine {
	return &Engine{
		inventory: inv,
		bookings:  bookings,
		presenter: p,
		now:       time.Now,
	}
}

// Handle advances the conversation one turn. A nil response is returned only
// when the user explicitly ends the conversation and nothing should be
// delivered.
func (e *Engine) Handle(ctx context.Context, s model.Session, userMessage string) (model.Session, *model.Response) {
	step := s.Step
	if step == "" {
		step = model.StepBrowseStart
	}
	logx.Debug().Str("userID", s.UserID).Str("step", string(step)).Str("input", userMessage).Msg("dialog turn")

	switch step {
	case model.StepBrowseStart:
		// A budget label sent out of turn pre-seeds the budget and skips
		// straight to type selection.
		if slices.Contains(BudgetOptions, userMessage) {
			s.Budget = userMessage
			return e.promptTypes(ctx, s)
		}
		s.Step = model.StepBrowseBudget
		return s, &model.Response{
			Message: "Great choice! Let's find your perfect car. First, what's your budget range?",
			Options: BudgetOptions,
		}

	case model.StepBrowseBudget:
		s.Budget = userMessage
		return e.promptTypes(ctx, s)

	case model.StepBrowseType:
		s.Type = normalizeFacet(userMessage, "all Type")
		s.Step = model.StepBrowseBrand
		brands := e.inventory.AvailableMakes(ctx, s.Budget, s.Type)
		return s, &model.Response{
			Message: "Excellent choice! Which brand do you prefer?",
			Options: append([]string{"all Brand"}, brands...),
		}

	case model.StepBrowseBrand:
		s.Brand = normalizeFacet(userMessage, "all Brand")
		s.Step = model.StepShowCars
		cars := e.inventory.FilterCars(ctx, s.Budget, s.Type, s.Brand)
		s.FilteredCars = cars
		s.CarIndex = 0

		if len(cars) == 0 {
			return s, &model.Response{
				Message: "Sorry, no cars found matching your criteria. Let's try different options.",
				Options: []string{"Change criteria"},
			}
		}
		return e.presenter.Page(s)

	case model.StepShowCars, model.StepShowMoreCars:
		return e.handleCarList(s, userMessage)

	case model.StepCarSelectedOptions:
		switch userMessage {
		case "Book Test Drive":
			return promptTestDriveDate(s, s.SelectedCar)
		case "Change My Criteria":
			return restartCriteria(s, "No problem! Let's find you a different car. What's your budget range?")
		default:
			// Unmatched input re-prompts instead of leaking into the
			// scheduling flow.
			return s, &model.Response{
				Message: "Please select an option:",
				Options: []string{"Book Test Drive", "Change My Criteria"},
			}
		}

	case model.StepTestDriveDate:
		s.TestDriveDate = userMessage
		if userMessage == "Today" || userMessage == "Tomorrow" {
			s.Step = model.StepTestDriveTime
			return s, &model.Response{
				Message: "Perfect! Which time works better for you?",
				Options: TimeSlots(),
			}
		}
		s.Step = model.StepTestDriveDay
		return s, &model.Response{
			Message: "Which day works best for you?",
			Options: UpcomingDays(userMessage),
		}

	case model.StepTestDriveDay:
		s.TestDriveDay = userMessage
		s.Step = model.StepTestDriveTime
		return s, &model.Response{
			Message: "Perfect! What time works best?",
			Options: TimeSlots(),
		}

	case model.StepTestDriveTime:
		s.TestDriveTime = userMessage
		s.Step = model.StepTDName
		return s, &model.Response{Message: "Great! I need some details to confirm your booking:\n\n1. Your Name:"}

	case model.StepTDName:
		s.Name = userMessage
		s.Step = model.StepTDPhone
		return s, &model.Response{Message: "2. Your Phone Number:"}

	case model.StepTDPhone:
		s.Phone = userMessage
		s.Step = model.StepTDLicense
		return s, &model.Response{
			Message: "3. Do you have a valid driving license?",
			Options: []string{"Yes", "No"},
		}

	case model.StepTDLicense:
		s.License = userMessage
		s.Step = model.StepTDLocationMode
		return s, &model.Response{
			Message: "Thank you! Where would you like to take the test drive?",
			Options: []string{"Showroom pickup", "Home pickup"},
		}

	case model.StepTDLocationMode:
		s.LocationMode = userMessage
		if strings.Contains(userMessage, "Home pickup") {
			s.Step = model.StepTDHomeAddress
			return s, &model.Response{Message: "Please share your current address for the test drive:"}
		}
		s.Step = model.StepTestDriveConfirmation
		return s, Confirmation(s)

	case model.StepTDHomeAddress:
		s.HomeAddress = userMessage
		s.Step = model.StepTestDriveConfirmation
		return s, Confirmation(s)

	case model.StepTDDropLocation:
		s.DropLocation = userMessage
		s.Step = model.StepTestDriveConfirmation
		return s, Confirmation(s)

	case model.StepTestDriveConfirmation:
		switch userMessage {
		case "Confirm":
			e.confirmBooking(ctx, s)
			s.Step = model.StepBookingComplete
			return s, &model.Response{
				Message: "Thank you! Your test drive has been confirmed. We'll contact you shortly to finalize the details.",
				Options: []string{"Explore More", "End Conversation"},
			}
		case "Reject":
			return restartCriteria(s, "No problem! Let's find you a different car. What's your budget range?")
		default:
			// Idempotent re-display; no second booking is created.
			return s, Confirmation(s)
		}

	case model.StepBookingComplete:
		switch userMessage {
		case "Explore More":
			return restartCriteria(s, "Welcome! Let's find your perfect car. What's your budget range?")
		case "End Conversation":
			// Deliver nothing; the session collapses to the terminal marker.
			return model.Ended(s.UserID), nil
		default:
			return s, &model.Response{
				Message: "Please select an option:",
				Options: []string{"Explore More", "End Conversation"},
			}
		}

	case model.StepChangeCriteriaConfirm:
		lower := strings.ToLower(userMessage)
		if strings.Contains(lower, "yes") || strings.Contains(lower, "proceed") {
			s.Step = model.StepBrowseStart
			return e.Handle(ctx, s, "start over")
		}
		return s, &model.Response{Message: "Okay, keeping your current selection intact."}

	default:
		logx.Warn().Str("userID", s.UserID).Str("step", string(step)).Msg("unrecognized dialog step, restarting")
		s = s.ResetCriteria()
		return s, &model.Response{
			Message: "Something went wrong. Let's start again.",
			Options: []string{"🏁 Start Again"},
		}
	}
}

// promptTypes moves to type selection for the session's budget.
func (e *Engine) promptTypes(ctx context.Context, s model.Session) (model.Session, *model.Response) {
	s.Step = model.StepBrowseType
	types := e.inventory.AvailableTypes(ctx, s.Budget)
	return s, &model.Response{
		Message: fmt.Sprintf("Perfect! %s gives you excellent options. What type of car do you prefer?", s.Budget),
		Options: append([]string{"all Type"}, types...),
	}
}

// handleCarList interprets input while a car page is on screen. Three shapes
// are recognised: the generic SELECT trigger, a legacy book_<key> button id,
// and the browse-more advance. Anything else is treated as a legacy direct
// car-name selection.
func (e *Engine) handleCarList(s model.Session, userMessage string) (model.Session, *model.Response) {
	cars := s.FilteredCars

	if userMessage == "SELECT" && s.CarIndex < len(cars) {
		return selectCar(s, cars[s.CarIndex])
	}

	if strings.HasPrefix(userMessage, "book_") {
		for _, car := range cars {
			if presenter.ButtonID(car) == userMessage {
				return selectCar(s, car)
			}
		}
	}

	if userMessage == "Browse More Cars" {
		s.CarIndex += presenter.PageSize
		if s.CarIndex >= len(cars) {
			s.CarIndex = len(cars)
			return s, &model.Response{
				Message: "No more cars available. Would you like to change your criteria?",
				Options: []string{"Change criteria"},
			}
		}
		return e.presenter.Page(s)
	}

	if userMessage == "Change criteria" || userMessage == "Change My Criteria" {
		return restartCriteria(s, "No problem! Let's find you a different car. What's your budget range?")
	}

	// Legacy clients send the car name verbatim and skip the options menu.
	s.SelectedCar = userMessage
	return promptTestDriveDate(s, userMessage)
}

func selectCar(s model.Session, car inventory.Car) (model.Session, *model.Response) {
	s.SelectedCar = car.DisplayName()
	s.Step = model.StepCarSelectedOptions
	return s, &model.Response{
		Message: fmt.Sprintf("Great choice! You've selected %s. What would you like to do next?", s.SelectedCar),
		Options: []string{"Book Test Drive", "Change My Criteria"},
	}
}

func promptTestDriveDate(s model.Session, carName string) (model.Session, *model.Response) {
	s.Step = model.StepTestDriveDate
	return s, &model.Response{
		Message: fmt.Sprintf("Excellent! Let's schedule your %s test drive. When would you prefer?", carName),
		Options: []string{"Today", "Tomorrow", "Later this Week", "Next Week"},
	}
}

func restartCriteria(s model.Session, message string) (model.Session, *model.Response) {
	s = s.ResetCriteria()
	return s, &model.Response{Message: message, Options: BudgetOptions}
}

// normalizeFacet maps the "all X" option to the wildcard facet value.
func normalizeFacet(input, allLabel string) string {
	if input == allLabel {
		return "all"
	}
	return input
}

// confirmBooking issues the single booking insert. A failed insert is logged
// and swallowed: the user is still told the booking succeeded. Known
// correctness gap, preserved deliberately.
func (e *Engine) confirmBooking(ctx context.Context, s model.Session) {
	td := &booking.TestDrive{
		UserID:    orDefault(s.UserID, "unknown"),
		Car:       orDefault(s.SelectedCar, "Not selected"),
		Datetime:  e.now(),
		Name:      orDefault(s.Name, "Not provided"),
		Phone:     orDefault(s.Phone, "Not provided"),
		HasDL:     strings.EqualFold(s.License, "Yes"),
		CreatedAt: e.now(),
	}
	if err := e.bookings.Create(ctx, td); err != nil {
		logx.Error().Err(err).Str("userID", s.UserID).Str("car", td.Car).Msg("failed to save test drive booking")
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
