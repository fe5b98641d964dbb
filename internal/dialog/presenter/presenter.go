// Package presenter renders paginated car listings into structured messages.
package presenter

import (
	"fmt"
	"regexp"

	"github.com/sherpa-concierge-poc/server/internal/dialog/model"
	"github.com/sherpa-concierge-poc/server/internal/inventory"
)

// PageSize is the number of cars shown per page.
const PageSize = 3

const (
	optionBrowseMore     = "Browse More Cars"
	optionChangeCriteria = "Change criteria"
)

// AssetResolver reports the public URL of a named asset, if it exists.
type AssetResolver interface {
	Resolve(filename string) (string, bool)
}

// Presenter builds the per-page display payload for a result set.
type Presenter struct {
	assets AssetResolver
}

func New(assets AssetResolver) *Presenter {
	return &Presenter{assets: assets}
}

var whitespace = regexp.MustCompile(`\s+`)

// CarKey derives the deterministic identity key of a car: make, model and
// variant joined and whitespace collapsed to underscores. The same key names
// the image asset and seeds the selection button id.
func CarKey(c inventory.Car) string {
	return whitespace.ReplaceAllString(c.Make+"_"+c.Model+"_"+c.Variant, "_")
}

// ButtonID is the opaque identifier carried by a car's selection button.
func ButtonID(c inventory.Car) string {
	return whitespace.ReplaceAllString("book_"+c.Make+"_"+c.Model+"_"+c.Variant, "_")
}

// Caption is the display text for one car, identical whether it rides an
// image or a plain text payload.
func Caption(c inventory.Car) string {
	return fmt.Sprintf("🚗 %s\n📅 Year: %d\n⛽ Fuel: %s\n💰 Price: %s",
		c.DisplayName(), c.ManufacturingYear, c.FuelType, FormatRupees(c.EstimatedSellingPrice))
}

// Page renders up to PageSize cars starting at the session's cursor and
// moves the session into the paginated loop. The cursor itself is advanced
// only by the explicit browse-more action, never by rendering.
func (p *Presenter) Page(s model.Session) (model.Session, *model.Response) {
	cars := s.FilteredCars
	if len(cars) == 0 {
		return s, &model.Response{
			Message: "No more cars to display.",
			Options: []string{optionChangeCriteria},
		}
	}

	start := s.CarIndex
	end := start + PageSize
	if end > len(cars) {
		end = len(cars)
	}

	var messages []model.StructuredMessage
	for _, car := range cars[start:end] {
		caption := Caption(car)
		if link, ok := p.assets.Resolve(CarKey(car) + ".png"); ok {
			messages = append(messages, model.ImageMessage(link, caption))
		} else {
			messages = append(messages, model.TextMessage(caption))
		}
		messages = append(messages, model.ButtonMessage("SELECT", ButtonID(car), "SELECT"))
	}

	resp := &model.Response{
		Message:  fmt.Sprintf("Showing cars %d-%d of %d:", start+1, end, len(cars)),
		Messages: messages,
	}
	if end < len(cars) {
		resp.Options = []string{optionBrowseMore}
	} else {
		resp.Message += "\n\nNo more cars available."
		resp.Options = []string{optionChangeCriteria}
	}

	s.Step = model.StepShowMoreCars
	return s, resp
}
