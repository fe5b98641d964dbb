package presenter

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherpa-concierge-poc/server/internal/dialog/model"
	"github.com/sherpa-concierge-poc/server/internal/inventory"
)

// fakeAssets resolves only the filenames it was given.
type fakeAssets struct {
	known map[string]string
}

func (f *fakeAssets) Resolve(filename string) (string, bool) {
	url, ok := f.known[filename]
	return url, ok
}

func noAssets() *fakeAssets { return &fakeAssets{} }

func cars(n int) []inventory.Car {
	out := make([]inventory.Car, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, inventory.Car{
			Make:                  "Hyundai",
			Model:                 "i20",
			Variant:               "V" + strconv.Itoa(i),
			ManufacturingYear:     2020 + i,
			FuelType:              "Petrol",
			EstimatedSellingPrice: strconv.Itoa(600_000 + i*10_000),
			Type:                  "Hatchback",
		})
	}
	return out
}

func TestCarKey_CollapsesWhitespace(t *testing.T) {
	c := inventory.Car{Make: "Maruti Suzuki", Model: "Swift Dzire", Variant: "ZXI Plus"}
	assert.Equal(t, "Maruti_Suzuki_Swift_Dzire_ZXI_Plus", CarKey(c))
	assert.Equal(t, "book_Maruti_Suzuki_Swift_Dzire_ZXI_Plus", ButtonID(c))
}

func TestPage_FirstPageWithMore(t *testing.T) {
	p := New(noAssets())
	s := model.Session{Step: model.StepShowCars, FilteredCars: cars(7)}

	s, resp := p.Page(s)

	require.NotNil(t, resp)
	assert.Equal(t, model.StepShowMoreCars, s.Step)
	assert.Equal(t, 0, s.CarIndex, "rendering must not advance the cursor")
	assert.Equal(t, "Showing cars 1-3 of 7:", resp.Message)
	assert.Equal(t, []string{"Browse More Cars"}, resp.Options)

	// card + button per car
	require.Len(t, resp.Messages, 6)
	for i := 0; i < 6; i += 2 {
		assert.Equal(t, model.MessageTypeText, resp.Messages[i].Type)
		assert.Equal(t, model.MessageTypeInteractive, resp.Messages[i+1].Type)
		assert.Equal(t, "SELECT", resp.Messages[i+1].Interactive.ButtonTitle)
	}
	assert.Equal(t, "book_Hyundai_i20_V0", resp.Messages[1].Interactive.ButtonID)
}

func TestPage_FinalPageReportsExhaustion(t *testing.T) {
	p := New(noAssets())
	s := model.Session{Step: model.StepShowMoreCars, FilteredCars: cars(7), CarIndex: 6}

	_, resp := p.Page(s)

	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "Showing cars 7-7 of 7:\n\nNo more cars available.", resp.Message)
	assert.Equal(t, []string{"Change criteria"}, resp.Options)
}

func TestPage_PageCountIsCeilOfThree(t *testing.T) {
	p := New(noAssets())
	for _, n := range []int{1, 3, 4, 7, 9} {
		s := model.Session{FilteredCars: cars(n)}
		pages := 0
		for {
			var resp *model.Response
			s, resp = p.Page(s)
			pages++
			if len(resp.Options) == 0 || resp.Options[0] != "Browse More Cars" {
				break
			}
			s.CarIndex += PageSize
		}
		want := (n + PageSize - 1) / PageSize
		assert.Equal(t, want, pages, "N=%d", n)
		assert.LessOrEqual(t, s.CarIndex, len(s.FilteredCars))
	}
}

func TestPage_EmptyResultSet(t *testing.T) {
	p := New(noAssets())
	s := model.Session{}

	_, resp := p.Page(s)

	assert.Equal(t, "No more cars to display.", resp.Message)
	assert.Equal(t, []string{"Change criteria"}, resp.Options)
}

func TestPage_ImagePayloadWhenAssetExists(t *testing.T) {
	list := cars(2)
	key := CarKey(list[0]) + ".png"
	p := New(&fakeAssets{known: map[string]string{
		key: "http://host/images/" + key,
	}})
	s := model.Session{FilteredCars: list}

	_, resp := p.Page(s)

	require.Len(t, resp.Messages, 4)
	assert.Equal(t, model.MessageTypeImage, resp.Messages[0].Type)
	assert.Equal(t, "http://host/images/"+key, resp.Messages[0].Image.Link)
	// text fallback carries the identical caption content
	assert.Equal(t, model.MessageTypeText, resp.Messages[2].Type)
	assert.Equal(t, Caption(list[1]), resp.Messages[2].Text.Body)
	assert.Equal(t, Caption(list[0]), resp.Messages[0].Image.Caption)
}

func TestCaption_Content(t *testing.T) {
	c := cars(1)[0]
	got := Caption(c)
	assert.Contains(t, got, "Hyundai i20 V0")
	assert.Contains(t, got, "Year: 2020")
	assert.Contains(t, got, "Fuel: Petrol")
	assert.Contains(t, got, "Price: ₹6,00,000")
}
