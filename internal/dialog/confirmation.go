package dialog

import (
	"fmt"
	"strings"

	"github.com/sherpa-concierge-poc/server/internal/dialog/model"
)

const showroomAddressLine = "\n📍 Showroom Address: Sherpa Hyundai Showroom, 123 MG Road, Bangalore\n🅿️ Free parking available"

// Confirmation renders the booking summary from the collected fields. Pure
// function of the session; missing fields render fixed literals.
func Confirmation(s model.Session) *model.Response {
	var locationText string
	switch mode := strings.ToLower(s.LocationMode); {
	case mode == "home pickup":
		locationText = "\n📍 Test Drive Location: " + orDefault(s.HomeAddress, "To be confirmed")
	case mode == "showroom pickup":
		locationText = showroomAddressLine
	case strings.Contains(mode, "delivery"):
		locationText = "\n📍 Test Drive Location: " + orDefault(s.DropLocation, "To be confirmed")
	default:
		locationText = "\n📍 Test Drive Location: To be confirmed"
	}

	message := fmt.Sprintf(`Perfect! Here's your test drive confirmation:

📋 TEST DRIVE CONFIRMED:
👤 Name: %s
📱 Phone: %s
🚗 Car: %s
📅 Date: %s
⏰ Time: %s
%s

What to bring:
✅ Valid driving license
✅ all photo ID
📞 Need help? Call us: +91-9876543210
Quick reminder: We'll also have financing options ready if you like the car during your test drive!

Please confirm your booking:`,
		orDefault(s.Name, "Not provided"),
		orDefault(s.Phone, "Not provided"),
		orDefault(s.SelectedCar, "Not selected"),
		s.ScheduledDay(),
		orDefault(s.TestDriveTime, "Not selected"),
		locationText,
	)

	return &model.Response{
		Message: message,
		Options: []string{"Confirm", "Reject"},
	}
}
