package dialog

// Fixed scheduling menus. Static lists keep Handle free of wall-clock reads;
// the showroom confirms the concrete calendar slot out of band.

// TimeSlots returns the selectable test-drive times.
func TimeSlots() []string {
	return []string{"10:00 AM", "11:30 AM", "2:00 PM", "4:00 PM", "6:00 PM"}
}

// UpcomingDays returns the day menu for a date preference that is not an
// immediate day.
func UpcomingDays(preference string) []string {
	if preference == "Next Week" {
		return []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	}
	return []string{"Wednesday", "Thursday", "Friday", "Saturday"}
}
