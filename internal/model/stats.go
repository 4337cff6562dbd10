package model

// DashboardStats backs the admin dashboard.
type DashboardStats struct {
	TodayAppointments    int                `json:"todayAppointments"`
	PendingAppointments  int                `json:"pendingAppointments"`
	TotalPatients        int                `json:"totalPatients"`
	ThisWeekCompleted    int                `json:"thisWeekCompleted"`
	UpcomingAppointments []*AppointmentView `json:"upcomingAppointments"`
}

// SlotWithStatus is a generated slot annotated with its booked state, for
// the slot-picker UI.
type SlotWithStatus struct {
	TimeSlot
	Display string `json:"display"`
	Booked  bool   `json:"booked"`
}
