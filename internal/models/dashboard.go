package models

type DashboardStats struct {
	TotalEventsCreated   int `json:"totalEventsCreated"`
	TotalEventsAttending int `json:"totalEventsAttending"`
	UpcomingEvents       int `json:"upcomingEvents"`
	TotalAttendees       int `json:"totalAttendees"`
}

type Dashboard struct {
	Stats           DashboardStats `json:"stats"`
	CreatedEvents   []*Event       `json:"createdEvents"`
	AttendingEvents []*Event       `json:"attendingEvents"`
}
