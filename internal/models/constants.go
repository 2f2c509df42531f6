package models

import "net/url"

type Option struct {
	Value string
	Label string
}

const (
	CategoryAll = "all"
	StatusAll   = "all"

	StatusUpcoming  = "upcoming"
	StatusOngoing   = "ongoing"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var Categories = []Option{
	{Value: "conference", Label: "Conference"},
	{Value: "workshop", Label: "Workshop"},
	{Value: "meetup", Label: "Meetup"},
	{Value: "seminar", Label: "Seminar"},
	{Value: "webinar", Label: "Webinar"},
	{Value: "social", Label: "Social"},
	{Value: "sports", Label: "Sports"},
	{Value: "music", Label: "Music"},
	{Value: "arts", Label: "Arts"},
	{Value: "other", Label: "Other"},
}

var Statuses = []Option{
	{Value: StatusUpcoming, Label: "Upcoming"},
	{Value: StatusOngoing, Label: "Ongoing"},
	{Value: StatusCompleted, Label: "Completed"},
	{Value: StatusCancelled, Label: "Cancelled"},
}

var SortOptions = []Option{
	{Value: "-date", Label: "Date (Newest First)"},
	{Value: "date", Label: "Date (Oldest First)"},
	{Value: "-createdAt", Label: "Recently Added"},
	{Value: "title", Label: "Title (A-Z)"},
	{Value: "-title", Label: "Title (Z-A)"},
}

var PageSizeOptions = []int{6, 12, 24, 48}

const (
	DefaultPageSize = 12
	MaxImageSize    = 5 * 1024 * 1024

	DefaultAvatar    = "https://ui-avatars.com/api/?background=3b82f6&color=fff&size=200"
	PlaceholderImage = "https://via.placeholder.com/800x600/3b82f6/ffffff?text=Event+Image"
)

// User-facing messages shared by handlers.
const (
	MsgLogin          = "Welcome back!"
	MsgRegister       = "Account created successfully!"
	MsgLogout         = "Logged out successfully"
	MsgEventCreated   = "Event created successfully!"
	MsgEventUpdated   = "Event updated successfully!"
	MsgEventDeleted   = "Event deleted successfully"
	MsgRSVPConfirmed  = "RSVP confirmed!"
	MsgRSVPCancelled  = "RSVP cancelled"
	MsgProfileUpdated = "Profile updated successfully!"

	MsgLoginFailed    = "Invalid credentials"
	MsgRegisterFailed = "Registration failed"
	MsgNetworkError   = "Network error - please check your connection"
	MsgEventNotFound  = "Event not found"
	MsgUnauthorized   = "Please login to continue"
	MsgEventFull      = "Event is full"
	MsgGeneric        = "Something went wrong"
)

// WithAll prepends the catch-all filter option to opts.
func WithAll(label string, opts []Option) []Option {
	out := make([]Option, 0, len(opts)+1)
	out = append(out, Option{Value: "all", Label: label})
	return append(out, opts...)
}

func hasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}

func IsCategory(v string) bool { return hasOption(Categories, v) }
func IsStatus(v string) bool   { return hasOption(Statuses, v) }
func IsSortKey(v string) bool  { return hasOption(SortOptions, v) }

func IsPageSize(n int) bool {
	for _, size := range PageSizeOptions {
		if size == n {
			return true
		}
	}
	return false
}

func queryEscape(s string) string {
	return url.QueryEscape(s)
}
