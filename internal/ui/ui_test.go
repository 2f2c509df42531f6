package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestButtonVariants(t *testing.T) {
	assert.Contains(t, Button("danger", "sm"), "bg-red-600")
	assert.Contains(t, Button("danger", "sm"), "px-3 py-2 text-sm")
	assert.Contains(t, Button("bogus", "huge"), "bg-blue-600")
	assert.Contains(t, Button("bogus", "huge"), "px-4 py-3")
	assert.True(t, strings.HasSuffix(Button("primary", "md", "full"), "w-full"))
}

func TestCardFlags(t *testing.T) {
	c := Card("lg", "xl", "hover", "bordered")
	assert.Contains(t, c, "p-8")
	assert.Contains(t, c, "shadow-xl")
	assert.Contains(t, c, "hover:-translate-y-1")
	assert.Contains(t, c, "border-2")
	assert.Contains(t, Card("", "", "glass"), "backdrop-blur-lg")
	assert.Contains(t, Card("", ""), "p-6")
}

func TestInputState(t *testing.T) {
	assert.Contains(t, Input(true, false), "border-red-500")
	assert.NotContains(t, Input(false, false), "border-red-500")
	assert.Contains(t, Input(false, true), "pl-10")
}

func TestStatusBadge(t *testing.T) {
	assert.Contains(t, StatusBadge(models.StatusOngoing), "bg-yellow-100")
	assert.Contains(t, StatusBadge("whatever"), "bg-gray-100")
}

func TestCardRibbon(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 7)

	assert.Nil(t, CardRibbon(&models.Event{Date: future, Capacity: 10, CurrentAttendees: 2}, now))
	assert.Equal(t, "FILLING FAST", CardRibbon(&models.Event{Date: future, Capacity: 10, CurrentAttendees: 8}, now).Text)
	assert.Equal(t, "SOLD OUT", CardRibbon(&models.Event{Date: future, Capacity: 10, CurrentAttendees: 10}, now).Text)
	assert.Equal(t, "TODAY", CardRibbon(&models.Event{Date: now.Add(3 * time.Hour), Capacity: 10}, now).Text)
	assert.Equal(t, "COMPLETED", CardRibbon(&models.Event{Date: now.AddDate(0, 0, -2), Capacity: 10}, now).Text)
}

func TestStrengthBar(t *testing.T) {
	assert.Equal(t, "bg-orange-500", StrengthBar(2, 0))
	assert.Equal(t, "bg-orange-500", StrengthBar(2, 1))
	assert.Contains(t, StrengthBar(2, 2), "bg-gray-200")
	assert.Contains(t, StrengthBar(0, 0), "bg-gray-200")
}

func TestNavLink(t *testing.T) {
	assert.Contains(t, NavLink("/events/abc", "/events"), "text-blue-600 dark:bg-gray-800")
	assert.NotContains(t, NavLink("/events", "/"), "bg-blue-50")
	assert.Contains(t, NavLink("/", "/"), "bg-blue-50")
}

func TestRSVPButton(t *testing.T) {
	assert.Equal(t, "RSVP Now", RSVPLabel(false, false))
	assert.Equal(t, "Event Full", RSVPLabel(false, true))
	assert.Equal(t, "Cancel RSVP", RSVPLabel(true, true))
	assert.Contains(t, RSVPButton(false), "bg-blue-600")
	assert.Contains(t, RSVPButton(true), "bg-gray-600")
	assert.Contains(t, RSVPButton(true), "w-full")
}
