// Package ui resolves the style variants of the shared page components to
// their CSS classes. Unknown variants fall back to the component default.
package ui

import (
	"strings"
	"time"

	"github.com/joshua-takyi/eventhub/internal/models"
)

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func lookup(table map[string]string, key, fallback string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return table[fallback]
}

const buttonBase = "font-semibold rounded-lg transition-all duration-300 flex items-center justify-center disabled:opacity-50 disabled:cursor-not-allowed"

var buttonVariants = map[string]string{
	"primary":   "bg-blue-600 hover:bg-blue-700 text-white shadow-lg hover:shadow-xl",
	"secondary": "bg-gray-600 hover:bg-gray-700 text-white shadow-lg hover:shadow-xl",
	"success":   "bg-green-600 hover:bg-green-700 text-white shadow-lg hover:shadow-xl",
	"danger":    "bg-red-600 hover:bg-red-700 text-white shadow-lg hover:shadow-xl",
	"outline":   "border-2 border-blue-600 text-blue-600 hover:bg-blue-50 dark:hover:bg-blue-900",
	"ghost":     "text-blue-600 hover:bg-blue-50 dark:hover:bg-gray-800",
}

var buttonSizes = map[string]string{
	"sm": "px-3 py-2 text-sm",
	"md": "px-4 py-3 text-base",
	"lg": "px-6 py-4 text-lg",
}

// Button returns the classes for a button. Extra arguments are appended
// verbatim; "full" widens the button.
func Button(variant, size string, extra ...string) string {
	parts := []string{buttonBase, lookup(buttonVariants, variant, "primary"), lookup(buttonSizes, size, "md")}
	for _, e := range extra {
		if e == "full" {
			e = "w-full"
		}
		parts = append(parts, e)
	}
	return join(parts...)
}

// RSVPLabel is the text of the event page RSVP button.
func RSVPLabel(hasRSVP, full bool) string {
	switch {
	case hasRSVP:
		return "Cancel RSVP"
	case full:
		return "Event Full"
	}
	return "RSVP Now"
}

func RSVPButton(hasRSVP bool) string {
	if hasRSVP {
		return Button("secondary", "lg", "full")
	}
	return Button("primary", "lg", "full")
}

var cardPadding = map[string]string{
	"none":    "",
	"sm":      "p-4",
	"default": "p-6",
	"lg":      "p-8",
	"xl":      "p-10",
}

var cardShadow = map[string]string{
	"none": "",
	"sm":   "shadow-sm",
	"md":   "shadow-md",
	"lg":   "shadow-lg",
	"xl":   "shadow-xl",
	"2xl":  "shadow-2xl",
}

// Card flags: hover, bordered, gradient, glass.
func Card(padding, shadow string, flags ...string) string {
	set := map[string]bool{}
	for _, f := range flags {
		set[f] = true
	}
	surface := "bg-white dark:bg-gray-800"
	if set["glass"] {
		surface = "backdrop-blur-lg bg-white/80 dark:bg-gray-800/80 border border-white/20 dark:border-gray-700/20"
	}
	parts := []string{"rounded-xl overflow-hidden transition-all duration-300", surface, lookup(cardShadow, shadow, "lg")}
	if set["hover"] {
		parts = append(parts, "hover:shadow-2xl hover:-translate-y-1 cursor-pointer")
	}
	if set["bordered"] {
		parts = append(parts, "border-2 border-gray-200 dark:border-gray-700")
	}
	if set["gradient"] {
		parts = append(parts, "bg-gradient-to-br from-white to-gray-50 dark:from-gray-800 dark:to-gray-900")
	}
	parts = append(parts, lookup(cardPadding, padding, "default"))
	return join(parts...)
}

// Input returns the classes of a text input, textarea or select.
func Input(hasError, hasIcon bool) string {
	state := "border-gray-300 dark:border-gray-600 focus:ring-2 focus:ring-blue-500 focus:border-transparent"
	if hasError {
		state = "border-red-500 focus:ring-red-500 focus:border-red-500"
	}
	icon := ""
	if hasIcon {
		icon = "pl-10"
	}
	return join("w-full px-4 py-3 border rounded-lg dark:bg-gray-700 dark:text-white transition-colors", icon, state)
}

var modalSizes = map[string]string{
	"xs":   "max-w-sm",
	"sm":   "max-w-md",
	"md":   "max-w-2xl",
	"lg":   "max-w-4xl",
	"xl":   "max-w-6xl",
	"full": "max-w-full mx-4",
}

func Modal(size string) string {
	return join("relative w-full bg-white dark:bg-gray-800 rounded-2xl shadow-2xl", lookup(modalSizes, size, "md"))
}

var loadingSizes = map[string]string{
	"sm": "text-4xl",
	"md": "text-6xl",
	"lg": "text-8xl",
}

func Loading(size string, fullScreen bool) string {
	container := "flex items-center justify-center p-8"
	if fullScreen {
		container = "min-h-screen flex items-center justify-center bg-gray-50 dark:bg-gray-900"
	}
	return join(container, lookup(loadingSizes, size, "md"))
}

var statusBadges = map[string]string{
	models.StatusUpcoming:  "bg-green-100 text-green-800",
	models.StatusOngoing:   "bg-yellow-100 text-yellow-800",
	models.StatusCompleted: "bg-gray-100 text-gray-800",
	models.StatusCancelled: "bg-red-100 text-red-800",
}

func StatusBadge(status string) string {
	return join("inline-block px-3 py-1 rounded-full text-sm font-medium", lookup(statusBadges, status, models.StatusCompleted))
}

const CategoryBadge = "inline-block px-3 py-1 bg-blue-100 dark:bg-blue-900 text-blue-800 dark:text-blue-200 rounded-full text-sm font-medium"

// AlmostFullPercent is the fill level from which a card says "filling fast".
const AlmostFullPercent = 80

type Ribbon struct {
	Text  string
	Class string
}

// CardRibbon is the corner label of an event card, if any.
func CardRibbon(e *models.Event, now time.Time) *Ribbon {
	if e == nil {
		return nil
	}
	y1, m1, d1 := e.Date.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	today := y1 == y2 && m1 == m2 && d1 == d2
	switch {
	case e.IsPast(now) && !today:
		return &Ribbon{Text: "COMPLETED", Class: "bg-gray-600"}
	case today:
		return &Ribbon{Text: "TODAY", Class: "bg-purple-600 animate-pulse"}
	case e.IsFull():
		return &Ribbon{Text: "SOLD OUT", Class: "bg-red-600"}
	case e.FillPercent() >= AlmostFullPercent:
		return &Ribbon{Text: "FILLING FAST", Class: "bg-orange-600"}
	}
	return nil
}

var strengthColors = [...]string{"bg-gray-200 dark:bg-gray-600", "bg-red-500", "bg-orange-500", "bg-yellow-500", "bg-green-500"}

// StrengthBar colors segment i (0-3) of the password meter for score.
func StrengthBar(score, i int) string {
	if score < 0 || score >= len(strengthColors) || i >= score {
		return strengthColors[0]
	}
	return strengthColors[score]
}

// NavLink highlights the link matching the current path.
func NavLink(current, href string) string {
	base := "px-3 py-2 rounded-lg text-sm font-medium transition-colors"
	active := current == href || (href != "/" && strings.HasPrefix(current, href+"/"))
	if active {
		return join(base, "bg-blue-50 text-blue-600 dark:bg-gray-800 dark:text-blue-400")
	}
	return join(base, "text-gray-700 dark:text-gray-300 hover:text-blue-600 dark:hover:text-blue-400")
}
