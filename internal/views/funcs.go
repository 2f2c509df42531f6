package views

import (
	"errors"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/ui"
)

// Funcs is the template function set. now is read on every call.
func Funcs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"formatDate":     helpers.FormatDate,
		"formatDateTime": helpers.FormatDateTime,
		"formatTime":     helpers.FormatTime,
		"inputDate":      helpers.FormatDateForInput,
		"relTime":        func(t time.Time) string { return helpers.RelativeTime(t, now()) },
		"friendlyDate":   func(t time.Time) string { return helpers.FriendlyDate(t, now()) },
		"countdown":      func(t time.Time) helpers.Countdown { return helpers.CountdownTo(t, now()) },
		"eventStatus":    func(e *models.Event) string { return e.DerivedStatus(now()) },
		"isPast":         func(e *models.Event) bool { return e.IsPast(now()) },
		"ribbon":         func(e *models.Event) *ui.Ribbon { return ui.CardRibbon(e, now()) },
		"year":           func() int { return now().Year() },

		"btn":           ui.Button,
		"card":          ui.Card,
		"inputClass":    ui.Input,
		"modalClass":    ui.Modal,
		"loadingClass":  ui.Loading,
		"statusBadge":   ui.StatusBadge,
		"categoryBadge": func() string { return ui.CategoryBadge },
		"strengthBar":   ui.StrengthBar,
		"navLink":       ui.NavLink,
		"rsvpLabel":     ui.RSVPLabel,
		"rsvpButton":    ui.RSVPButton,

		"isOrganizer":   helpers.IsOrganizer,
		"categoryLabel": categoryLabel,
		"titleCase":     titleCase,
		"truncate":      truncate,
		"initial":       initial,
		"add":           func(a, b int) int { return a + b },
		"sub":           func(a, b int) int { return a - b },
		"seq":           seq,
		"dict":          dict,
	}
}

func categoryLabel(value string) string {
	for _, o := range models.Categories {
		if o.Value == value {
			return o.Label
		}
	}
	return titleCase(value)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}

// truncate cuts s to n runes, adding an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}

func initial(s string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

func seq(n int) []int {
	if n < 0 {
		n = 0
	}
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// dict builds a map from alternating keys and values for partials.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, errors.New("dict needs an even number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, errors.New("dict keys must be strings")
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}
