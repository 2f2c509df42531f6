package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventhub/internal/helpers"
	"github.com/joshua-takyi/eventhub/internal/models"
	"github.com/joshua-takyi/eventhub/internal/services"
	"github.com/joshua-takyi/eventhub/internal/session"
	"github.com/joshua-takyi/eventhub/internal/views"
)

const msgDeleteFailed = "Failed to delete event"

// filterURL links to the events page with f applied. Unlike the upstream
// query it keeps "all" so the choice survives paging.
func filterURL(f services.Filters) string {
	q := url.Values{}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	q.Set("category", f.Category)
	q.Set("status", f.Status)
	q.Set("sort", f.Sort)
	q.Set("limit", strconv.Itoa(f.Limit))
	q.Set("page", strconv.Itoa(f.Page))
	return "/events?" + q.Encode()
}

func pageLinks(f services.Filters, p models.Pagination) []views.PageLink {
	numbers := p.PageNumbers()
	links := make([]views.PageLink, 0, len(numbers))
	for _, n := range numbers {
		f.Page = n
		links = append(links, views.PageLink{Number: n, URL: filterURL(f), Active: n == p.Page})
	}
	return links
}

// listingFor starts a listing for the signed-in caller on the default filters.
func listingFor(c *gin.Context, es *services.EventService) *services.Listing {
	return es.Listing(session.Token(c), session.User(c), services.DefaultFilters())
}

func ListEvents(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing := listingFor(c, es)
		listing.Apply(c.Request.URL.Query())
		err := listing.Fetch(c.Request.Context())

		filters := listing.Filters()
		data := &views.EventsData{
			Filters:    filters,
			Categories: models.WithAll("All Categories", models.Categories),
			Statuses:   models.WithAll("All Statuses", models.Statuses),
			Sorts:      models.SortOptions,
			PageSizes:  models.PageSizeOptions,
			ResetURL:   "/events?reset=1",
			Events:     listing.Events(),
			Pagination: listing.Pagination(),
			Empty:      listing.IsEmpty(),
		}
		if err != nil {
			data.Err = models.MessageOf(err, "Failed to fetch events")
		}
		first := filters
		first.Page = 1
		data.Filtered = first != services.DefaultFilters()

		data.Pages = pageLinks(filters, data.Pagination)
		if data.Pagination.HasPrev() {
			prev := filters
			prev.Page = data.Pagination.Page - 1
			data.PrevURL = filterURL(prev)
		}
		if listing.HasMore() {
			next := filters
			next.Page = data.Pagination.Page + 1
			data.NextURL = filterURL(next)
		}

		render(c, ck, http.StatusOK, "events", "Events", data)
	}
}

func EventDetail(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.User(c)
		detail, err := es.Detail(c.Request.Context(), session.Token(c), c.Param("id"))
		if err != nil {
			renderFailure(c, ck, err, models.MsgEventNotFound)
			return
		}

		at := now()
		event := detail.Event
		render(c, ck, http.StatusOK, "event_detail", event.Title, &views.EventDetailData{
			Event:         event,
			Status:        event.DerivedStatus(at),
			RSVP:          services.NewRSVPState(event, detail.HasRSVP),
			ShowRSVP:      services.ShowRSVPControl(user, event, at),
			IsOrganizer:   helpers.IsOrganizer(user, event),
			IsPast:        event.IsPast(at),
			Attendees:     detail.Attendees,
			AttendeeTotal: detail.AttendeeTotal,
			ShareURL:      absoluteURL(c, "/events/"+event.ID),
		})
	}
}

// formZone is the timezone the form's datetime-local value was entered in:
// the offset posted with the form, else the browser cookie.
func formZone(c *gin.Context, ck *session.Cookies) *time.Location {
	if loc, ok := helpers.ZoneFromOffset(c.PostForm("tzOffset")); ok {
		return loc
	}
	return ck.Zone(c)
}

// bindEventForm reads the event form. An uploaded file replaces the image
// carried over in the hidden field.
func bindEventForm(c *gin.Context, ck *session.Cookies) (models.EventInput, map[string]string) {
	var input models.EventInput
	errs := bindForm(c, &input)
	input.Date = helpers.InZone(input.Date, formZone(c, ck))

	if fh, err := c.FormFile("imageFile"); err == nil {
		f, err := fh.Open()
		if err != nil {
			errs["image"] = "Failed to read image"
		} else {
			defer f.Close()
			dataURL, err := helpers.ProcessImage(f, fh.Size, fh.Header.Get("Content-Type"))
			if err != nil {
				errs["image"] = models.MessageOf(err, "Failed to read image")
			} else {
				input.Image = dataURL
			}
		}
	}
	if input.Image == "" {
		if _, ok := errs["image"]; !ok {
			errs["image"] = services.MsgImageRequired
		}
	}
	return input, errs
}

func eventForm(input models.EventInput, errs map[string]string, loc *time.Location) *views.EventFormData {
	return &views.EventFormData{
		Action:     "/create-event",
		Input:      input,
		Errors:     errs,
		Categories: models.Categories,
		MinDate:    helpers.FormatDateForInput(now().In(loc)),
	}
}

func editForm(id string, input models.EventInput, errs map[string]string, loc *time.Location) *views.EventFormData {
	data := eventForm(input, errs, loc)
	data.Editing = true
	data.EventID = id
	data.Action = "/events/" + id + "/edit"
	return data
}

func NewEventForm(ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, ck, http.StatusOK, "event_form", "Create Event", eventForm(models.EventInput{}, nil, ck.Zone(c)))
	}
}

func CreateEvent(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		input, errs := bindEventForm(c, ck)
		status := http.StatusUnprocessableEntity

		if len(errs) == 0 {
			event, err := listingFor(c, es).CreateEvent(c.Request.Context(), input)
			if err == nil {
				ck.Success(c, models.MsgEventCreated)
				redirect(c, "/events/"+event.ID)
				return
			}
			if field, msg, ok := fieldOf(err); ok {
				errs[field] = msg
			} else {
				ck.Error(c, models.MessageOf(err, "Failed to create event"))
			}
			status = statusOf(err)
		} else if msg, ok := errs["form"]; ok {
			ck.Error(c, msg)
		}

		render(c, ck, status, "event_form", "Create Event", eventForm(input, errs, formZone(c, ck)))
	}
}

func EditEventForm(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		event, err := es.GetEvent(c.Request.Context(), session.Token(c), id)
		if err != nil {
			renderFailure(c, ck, err, models.MsgEventNotFound)
			return
		}
		if !helpers.IsOrganizer(session.User(c), event) {
			ck.Error(c, services.MsgNotOrganizer)
			redirect(c, "/events/"+id)
			return
		}
		loc := ck.Zone(c)
		input := models.InputFromEvent(event)
		input.Date = input.Date.In(loc)
		render(c, ck, http.StatusOK, "event_form", "Edit Event", editForm(id, input, nil, loc))
	}
}

func UpdateEvent(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		input, errs := bindEventForm(c, ck)
		status := http.StatusUnprocessableEntity

		if len(errs) == 0 {
			_, err := listingFor(c, es).UpdateEvent(c.Request.Context(), id, input)
			if err == nil {
				ck.Success(c, models.MsgEventUpdated)
				redirect(c, "/events/"+id)
				return
			}
			if status = statusOf(err); status == http.StatusForbidden || status == http.StatusNotFound {
				ck.Error(c, models.MessageOf(err, models.MsgEventNotFound))
				redirect(c, "/events/"+id)
				return
			}
			if field, msg, ok := fieldOf(err); ok {
				errs[field] = msg
			} else {
				ck.Error(c, models.MessageOf(err, "Failed to update event"))
			}
		} else if msg, ok := errs["form"]; ok {
			ck.Error(c, msg)
		}

		render(c, ck, status, "event_form", "Edit Event", editForm(id, input, errs, formZone(c, ck)))
	}
}

// DeleteEvent removes the event and goes to next, or the events page.
func DeleteEvent(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := listingFor(c, es).DeleteEvent(c.Request.Context(), id); err != nil {
			ck.Error(c, models.MessageOf(err, msgDeleteFailed))
			redirect(c, "/events/"+id)
			return
		}
		ck.Success(c, models.MsgEventDeleted)
		redirect(c, helpers.SafeRedirect(c.PostForm("next"), "/events"))
	}
}

// EventCalendar serves the event as an .ics download.
func EventCalendar(es *services.EventService, ck *session.Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.GetEvent(c.Request.Context(), session.Token(c), c.Param("id"))
		if err != nil {
			renderFailure(c, ck, err, models.MsgEventNotFound)
			return
		}
		body := helpers.EventCalendar(event, absoluteURL(c, "/events/"+event.ID), now())
		c.Header("Content-Disposition", `attachment; filename="`+helpers.CalendarFilename(event)+`"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
	}
}

// EventQR serves a QR code of the event's share link.
func EventQR() gin.HandlerFunc {
	return func(c *gin.Context) {
		png, err := helpers.ShareQR(absoluteURL(c, "/events/"+c.Param("id")))
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.Header("Cache-Control", "public, max-age=86400")
		c.Data(http.StatusOK, "image/png", png)
	}
}
