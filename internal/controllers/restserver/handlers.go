package restserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/chrissnell/lunarday/internal/log"
	"github.com/chrissnell/lunarday/pkg/config"
	"github.com/chrissnell/lunarday/pkg/lunar"
	"github.com/chrissnell/lunarday/pkg/responseformat"
	"github.com/gorilla/mux"
)

const (
	defaultRangeDays = 7
	maxRangeDays     = 62
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetObservers lists the configured observers
func (h *Handlers) GetObservers(w http.ResponseWriter, req *http.Request) {
	out := make([]ObserverResponse, 0, len(h.controller.observerNames))
	for _, name := range h.controller.observerNames {
		o := h.controller.observers[name]
		out = append(out, ObserverResponse{
			Name:      o.Name,
			Latitude:  o.Latitude,
			Longitude: o.Longitude,
			Timezone:  o.loc.String(),
		})
	}
	h.respond(w, req, out, nil)
}

// GetObserverSnapshot handles /lunar/{observer}
func (h *Handlers) GetObserverSnapshot(w http.ResponseWriter, req *http.Request) {
	o, err := h.controller.lookupObserver(mux.Vars(req)["observer"])
	if err != nil {
		h.fail(w, req, err)
		return
	}

	date, err := h.parseDate(req.URL.Query().Get("date"), o.loc)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	snapshot := h.controller.engine.Info(date, o.Coordinate())
	h.respond(w, req, transformSnapshot(o.Name, snapshot), cacheHeaders)
}

// GetCoordinateSnapshot handles /lunar?lat=&lon= for places that are not
// configured observers
func (h *Handlers) GetCoordinateSnapshot(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	coord, err := parseCoordinate(q.Get("lat"), q.Get("lon"))
	if err != nil {
		h.fail(w, req, err)
		return
	}

	loc := time.UTC
	if tz := q.Get("tz"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			h.fail(w, req, badRequest("invalid tz %q", tz))
			return
		}
	}

	date, err := h.parseDate(q.Get("date"), loc)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	snapshot := h.controller.engine.Info(date, coord)
	h.respond(w, req, transformSnapshot("", snapshot), cacheHeaders)
}

// GetObserverRange handles /lunar/{observer}/range for calendar views
func (h *Handlers) GetObserverRange(w http.ResponseWriter, req *http.Request) {
	o, err := h.controller.lookupObserver(mux.Vars(req)["observer"])
	if err != nil {
		h.fail(w, req, err)
		return
	}

	q := req.URL.Query()
	from, err := h.parseDate(q.Get("from"), o.loc)
	if err != nil {
		h.fail(w, req, err)
		return
	}

	days := defaultRangeDays
	if s := q.Get("days"); s != "" {
		days, err = strconv.Atoi(s)
		if err != nil || days < 1 || days > maxRangeDays {
			h.fail(w, req, badRequest("days must be between 1 and %d", maxRangeDays))
			return
		}
	}

	snapshots := h.controller.engine.Range(from, days, o.Coordinate())
	out := RangeResponse{Observer: o.Name, Days: make([]SnapshotResponse, 0, len(snapshots))}
	for _, s := range snapshots {
		out.Days = append(out.Days, transformSnapshot(o.Name, s))
	}
	h.respond(w, req, out, cacheHeaders)
}

// GetHTTPLogs returns the most recent served requests
func (h *Handlers) GetHTTPLogs(w http.ResponseWriter, req *http.Request) {
	h.respond(w, req, log.GetHTTPLogBuffer().GetEntries(), map[string]string{"Cache-Control": "no-store"})
}

// NotFound answers unmatched routes in the API's error format
func (h *Handlers) NotFound(w http.ResponseWriter, req *http.Request) {
	h.writeError(w, req, http.StatusNotFound, fmt.Errorf("no route for %s", req.URL.Path))
}

var cacheHeaders = map[string]string{"Cache-Control": "max-age=300"}

// requestError marks an error caused by the caller's input
type requestError struct {
	msg string
}

func (e requestError) Error() string {
	return e.msg
}

func badRequest(format string, args ...any) error {
	return requestError{msg: fmt.Sprintf(format, args...)}
}

// parseDate reads a YYYY-MM-DD date in loc. An empty value means today in loc.
func (h *Handlers) parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return h.controller.now().In(loc), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, badRequest("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func parseCoordinate(latParam, lonParam string) (lunar.Coordinate, error) {
	if latParam == "" || lonParam == "" {
		return lunar.Coordinate{}, badRequest("lat and lon are required")
	}
	lat, err := strconv.ParseFloat(latParam, 64)
	if err != nil {
		return lunar.Coordinate{}, badRequest("invalid lat %q", latParam)
	}
	lon, err := strconv.ParseFloat(lonParam, 64)
	if err != nil {
		return lunar.Coordinate{}, badRequest("invalid lon %q", lonParam)
	}
	if err := config.ValidateCoordinate(lat, lon); err != nil {
		return lunar.Coordinate{}, requestError{msg: err.Error()}
	}
	return lunar.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// fail maps err to a status code and writes it
func (h *Handlers) fail(w http.ResponseWriter, req *http.Request, err error) {
	var reqErr requestError
	switch {
	case errors.Is(err, config.ErrUnknownObserver):
		h.writeError(w, req, http.StatusNotFound, err)
	case errors.As(err, &reqErr):
		h.writeError(w, req, http.StatusBadRequest, err)
	default:
		h.writeError(w, req, http.StatusInternalServerError, err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Errorw("request failed", "request_id", requestID(req), "path", req.URL.Path, "error", err)
	} else {
		log.Debugw("request rejected", "request_id", requestID(req), "status", status, "error", err)
	}
	if werr := h.formatter.WriteError(w, req, status, err); werr != nil {
		log.Errorf("error writing error response: %v", werr)
	}
}

func (h *Handlers) respond(w http.ResponseWriter, req *http.Request, data any, headers map[string]string) {
	if err := h.formatter.WriteResponse(w, req, data, headers); err != nil {
		log.Errorf("error encoding response for %s: %v", req.URL.Path, err)
	}
}
