package buses

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	m "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/tnbus-gemini/gemini"
	"github.com/zjx20/tnbus-gemini/metrics"
	"github.com/zjx20/tnbus-gemini/util"
)

const errorPrefix = "Backend API Error: "

// Query params are pointers so that required means present. Text params are
// relayed as given, empty or padded; coordinates tolerate surrounding spaces.

type nearbyQuery struct {
	Lat *string `form:"lat" validate:"required"`
	Lng *string `form:"lng" validate:"required"`
}

type searchQuery struct {
	Source       *string `form:"source" validate:"required"`
	Destination  *string `form:"destination" validate:"required"`
	UserLocation string  `form:"userLocation"`
}

type boardQuery struct {
	StandName *string `form:"standName" validate:"required"`
}

// Handler serves the /api/buses endpoints. It holds no per-request state;
// client is shared by all requests.
type Handler struct {
	client   gemini.Client
	decoder  *form.Decoder
	validate *validator.Validate
}

func NewHandler(client gemini.Client) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return &Handler{client: client, decoder: form.NewDecoder(), validate: v}
}

// Routes returns the router to mount under /api/buses.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/nearby", h.Nearby)
	r.Get("/search", h.Search)
	r.Get("/board", h.Board)
	return r
}

func (h *Handler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := &nearbyQuery{}
	if !h.bind(w, r, q) {
		return
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(*q.Lat), 64)
	if err != nil {
		badRequest(w, r, fmt.Errorf("invalid parameter 'lat': %q", *q.Lat))
		return
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(*q.Lng), 64)
	if err != nil {
		badRequest(w, r, fmt.Errorf("invalid parameter 'lng': %q", *q.Lng))
		return
	}
	h.relay(w, r, "nearby", NearbyPrompt(lat, lng))
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := &searchQuery{}
	if !h.bind(w, r, q) {
		return
	}
	if q.UserLocation != "" {
		// accepted for compatibility, the prompt does not use it
		log.Debugf("search %q -> %q, userLocation %q ignored", *q.Source, *q.Destination, q.UserLocation)
	}
	h.relay(w, r, "search", SearchPrompt(*q.Source, *q.Destination))
}

func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	q := &boardQuery{}
	if !h.bind(w, r, q) {
		return
	}
	h.relay(w, r, "board", BoardPrompt(*q.StandName))
}

// bind decodes the query string into dst and checks that every required
// parameter is present. It writes a 400 and returns false on failure.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := h.decoder.Decode(dst, r.URL.Query()); err != nil {
		badRequest(w, r, err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			err = fmt.Errorf("required parameter '%s' is not present", errs[0].Field())
		}
		badRequest(w, r, err)
		return false
	}
	return true
}

func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	log.Debugf("bad request: %s", err)
	util.ErrorEvent(w, r, http.StatusBadRequest, err.Error())
}

// relay sends prompt upstream and writes the returned text unchanged. The
// upstream call outlives a client disconnect.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request, endpoint, prompt string) {
	logger := log.WithFields(log.Fields{
		"endpoint":   endpoint,
		"request_id": m.GetReqID(r.Context()),
	})
	logger.Debugf("prompt: %s", prompt)

	start := time.Now()
	text, err := h.client.GenerateText(context.WithoutCancel(r.Context()), prompt)
	took := time.Since(start)
	if err != nil {
		kind := gemini.KindOf(err)
		metrics.ObserveUpstream(endpoint, kind.String(), took)
		logger.WithField("kind", kind).Errorf("gemini err: %s", err)
		util.ErrorEvent(w, r, http.StatusInternalServerError, errorPrefix+err.Error())
		return
	}
	metrics.ObserveUpstream(endpoint, "ok", took)
	logger.Debugf("answer in %s: %s", took, text)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, text); err != nil {
		logger.Errorf("write response: %s", err)
	}
}
