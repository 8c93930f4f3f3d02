package http

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"

	"github.com/tanzeelaayaz69/kashcart/internal/logger"
	"github.com/tanzeelaayaz69/kashcart/internal/order"
)

type OrdersHandler struct {
	orders           *order.Service
	timeout          time.Duration
	clock            clockwork.Clock
	trackingInterval time.Duration
	riderInterval    time.Duration
}

func NewOrdersHandler(orders *order.Service, timeout time.Duration, clock clockwork.Clock, trackingInterval, riderInterval time.Duration) *OrdersHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &OrdersHandler{
		orders:           orders,
		timeout:          timeout,
		clock:            clock,
		trackingInterval: trackingInterval,
		riderInterval:    riderInterval,
	}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.orders.ListOrders(ctx, getSessionID(r.Context())))
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	o, ok := h.orders.GetOrder(ctx, getSessionID(r.Context()), chi.URLParam(r, "order_id"))
	if !ok {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}
	respondJSON(w, http.StatusOK, o)
}

type TrackingStepDTO struct {
	OrderID string `json:"order_id"`
	Step    int    `json:"step"`
	Title   string `json:"title"`
	Final   bool   `json:"final"`
}

type sseEvent struct {
	name string
	data interface{}
}

// GET /api/v1/orders/{order_id}/tracking?lat=&lng=
//
// Streams Server-Sent Events: "step" events from a fresh tracker starting at
// step 0, interleaved with "rider" position events. The stream ends after the
// final step or when the client goes away.
func (h *OrdersHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")

	lookupCtx, cancelLookup := context.WithTimeout(r.Context(), h.timeout)
	_, ok := h.orders.GetOrder(lookupCtx, getSessionID(r.Context()), orderID)
	cancelLookup()
	if !ok {
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
		return
	}

	dest, err := parseDestination(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_location", err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "streaming_unsupported", "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	events := make(chan sseEvent)
	send := func(ev sseEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	tracker := order.NewTracker()
	trackDone := make(chan error, 1)
	go func() {
		trackDone <- tracker.Run(ctx, h.clock, h.trackingInterval, func(s order.TrackingStep) {
			send(sseEvent{name: "step", data: TrackingStepDTO{
				OrderID: orderID,
				Step:    int(s),
				Title:   s.Title(),
				Final:   s == order.FinalStep,
			}})
		})
	}()

	rider := order.NewRider(dest)
	go func() {
		_ = rider.Run(ctx, h.clock, h.riderInterval, func(p order.Position) {
			send(sseEvent{name: "rider", data: p})
		})
	}()

	log := logger.FromContext(r.Context(), logger.Nop())
	for {
		select {
		case ev := <-events:
			if err := writeSSE(w, ev); err != nil {
				log.Debug().Err(err).Msg("tracking client went away")
				return
			}
			flusher.Flush()
		case err := <-trackDone:
			if err == nil {
				_ = writeSSE(w, sseEvent{name: "done", data: map[string]string{"order_id": orderID}})
				flusher.Flush()
			}
			return
		case <-ctx.Done():
			return
		}
	}
}

func writeSSE(w http.ResponseWriter, ev sseEvent) error {
	payload, err := json.Marshal(ev.data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, payload)
	return err
}

func parseDestination(r *http.Request) (order.Position, error) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" && lngStr == "" {
		return order.DefaultDestination, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || !finite(lat) || lat < -90 || lat > 90 {
		return order.Position{}, fmt.Errorf("lat must be a number between -90 and 90")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil || !finite(lng) || lng < -180 || lng > 180 {
		return order.Position{}, fmt.Errorf("lng must be a number between -180 and 180")
	}
	return order.Position{Lat: lat, Lng: lng}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
