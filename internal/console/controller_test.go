package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hoteldesk/internal/client"
	"hoteldesk/internal/domain"
)

// fakeAPI is a minimal in-memory booking API behind httptest.
type fakeAPI struct {
	mu       sync.Mutex
	bookings map[int64]domain.Booking
	nextID   int64
	listHits int
	failList bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{bookings: map[int64]domain.Booking{}, nextID: 1}
}

func (f *fakeAPI) add(b domain.Booking) domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	b.ID = f.nextID
	f.nextID++
	f.bookings[b.ID] = b
	return b
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	writeOK := func(w http.ResponseWriter, status int, data any) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	}
	writeErr := func(w http.ResponseWriter, status int, code string) {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   map[string]string{"code": code, "message": code},
		})
	}

	mux.HandleFunc("/api/v1/bookings", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			f.listHits++
			if f.failList {
				writeErr(w, http.StatusInternalServerError, "INTERNAL_ERROR")
				return
			}
			out := make([]domain.Booking, 0, len(f.bookings))
			for _, b := range f.bookings {
				if q := r.URL.Query().Get("status"); q == "" || string(b.Status) == q {
					out = append(out, b)
				}
			}
			writeOK(w, http.StatusOK, out)
		case http.MethodPost:
			var req struct {
				RoomID  int64  `json:"room_id"`
				GuestID int64  `json:"guest_id"`
				Status  string `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			b := domain.Booking{RoomID: req.RoomID, GuestID: req.GuestID,
				Status: domain.BookingStatus(req.Status), TotalPrice: 220}
			b.ID = f.nextID
			f.nextID++
			f.bookings[b.ID] = b
			writeOK(w, http.StatusCreated, map[string]any{
				"booking": b,
				"billing": domain.Billing{InvoiceNumber: "INV-11223344", TotalAmount: 220},
				"actions": domain.AvailableActions(b.Status),
			})
		default:
			writeErr(w, http.StatusMethodNotAllowed, "VALIDATION_ERROR")
		}
	})

	mux.HandleFunc("/api/v1/bookings/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		id, tail, ok := parseBookingPath(r.URL.Path)
		if !ok {
			writeErr(w, http.StatusBadRequest, "VALIDATION_ERROR")
			return
		}
		b, exists := f.bookings[id]
		if !exists {
			writeErr(w, http.StatusNotFound, "NOT_FOUND")
			return
		}

		switch {
		case r.Method == http.MethodGet:
			writeOK(w, http.StatusOK, map[string]any{
				"booking": b, "billing": nil, "actions": domain.AvailableActions(b.Status),
			})
		case r.Method == http.MethodPatch && tail == "status":
			var req struct {
				Status string `json:"status"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			to := domain.BookingStatus(req.Status)
			if !domain.CanTransition(b.Status, to) {
				writeErr(w, http.StatusConflict, "INVALID_TRANSITION")
				return
			}
			b.Status = to
			f.bookings[id] = b
			writeOK(w, http.StatusOK, map[string]any{
				"booking": b, "billing": nil, "actions": domain.AvailableActions(b.Status),
			})
		case r.Method == http.MethodDelete:
			if b.Status.Terminal() {
				writeErr(w, http.StatusConflict, "BOOKING_FINALIZED")
				return
			}
			delete(f.bookings, id)
			writeOK(w, http.StatusOK, map[string]any{"deleted": true})
		default:
			writeErr(w, http.StatusMethodNotAllowed, "VALIDATION_ERROR")
		}
	})

	return mux
}

// parseBookingPath splits "/api/v1/bookings/<id>[/<tail>]".
func parseBookingPath(path string) (int64, string, bool) {
	rest := strings.TrimPrefix(path, "/api/v1/bookings/")
	idPart, tail, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, tail, true
}

func newTestController(t *testing.T, api *fakeAPI) (*Controller, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	c := client.New(srv.URL, client.NewSession("tok"))
	return NewController(c, zap.NewNop()), srv
}

func TestLoad_PopulatesList(t *testing.T) {
	api := newFakeAPI()
	api.add(domain.Booking{Status: domain.BookingConfirmed})
	api.add(domain.Booking{Status: domain.BookingCheckedIn})
	ctl, _ := newTestController(t, api)

	require.NoError(t, ctl.Load(context.Background()))
	assert.Len(t, ctl.Bookings(), 2)
}

func TestSetStatusFilter_Reloads(t *testing.T) {
	api := newFakeAPI()
	api.add(domain.Booking{Status: domain.BookingConfirmed})
	api.add(domain.Booking{Status: domain.BookingCheckedIn})
	ctl, _ := newTestController(t, api)

	require.NoError(t, ctl.SetStatusFilter(context.Background(), "checked_in"))
	require.Len(t, ctl.Bookings(), 1)
	assert.Equal(t, domain.BookingCheckedIn, ctl.Bookings()[0].Status)
}

func TestCreate_RefetchesFullList(t *testing.T) {
	api := newFakeAPI()
	ctl, _ := newTestController(t, api)
	require.NoError(t, ctl.Load(context.Background()))
	hitsBefore := api.listHits

	res, err := ctl.Create(context.Background(), client.BookingWrite{
		RoomID: 1, GuestID: 7,
		CheckIn:  time.Now(),
		CheckOut: time.Now().Add(48 * time.Hour),
		Status:   domain.BookingConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-11223344", res.Billing.InvoiceNumber)
	assert.Equal(t, hitsBefore+1, api.listHits, "create triggers one list refetch")
	assert.Len(t, ctl.Bookings(), 1)
}

func TestCheckOut_UpdatesListViaRefetch(t *testing.T) {
	api := newFakeAPI()
	b := api.add(domain.Booking{Status: domain.BookingCheckedIn})
	ctl, _ := newTestController(t, api)
	require.NoError(t, ctl.Load(context.Background()))

	res, err := ctl.CheckOut(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, res.Booking.Status)
	assert.Equal(t, []domain.Action{domain.ActionViewReceipt}, res.Actions)

	got, ok := ctl.Find(b.ID)
	require.True(t, ok)
	assert.Equal(t, domain.BookingCheckedOut, got.Status)
}

func TestCheckOut_RepeatRejectedListIntact(t *testing.T) {
	api := newFakeAPI()
	b := api.add(domain.Booking{Status: domain.BookingCheckedOut})
	ctl, _ := newTestController(t, api)
	require.NoError(t, ctl.Load(context.Background()))

	_, err := ctl.CheckOut(context.Background(), b.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_TRANSITION", apiErr.Code)
	assert.Len(t, ctl.Bookings(), 1, "failed mutation leaves the list alone")
}

func TestDelete_DeclinedConfirmSkipsRequest(t *testing.T) {
	api := newFakeAPI()
	b := api.add(domain.Booking{Status: domain.BookingConfirmed})
	ctl, _ := newTestController(t, api)
	require.NoError(t, ctl.Load(context.Background()))

	deleted, err := ctl.Delete(context.Background(), b.ID, func(domain.Booking) bool { return false })
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, api.bookings, 1, "declining the confirm must not delete")
}

func TestDelete_ConfirmedRemovesAndRefetches(t *testing.T) {
	api := newFakeAPI()
	b := api.add(domain.Booking{Status: domain.BookingConfirmed})
	ctl, _ := newTestController(t, api)
	require.NoError(t, ctl.Load(context.Background()))

	var asked domain.Booking
	deleted, err := ctl.Delete(context.Background(), b.ID, func(bk domain.Booking) bool {
		asked = bk
		return true
	})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, b.ID, asked.ID, "confirm sees the booking being deleted")
	assert.Empty(t, ctl.Bookings())
}

func TestLoad_FailureKeepsPreviousList(t *testing.T) {
	api := newFakeAPI()
	api.add(domain.Booking{Status: domain.BookingConfirmed})
	ctl, _ := newTestController(t, api)
	require.NoError(t, ctl.Load(context.Background()))

	api.failList = true
	err := ctl.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, ctl.Bookings(), 1, "stale list beats an empty screen")
}
