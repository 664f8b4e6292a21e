package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/billing"
	"hoteldesk/internal/domain"
)

func ok(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
}

func fail(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": message},
	})
}

func TestLogin_StoresTokenOnSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/auth/login", r.URL.Path)
		ok(w, http.StatusOK, map[string]any{
			"token": "tok-123",
			"user":  domain.User{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin},
		})
	}))
	defer srv.Close()

	session := NewSession("")
	c := New(srv.URL, session)

	user, err := c.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, "tok-123", session.Token())
}

func TestDo_SendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		ok(w, http.StatusOK, []domain.Room{})
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession("tok-abc"))
	_, err := c.Rooms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestUnauthorized_InvalidatesSessionOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "token expired")
	}))
	defer srv.Close()

	session := NewSession("stale")
	c := New(srv.URL, session)

	_, err := c.Bookings(context.Background(), "")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "UNAUTHORIZED", apiErr.Code)

	select {
	case <-session.Invalidated():
	default:
		t.Fatal("session not invalidated after 401")
	}
	assert.Empty(t, session.Token())

	// a second 401 must not panic on the closed channel
	_, err = c.Bookings(context.Background(), "")
	require.Error(t, err)
}

func TestCreateBooking_WireFormatAndHint(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		ok(w, http.StatusCreated, BookingResult{
			Booking: &domain.Booking{ID: 9, TotalPrice: 220, Status: domain.BookingConfirmed},
			Billing: &domain.Billing{InvoiceNumber: "INV-AB12CD34", TotalAmount: 220},
			Actions: domain.AvailableActions(domain.BookingConfirmed),
		})
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession("tok"))
	checkIn := time.Date(2026, 4, 1, 15, 0, 0, 0, time.UTC)
	quote := billing.Quote(100, checkIn, checkIn.Add(48*time.Hour))

	res, err := c.CreateBooking(context.Background(), BookingWrite{
		RoomID:         1,
		GuestID:        7,
		CheckIn:        checkIn,
		CheckOut:       checkIn.Add(48 * time.Hour),
		NumberOfGuests: 2,
		Status:         domain.BookingConfirmed,
		Quote:          &quote,
		PaymentMethod:  "card",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-04-01 15:00:00", got["check_in"])
	assert.Equal(t, "2026-04-03 15:00:00", got["check_out"])
	hint := got["billing"].(map[string]any)
	assert.Equal(t, 220.0, hint["total_amount"])
	assert.Equal(t, "card", hint["payment_method"])

	assert.Equal(t, "INV-AB12CD34", res.Billing.InvoiceNumber)
	assert.Contains(t, res.Actions, domain.ActionCheckOut)
}

func TestBookings_StatusFilterQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		ok(w, http.StatusOK, []domain.Booking{{ID: 1, Status: domain.BookingCheckedIn}})
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession("tok"))
	bookings, err := c.Bookings(context.Background(), "checked_in")
	require.NoError(t, err)
	assert.Equal(t, "status=checked_in", gotQuery)
	require.Len(t, bookings, 1)
}

func TestAPIError_SurfacesCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fail(w, http.StatusConflict, "BOOKING_FINALIZED", "Booking is checked out or cancelled")
	}))
	defer srv.Close()

	c := New(srv.URL, NewSession("tok"))
	err := c.DeleteBooking(context.Background(), 3)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "BOOKING_FINALIZED", apiErr.Code)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.EqualError(t, err, "BOOKING_FINALIZED: Booking is checked out or cancelled")
}
