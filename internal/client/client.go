// Package client is the console's HTTP access to the booking API. It
// speaks the server's JSON envelope, carries the session's bearer
// token, and invalidates the session on any 401 so the console can
// drop back to login. The standard net/http client is enough here;
// the API surface is small and the envelope does the heavy lifting.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hoteldesk/internal/billing"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/pkg/datetime"
)

// APIError is the error block of a failed envelope.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.session.invalidate()
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response for %s %s: %w", method, path, err)
	}

	if !env.Success {
		apiErr := env.Error
		if apiErr == nil {
			apiErr = &APIError{Code: "UNKNOWN", Message: http.StatusText(resp.StatusCode)}
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// --- auth ---

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login exchanges credentials for a token and stores it on the session.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, error) {
	var out loginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	c.session.SetToken(out.Token)
	return out.User, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// --- rooms and guests ---

func (c *Client) Rooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) Guests(ctx context.Context) ([]domain.Guest, error) {
	var guests []domain.Guest
	if err := c.do(ctx, http.MethodGet, "/guests", nil, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

// --- bookings ---

// BookingResult is a booking write or read response: the record, its
// billing, and the workflow actions its status permits.
type BookingResult struct {
	Booking *domain.Booking `json:"booking"`
	Billing *domain.Billing `json:"billing"`
	Actions []domain.Action `json:"actions"`
}

// BookingWrite is the console-side write payload. Dates are typed; the
// client serializes them in the wire format on the way out.
type BookingWrite struct {
	RoomID         int64
	GuestID        int64
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Status         domain.BookingStatus
	Notes          string

	// Quote is the locally computed amount summary, sent along as a
	// hint. The server recomputes and its figures win.
	Quote         *billing.Breakdown
	PaymentMethod string
}

type billingWire struct {
	RoomCharges   float64 `json:"room_charges"`
	TaxAmount     float64 `json:"tax_amount"`
	TotalAmount   float64 `json:"total_amount"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

type bookingWire struct {
	RoomID         int64        `json:"room_id"`
	GuestID        int64        `json:"guest_id"`
	CheckIn        string       `json:"check_in"`
	CheckOut       string       `json:"check_out"`
	NumberOfGuests int          `json:"number_of_guests"`
	Status         string       `json:"status,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	Billing        *billingWire `json:"billing,omitempty"`
}

func (w BookingWrite) wire() bookingWire {
	out := bookingWire{
		RoomID:         w.RoomID,
		GuestID:        w.GuestID,
		CheckIn:        datetime.Format(w.CheckIn),
		CheckOut:       datetime.Format(w.CheckOut),
		NumberOfGuests: w.NumberOfGuests,
		Status:         string(w.Status),
		Notes:          w.Notes,
	}
	if w.Quote != nil {
		out.Billing = &billingWire{
			RoomCharges:   w.Quote.RoomCharges,
			TaxAmount:     w.Quote.TaxAmount,
			TotalAmount:   w.Quote.TotalAmount,
			PaymentMethod: w.PaymentMethod,
		}
	}
	return out
}

func (c *Client) Bookings(ctx context.Context, status string) ([]domain.Booking, error) {
	path := "/bookings"
	if status != "" {
		path += "?status=" + status
	}
	var bookings []domain.Booking
	if err := c.do(ctx, http.MethodGet, path, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) Booking(ctx context.Context, id int64) (*BookingResult, error) {
	var out BookingResult
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, w BookingWrite) (*BookingResult, error) {
	var out BookingResult
	if err := c.do(ctx, http.MethodPost, "/bookings", w.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int64, w BookingWrite) (*BookingResult, error) {
	var out BookingResult
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/bookings/%d", id), w.wire(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ChangeBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*BookingResult, error) {
	var out BookingResult
	err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d/status", id),
		map[string]string{"status": string(status)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d", id), nil, nil)
}
