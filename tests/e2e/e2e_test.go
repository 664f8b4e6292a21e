package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hoteldesk/internal/database"
	"hoteldesk/internal/middleware"
	"hoteldesk/internal/modules/auth"
	"hoteldesk/internal/modules/booking"
	"hoteldesk/internal/modules/guest"
	"hoteldesk/internal/modules/room"
	"hoteldesk/internal/pkg/datetime"
	jwtsvc "hoteldesk/internal/pkg/jwt"
	"hoteldesk/internal/repository"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

// ListResponse is for endpoints whose data is an array.
type ListResponse struct {
	Success bool                     `json:"success"`
	Data    []map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail             `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, repository.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	roomHandler := room.NewHandler(room.NewService(roomRepo))
	guestHandler := guest.NewHandler(guest.NewService(guestRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, roomRepo, guestRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterRoutes(v1.Group("/auth"))

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(jwtService))
	{
		roomHandler.RegisterRoutes(protected)
		guestHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
	}

	return &E2ETestSuite{router: r, db: db}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

func parseListResponse(t *testing.T, w *httptest.ResponseRecorder) *ListResponse {
	t.Helper()
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp),
		"Status: %d, Body: %s", w.Code, w.Body.String())
	return &resp
}

// adminToken bootstraps the admin account and signs in.
func (s *E2ETestSuite) adminToken(t *testing.T) string {
	t.Helper()

	w := s.makeRequest("POST", "/api/v1/auth/create-admin", map[string]interface{}{
		"email":    "admin@test.com",
		"password": "Password123!",
		"name":     "Admin",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "admin@test.com",
		"password": "Password123!",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := parseResponse(t, w)
	return resp.Data["token"].(string)
}

func (s *E2ETestSuite) createRoom(t *testing.T, token, number, roomType string, price float64, status string) int64 {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/rooms", map[string]interface{}{
		"room_number":     number,
		"type":            roomType,
		"capacity":        2,
		"price_per_night": price,
		"status":          status,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	return int64(resp.Data["id"].(float64))
}

func (s *E2ETestSuite) createGuest(t *testing.T, token, first, last, email string) int64 {
	t.Helper()
	w := s.makeRequest("POST", "/api/v1/guests", map[string]interface{}{
		"first_name":   first,
		"last_name":    last,
		"email":        email,
		"phone_number": "+1 555 000 1111",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := parseResponse(t, w)
	return int64(resp.Data["id"].(float64))
}

func TestFlow1_AdminBootstrapAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	token := suite.adminToken(t)
	require.NotEmpty(t, token)

	t.Run("second create-admin is refused", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/create-admin", map[string]interface{}{
			"email":    "other@test.com",
			"password": "Password123!",
			"name":     "Other",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
		resp := parseResponse(t, w)
		assert.Equal(t, "ADMIN_EXISTS", resp.Error.Code)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "admin@test.com",
			"password": "wrong",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bookings", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow2_BookingRoundTrip(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.adminToken(t)

	roomID := suite.createRoom(t, token, "101", "standard", 100, "available")
	guestID := suite.createGuest(t, token, "Ada", "Byron", "ada@test.com")

	checkIn := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(48 * time.Hour)

	var bookingID int64
	t.Run("POST /bookings prices the stay server-side", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":          roomID,
			"guest_id":         guestID,
			"check_in":         datetime.Format(checkIn),
			"check_out":        datetime.Format(checkOut),
			"number_of_guests": 2,
			"billing": map[string]interface{}{
				// deliberately wrong client amounts; the server must ignore them
				"room_charges": 1,
				"tax_amount":   1,
				"total_amount": 3,
			},
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		b := resp.Data["booking"].(map[string]interface{})
		bookingID = int64(b["id"].(float64))
		assert.Equal(t, "confirmed", b["status"])
		assert.Equal(t, 220.0, b["total_price"])

		bl := resp.Data["billing"].(map[string]interface{})
		assert.Equal(t, 200.0, bl["room_charges"])
		assert.Equal(t, 20.0, bl["tax_amount"])
		assert.Equal(t, 220.0, bl["total_amount"])
		assert.Regexp(t, "^INV-[0-9A-F]{8}$", bl["invoice_number"])

		actions := resp.Data["actions"].([]interface{})
		assert.Contains(t, actions, "check_out")
		assert.Contains(t, actions, "delete")
	})

	t.Run("GET /bookings returns the stored total", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/bookings", nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseListResponse(t, w)
		require.Len(t, resp.Data, 1)
		assert.Equal(t, 220.0, resp.Data[0]["total_price"])
	})

	t.Run("PUT keeps the invoice number on edit", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/bookings/%d", bookingID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		before := parseResponse(t, w).Data["billing"].(map[string]interface{})["invoice_number"]

		w = suite.makeRequest("PUT", fmt.Sprintf("/api/v1/bookings/%d", bookingID), map[string]interface{}{
			"room_id":          roomID,
			"guest_id":         guestID,
			"check_in":         datetime.Format(checkIn),
			"check_out":        datetime.Format(checkIn.Add(72 * time.Hour)),
			"number_of_guests": 2,
			"notes":            "extended by a night",
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, 330.0, b["total_price"])
		bl := resp.Data["billing"].(map[string]interface{})
		assert.Equal(t, before, bl["invoice_number"])
	})
}

func TestFlow3_StatusWorkflow(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.adminToken(t)

	roomID := suite.createRoom(t, token, "201", "deluxe", 180, "available")
	guestID := suite.createGuest(t, token, "Grace", "Hopper", "grace@test.com")

	checkIn := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"room_id":          roomID,
		"guest_id":         guestID,
		"check_in":         datetime.Format(checkIn),
		"check_out":        datetime.Format(checkIn.Add(24 * time.Hour)),
		"number_of_guests": 1,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	bookingID := int64(parseResponse(t, w).Data["booking"].(map[string]interface{})["id"].(float64))

	statusPath := fmt.Sprintf("/api/v1/bookings/%d/status", bookingID)
	bookingPath := fmt.Sprintf("/api/v1/bookings/%d", bookingID)

	t.Run("check-out succeeds once", func(t *testing.T) {
		w := suite.makeRequest("PATCH", statusPath, map[string]interface{}{"status": "checked_out"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		b := resp.Data["booking"].(map[string]interface{})
		assert.Equal(t, "checked_out", b["status"])
		actions := resp.Data["actions"].([]interface{})
		assert.Equal(t, []interface{}{"view_receipt"}, actions)
	})

	t.Run("repeat check-out is rejected", func(t *testing.T) {
		w := suite.makeRequest("PATCH", statusPath, map[string]interface{}{"status": "checked_out"}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_TRANSITION", parseResponse(t, w).Error.Code)
	})

	t.Run("edit after check-out is rejected", func(t *testing.T) {
		w := suite.makeRequest("PUT", bookingPath, map[string]interface{}{
			"room_id":          roomID,
			"guest_id":         guestID,
			"check_in":         datetime.Format(checkIn),
			"check_out":        datetime.Format(checkIn.Add(48 * time.Hour)),
			"number_of_guests": 1,
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "BOOKING_FINALIZED", parseResponse(t, w).Error.Code)
	})

	t.Run("delete after check-out is rejected", func(t *testing.T) {
		w := suite.makeRequest("DELETE", bookingPath, nil, token)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "BOOKING_FINALIZED", parseResponse(t, w).Error.Code)
	})

	t.Run("receipt data still readable", func(t *testing.T) {
		w := suite.makeRequest("GET", bookingPath, nil, token)
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		bl := resp.Data["billing"].(map[string]interface{})
		assert.NotEmpty(t, bl["invoice_number"])
	})
}

func TestFlow4_RoomAvailabilityGuard(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.adminToken(t)

	occupiedID := suite.createRoom(t, token, "202", "deluxe", 220, "occupied")
	guestID := suite.createGuest(t, token, "Alan", "Turing", "alan@test.com")

	checkIn := time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC)
	w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
		"room_id":          occupiedID,
		"guest_id":         guestID,
		"check_in":         datetime.Format(checkIn),
		"check_out":        datetime.Format(checkIn.Add(24 * time.Hour)),
		"number_of_guests": 1,
	}, token)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "BOOKING_CONFLICT", parseResponse(t, w).Error.Code)
}

func TestFlow5_InvalidStay(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.adminToken(t)

	roomID := suite.createRoom(t, token, "301", "suite", 400, "available")
	guestID := suite.createGuest(t, token, "Edsger", "Dijkstra", "edsger@test.com")

	checkIn := time.Date(2026, 9, 5, 15, 0, 0, 0, time.UTC)

	t.Run("check-out equal to check-in rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":          roomID,
			"guest_id":         guestID,
			"check_in":         datetime.Format(checkIn),
			"check_out":        datetime.Format(checkIn),
			"number_of_guests": 1,
		}, token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sub-day stay books at zero", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/bookings", map[string]interface{}{
			"room_id":          roomID,
			"guest_id":         guestID,
			"check_in":         datetime.Format(checkIn),
			"check_out":        datetime.Format(checkIn.Add(6 * time.Hour)),
			"number_of_guests": 1,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		b := parseResponse(t, w).Data["booking"].(map[string]interface{})
		assert.Equal(t, 0.0, b["total_price"])
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
