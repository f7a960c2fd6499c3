package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"speaker-booking/internal/data/entity"
	"speaker-booking/internal/data/memory"
	"speaker-booking/pkg/utils"

	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	cfg := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
		OTP:     utils.OTPConfig{ExpiryMinutes: 10, Length: 6},
		Slots: utils.SlotConfig{
			WindowDays:  7,
			StartHour:   9,
			EndHour:     16,
			BookedRatio: 0.3,
		},
		RateLimit: utils.RateLimitConfig{RPS: 100, Burst: 100},
	}

	repo := memory.NewRepository(memory.NewStore(zap.NewNop()))
	if err := memory.Seed(context.Background(), repo, cfg.Slots, zap.NewNop()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return Wiring(repo, cfg, zap.NewNop())
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func login(t *testing.T, app *App) string {
	t.Helper()

	rec, env := doJSON(t, app, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "sam@example.com",
		"password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		t.Fatalf("decode auth: %v", err)
	}
	if auth.Token == "" {
		t.Fatal("empty session token")
	}
	return auth.Token
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}

func TestSpeakerCatalogIsPublic(t *testing.T) {
	app := newTestApp(t)

	rec, env := doJSON(t, app, http.MethodGet, "/api/speakers?search=Sarah", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var page struct {
		Data []struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"data"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if page.Pagination.Total != 1 || len(page.Data) != 1 {
		t.Fatalf("search Sarah: total %d, rows %d", page.Pagination.Total, len(page.Data))
	}
	if page.Data[0].FirstName != "Sarah" || page.Data[0].LastName != "Williams" {
		t.Errorf("got %s %s", page.Data[0].FirstName, page.Data[0].LastName)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	app := newTestApp(t)

	date := time.Now().Format(entity.DateLayout)
	path := fmt.Sprintf("/api/speakers/%s/slots?date=%s", memory.SpeakerAlexID, date)

	rec, env := doJSON(t, app, http.MethodGet, path, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var avail struct {
		Date  string `json:"date"`
		Slots []struct {
			IsBooked bool `json:"is_booked"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(env.Data, &avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	if avail.Date != date {
		t.Errorf("date = %s, want %s", avail.Date, date)
	}
	for i, slot := range avail.Slots {
		if slot.IsBooked {
			t.Errorf("slot %d booked in availability view", i)
		}
	}

	// Missing date is a validation error.
	rec, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/speakers/%s/slots", memory.SpeakerAlexID), "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing date: status = %d, want 400", rec.Code)
	}
}

func TestBookingRoutesRequireAuth(t *testing.T) {
	app := newTestApp(t)

	rec, _ := doJSON(t, app, http.MethodPost, "/api/bookings", "", map[string]string{})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("create without token: status = %d, want 401", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodGet, "/api/user/bookings", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("list without token: status = %d, want 401", rec.Code)
	}
}

func TestBookingWorkflowEndToEnd(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app)

	// 1. Pick an open slot for Alex today.
	date := time.Now().Format(entity.DateLayout)
	_, env := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/speakers/%s/slots?date=%s", memory.SpeakerAlexID, date), "", nil)

	var avail struct {
		Slots []struct {
			ID string `json:"id"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(env.Data, &avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	if len(avail.Slots) == 0 {
		t.Fatal("no open slots today")
	}
	slotID := avail.Slots[0].ID

	// 2. Reserve it.
	rec, env := doJSON(t, app, http.MethodPost, "/api/bookings", token, map[string]string{
		"speaker_id": memory.SpeakerAlexID.String(),
		"slot_id":    slotID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create booking: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var booking struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if booking.Status != "pending" {
		t.Errorf("status after create = %s, want pending", booking.Status)
	}

	// 3. Confirm it.
	rec, env = doJSON(t, app, http.MethodPut, "/api/bookings/"+booking.ID+"/confirm", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm booking: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("decode confirmed booking: %v", err)
	}
	if booking.Status != "confirmed" {
		t.Errorf("status after confirm = %s, want confirmed", booking.Status)
	}

	// 4. The slot is gone from availability.
	_, env = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/speakers/%s/slots?date=%s", memory.SpeakerAlexID, date), "", nil)
	if err := json.Unmarshal(env.Data, &avail); err != nil {
		t.Fatalf("decode availability: %v", err)
	}
	for _, slot := range avail.Slots {
		if slot.ID == slotID {
			t.Error("confirmed slot still listed as available")
		}
	}

	// 5. Reserving the same slot again conflicts.
	rec, env = doJSON(t, app, http.MethodPost, "/api/bookings", token, map[string]string{
		"speaker_id": memory.SpeakerAlexID.String(),
		"slot_id":    slotID,
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("rebooking taken slot: status = %d, want 409", rec.Code)
	}

	// 6. It shows up in the bookings view.
	rec, env = doJSON(t, app, http.MethodGet, "/api/user/bookings?status=confirmed", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list bookings: status = %d", rec.Code)
	}

	var list struct {
		Upcoming []struct {
			ID string `json:"id"`
		} `json:"upcoming"`
	}
	if err := json.Unmarshal(env.Data, &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	found := false
	for _, b := range list.Upcoming {
		if b.ID == booking.ID {
			found = true
		}
	}
	if !found {
		t.Error("confirmed booking missing from upcoming list")
	}
}

func TestRegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)

	rec, env := doJSON(t, app, http.MethodPost, "/api/register", "", map[string]any{
		"first_name":       "Jordan",
		"last_name":        "Lee",
		"email":            "jordan@example.com",
		"password":         "secret123",
		"confirm_password": "secret123",
		"user_type":        "user",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var auth struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &auth); err != nil {
		t.Fatalf("decode auth: %v", err)
	}
	if auth.Token == "" {
		t.Fatal("register returned no token")
	}

	// The fresh session works.
	rec, _ = doJSON(t, app, http.MethodGet, "/api/user/profile", auth.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile with new session: status = %d", rec.Code)
	}

	// Logout kills it.
	rec, _ = doJSON(t, app, http.MethodPost, "/api/logout", auth.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: status = %d", rec.Code)
	}

	rec, _ = doJSON(t, app, http.MethodGet, "/api/user/profile", auth.Token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("profile after logout: status = %d, want 401", rec.Code)
	}
}
