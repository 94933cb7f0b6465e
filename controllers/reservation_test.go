// controllers/reservation_test.go
package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canchaclub-backend/config"
	"canchaclub-backend/models"
	"canchaclub-backend/routes"
	"canchaclub-backend/utils"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Court{}, &models.Reservation{}, &models.RecurringReservation{}, &models.AdminUser{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&models.Court{Name: "Cancha 1", Type: "padel", HourlyPrice: 10000, Active: true}).Error; err != nil {
		t.Fatalf("seed court: %v", err)
	}

	config.DB = db
	return routes.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
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
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken("test-admin-id", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func TestHealthEndpoint(t *testing.T) {
	r := setupTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/api/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/reservas/disponibilidad?fecha=2024-06-10", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing cancha_id should be 400, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/reservas/disponibilidad?cancha_id=1&fecha=2024-06-10", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var slots []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("expected 6 slots, got %d", len(slots))
	}
	if slots[0]["horario"] != "17:00" || slots[0]["disponible"] != true {
		t.Errorf("first slot = %v", slots[0])
	}
}

func TestBookingFlow(t *testing.T) {
	r := setupTestRouter(t)

	payload := map[string]any{
		"cancha_id":        1,
		"fecha":            "2024-06-10",
		"horario_inicio":   "18:00",
		"cliente_nombre":   "Juan Pérez",
		"cliente_whatsapp": "+5491144445555",
		"estado_pago":      "completo",
	}
	w := doJSON(t, r, http.MethodPost, "/api/reservas", payload, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	reserva, ok := body["reserva"].(map[string]any)
	if !ok {
		t.Fatalf("missing reserva in %v", body)
	}
	if reserva["monto_pagado"] != float64(10000) {
		t.Errorf("monto_pagado = %v", reserva["monto_pagado"])
	}
	if reserva["horario_fin"] != "19:00:00" {
		t.Errorf("horario_fin = %v", reserva["horario_fin"])
	}

	// Same slot again is a conflict.
	w = doJSON(t, r, http.MethodPost, "/api/reservas", payload, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate should be 409, got %d: %s", w.Code, w.Body.String())
	}
	if decodeBody(t, w)["error"] != "Este horario ya está ocupado" {
		t.Errorf("conflict message = %s", w.Body.String())
	}

	// The grid now shows the slot occupied.
	w = doJSON(t, r, http.MethodGet, "/api/reservas/disponibilidad?cancha_id=1&fecha=2024-06-10", nil, "")
	var slots []map[string]any
	json.Unmarshal(w.Body.Bytes(), &slots)
	for _, s := range slots {
		if s["horario"] == "18:00" && s["disponible"] != false {
			t.Errorf("18:00 should be occupied")
		}
	}

	// Missing fields come back as a 400 naming them.
	w = doJSON(t, r, http.MethodPost, "/api/reservas", map[string]any{"cancha_id": 1}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("incomplete payload should be 400, got %d", w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/reservas", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token should be 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/reservas", nil, "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token should be 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/reservas", nil, adminToken(t))
	if w.Code != http.StatusOK {
		t.Fatalf("valid token should pass, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPaymentAndCancelEndpoints(t *testing.T) {
	r := setupTestRouter(t)
	token := adminToken(t)

	payload := map[string]any{
		"cancha_id":        1,
		"fecha":            "2024-06-10",
		"horario_inicio":   "19:00",
		"cliente_nombre":   "Ana",
		"cliente_whatsapp": "+5491100001111",
		"estado_pago":      "seña",
	}
	w := doJSON(t, r, http.MethodPost, "/api/reservas", payload, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	reserva := decodeBody(t, w)["reserva"].(map[string]any)
	id := int(reserva["id"].(float64))
	if reserva["monto_pagado"] != float64(5000) {
		t.Errorf("deposit monto_pagado = %v", reserva["monto_pagado"])
	}

	w = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/reservas/%d/pago", id),
		map[string]any{"estado_pago": "completo"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update payment: %d %s", w.Code, w.Body.String())
	}
	updated := decodeBody(t, w)["reserva"].(map[string]any)
	if updated["monto_pagado"] != float64(10000) {
		t.Errorf("after completo monto_pagado = %v", updated["monto_pagado"])
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/reservas/%d", id), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}

	// The freed slot books again.
	w = doJSON(t, r, http.MethodPost, "/api/reservas", payload, "")
	if w.Code != http.StatusCreated {
		t.Errorf("rebooking freed slot: %d %s", w.Code, w.Body.String())
	}
}

func TestRecurringEndpoints(t *testing.T) {
	r := setupTestRouter(t)
	token := adminToken(t)

	payload := map[string]any{
		"cancha_id":        1,
		"cliente_nombre":   "Liga de los lunes",
		"cliente_whatsapp": "+5491166667777",
		"dia_semana":       3,
		"horario_inicio":   "18:00",
		"fecha_inicio":     "2024-03-04",
	}

	w := doJSON(t, r, http.MethodPost, "/api/reservas/recurrente", payload, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("recurring create without token should be 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/reservas/recurrente", payload, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("recurring create: %d %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["generadas"] != float64(12) || body["fallidas"] != float64(0) {
		t.Errorf("generadas = %v, fallidas = %v", body["generadas"], body["fallidas"])
	}
	patron := body["patron"].(map[string]any)
	// 2024-03-04 is a Monday; the declared Wednesday is discarded.
	if patron["dia_semana"] != float64(1) {
		t.Errorf("dia_semana = %v, want 1", patron["dia_semana"])
	}
	patternID := int(patron["id"].(float64))

	w = doJSON(t, r, http.MethodGet, "/api/reservas/recurrente", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list recurring: %d", w.Code)
	}
	var patterns []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &patterns); err != nil {
		t.Fatalf("decode patterns: %v", err)
	}
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/reservas/recurrente/%d", patternID), nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete recurring: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/reservas/recurrente", nil, token)
	patterns = nil
	json.Unmarshal(w.Body.Bytes(), &patterns)
	if len(patterns) != 0 {
		t.Errorf("deleted pattern still listed: %v", patterns)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/reservas/recurrente/9999", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing pattern should be 404, got %d", w.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	r := setupTestRouter(t)

	admin := models.AdminUser{Username: "admin", Password: "secreto123", Name: "Administrador"}
	if err := config.DB.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	w := doJSON(t, r, http.MethodPost, "/api/auth/login",
		map[string]any{"username": "admin", "password": "incorrecta"}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password should be 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login",
		map[string]any{"username": "admin", "password": "secreto123"}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	token, _ := decodeBody(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("missing token in response")
	}

	w = doJSON(t, r, http.MethodGet, "/api/auth/verify", nil, token)
	if w.Code != http.StatusOK {
		t.Errorf("verify with fresh token: %d %s", w.Code, w.Body.String())
	}
}
