package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/selene/internal/db"
	"github.com/terraincognita07/selene/internal/models"
	"github.com/terraincognita07/selene/internal/services"
)

const testSecretKey = "test_secret_key"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	repo := services.NewCycleRepository(db.NewMemoryProfileStore())
	sync := services.NewCalendarSynchronizer(services.NewMemoryCalendarProvider(), log)
	cycles := services.NewCycleService(repo, sync, log)
	handler := NewHandler(cycles, testSecretKey, log)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func bearerToken(t *testing.T, userID string) string {
	t.Helper()

	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecretKey))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeProfile(t *testing.T, response *http.Response) models.UserCycleProfile {
	t.Helper()
	defer response.Body.Close()

	var profile models.UserCycleProfile
	if err := json.NewDecoder(response.Body).Decode(&profile); err != nil {
		t.Fatalf("decode profile failed: %v", err)
	}
	return profile
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	response := doJSON(t, app, http.MethodGet, "/healthz", "", "")
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	response := doJSON(t, app, http.MethodGet, "/api/profile", "", "")
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", response.StatusCode)
	}

	response = doJSON(t, app, http.MethodGet, "/api/profile", "Bearer not-a-token", "")
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", response.StatusCode)
	}
}

func TestPeriodFlowOverHTTP(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := bearerToken(t, "user-1")

	response := doJSON(t, app, http.MethodPost, "/api/profile/period/start", token, `{"date":"2024-01-01"}`)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("start period: expected 200, got %d", response.StatusCode)
	}
	profile := decodeProfile(t, response)
	if profile.LastPeriodStart == nil {
		t.Fatal("expected last period start set")
	}

	response = doJSON(t, app, http.MethodPost, "/api/profile/period/end", token, `{"date":{"seconds":1704499200,"nanos":0}}`)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("end period: expected 200, got %d", response.StatusCode)
	}
	profile = decodeProfile(t, response)
	if len(profile.CycleHistory) != 1 {
		t.Fatalf("expected one cycle recorded, got %d", len(profile.CycleHistory))
	}
}

func TestStartPeriodRejectsBadDate(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := bearerToken(t, "user-1")

	for _, body := range []string{`{"date":"garbage"}`, `{"date":null}`, `{}`} {
		response := doJSON(t, app, http.MethodPost, "/api/profile/period/start", token, body)
		if response.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, response.StatusCode)
		}
	}
}

func TestEndPeriodWithoutStartIsUnprocessable(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := bearerToken(t, "user-1")

	response := doJSON(t, app, http.MethodPost, "/api/profile/period/end", token, `{"date":"2024-01-06"}`)
	if response.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", response.StatusCode)
	}
}

func TestAppendSymptomOverHTTP(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := bearerToken(t, "user-1")

	doJSON(t, app, http.MethodPost, "/api/profile/period/start", token, `{"date":"2024-01-01"}`)
	doJSON(t, app, http.MethodPost, "/api/profile/period/end", token, `{"date":"2024-01-06"}`)

	response := doJSON(t, app, http.MethodPost, "/api/profile/cycles/0/symptoms", token,
		`{"id":"cramps","intensity":2,"date":"2024-01-03"}`)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", response.StatusCode)
	}
	profile := decodeProfile(t, response)
	if len(profile.CycleHistory[0].Symptoms) != 1 {
		t.Fatalf("expected one symptom, got %d", len(profile.CycleHistory[0].Symptoms))
	}
	if profile.CycleHistory[0].Symptoms[0].Name != "Cramps" {
		t.Fatalf("expected catalog name, got %q", profile.CycleHistory[0].Symptoms[0].Name)
	}

	response = doJSON(t, app, http.MethodPost, "/api/profile/cycles/9/symptoms", token,
		`{"id":"cramps","intensity":2,"date":"2024-01-03"}`)
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for bad index, got %d", response.StatusCode)
	}

	response = doJSON(t, app, http.MethodPost, "/api/profile/cycles/0/symptoms", token,
		`{"id":"time_travel","intensity":2,"date":"2024-01-03"}`)
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unknown symptom, got %d", response.StatusCode)
	}
}

func TestPredictionsEndpoint(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	token := bearerToken(t, "user-1")

	doJSON(t, app, http.MethodPost, "/api/profile/period/start", token, `{"date":"2024-01-01"}`)

	response := doJSON(t, app, http.MethodGet, "/api/profile/predictions", token, "")
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	defer response.Body.Close()

	var window services.PredictionWindow
	if err := json.NewDecoder(response.Body).Decode(&window); err != nil {
		t.Fatalf("decode window failed: %v", err)
	}
	expected := time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC)
	if !window.NextPeriodDate.Equal(expected) {
		t.Fatalf("expected next period %v, got %v", expected, window.NextPeriodDate)
	}
}

func TestProfileNotFound(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	response := doJSON(t, app, http.MethodGet, "/api/profile", bearerToken(t, "nobody"), "")
	if response.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
}
