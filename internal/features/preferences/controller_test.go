package preferences

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-dashboard/internal/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func newTestApp(repo *MockPreferencesRepo) *fiber.App {
	service, _ := newTestService(repo)
	controller := NewPreferencesController(service, zap.NewNop())
	route := NewPreferencesApi(controller, &config.Config{SkipAuth: true})

	app := fiber.New()
	route.Setup(app)
	return app
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
	return out
}

func TestGetDashboardRequiresUserID(t *testing.T) {
	app := newTestApp(&MockPreferencesRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "User ID is required" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestGetDashboardNewUserReturnsNull(t *testing.T) {
	app := newTestApp(&MockPreferencesRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/?userId=new-user", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if body["preferences"] != nil {
		t.Errorf("preferences = %v, want null", body["preferences"])
	}
}

func TestSaveDashboardRoundTrip(t *testing.T) {
	repo := &MockPreferencesRepo{}
	app := newTestApp(repo)

	post := func(layoutName string) *http.Response {
		payload := map[string]interface{}{
			"userId": "john@example.com",
			"layout": map[string]interface{}{
				"name":          layoutName,
				"gridCols":      12,
				"gridRowHeight": 150,
				"widgets": []map[string]interface{}{
					{"id": "w1", "type": "card", "x": 0, "y": 0, "w": 4, "h": 2},
				},
			},
		}
		body, _ := json.Marshal(payload)
		req := httptest.NewRequest(http.MethodPost, "/api/dashboard/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test() error = %v", err)
		}
		return resp
	}

	resp := post("Home")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("first save status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	// The mock keeps no state between finds, so wire the created doc back
	// in to simulate the second request hitting an existing document.
	repo.Doc = repo.CreatedDoc

	resp = post("Work")
	body := decodeBody(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("second save status = %d, want 200", resp.StatusCode)
	}

	prefs, _ := body["preferences"].(map[string]interface{})
	layouts, _ := prefs["layouts"].([]interface{})
	if len(layouts) != 2 {
		t.Errorf("layouts = %d, want 2", len(layouts))
	}
	if prefs["activeLayoutName"] != "Work" {
		t.Errorf("activeLayoutName = %v, want Work", prefs["activeLayoutName"])
	}
}

func TestSaveDashboardValidationDetails(t *testing.T) {
	app := newTestApp(&MockPreferencesRepo{})

	payload := map[string]interface{}{
		"userId": "john@example.com",
		"layout": map[string]interface{}{
			"name": "Bad",
			"widgets": []map[string]interface{}{
				{"id": "w1", "type": "gauge"},
			},
		},
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	out := decodeBody(t, resp)
	if out["error"] != "Validation failed" {
		t.Errorf("error = %v", out["error"])
	}
	details, _ := out["details"].([]interface{})
	if len(details) == 0 {
		t.Errorf("expected field details, got %v", out["details"])
	}
}

func TestSaveDashboardMissingFields(t *testing.T) {
	app := newTestApp(&MockPreferencesRepo{})

	body, _ := json.Marshal(map[string]interface{}{"userId": "u"})
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDeleteLayoutEndpoint(t *testing.T) {
	repo := &MockPreferencesRepo{
		Doc: &PreferencesDocument{
			Layouts:          []Layout{testLayout("Work"), testLayout("Home")},
			ActiveLayoutName: "Work",
		},
	}
	app := newTestApp(repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/dashboard/layouts/Work?userId=u", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	prefs, _ := body["preferences"].(map[string]interface{})
	if prefs["activeLayoutName"] != "Home" {
		t.Errorf("activeLayoutName = %v, want Home", prefs["activeLayoutName"])
	}
}

func TestDeleteLayoutWithoutDocumentIs404(t *testing.T) {
	app := newTestApp(&MockPreferencesRepo{})

	req := httptest.NewRequest(http.MethodDelete, "/api/dashboard/layouts/Work?userId=ghost", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
