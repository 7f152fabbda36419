package httputil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReadJSON_Success(t *testing.T) {
	body := `{"name":"solaris","day":3}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var out struct {
		Name string `json:"name"`
		Day  int    `json:"day"`
	}

	err := ReadJSON(req, &out, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "solaris" {
		t.Errorf("expected name 'solaris', got '%s'", out.Name)
	}
	if out.Day != 3 {
		t.Errorf("expected day 3, got %d", out.Day)
	}
}

func TestReadJSON_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	var out struct{}
	err := ReadJSON(req, &out, 1024)
	if err != ErrEmptyBody {
		t.Errorf("expected ErrEmptyBody, got %v", err)
	}
}

func TestReadJSON_InvalidJSON(t *testing.T) {
	body := `{invalid json}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var out struct{}
	err := ReadJSON(req, &out, 1024)
	if err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestReadJSON_LargeBody(t *testing.T) {
	largeData := bytes.Repeat([]byte("a"), 2000)
	body := `{"data":"` + string(largeData) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var out struct {
		Data string `json:"data"`
	}

	err := ReadJSON(req, &out, 1024)
	if err == nil {
		t.Error("expected error for body exceeding maxBytes")
	}
}

func TestWriteJSON_Success(t *testing.T) {
	rr := httptest.NewRecorder()

	data := map[string]any{
		"message": "hello",
		"count":   42,
	}

	err := WriteJSON(rr, http.StatusOK, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}

	contentType := rr.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type 'application/json', got '%s'", contentType)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "hello") || !strings.Contains(body, "42") {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestWriteJSON_HTMLEscape(t *testing.T) {
	rr := httptest.NewRecorder()

	data := map[string]string{
		"html": "<b>Day 1</b>",
	}

	err := WriteJSON(rr, http.StatusOK, data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := rr.Body.String()
	if strings.Contains(body, "\\u003c") {
		t.Errorf("HTML should not be escaped: %s", body)
	}
}

func TestWriteErrorJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	err := WriteErrorJSON(rr, http.StatusBadRequest, "INVALID_INPUT", "field is required")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "INVALID_INPUT") {
		t.Errorf("expected error code in body: %s", body)
	}
	if !strings.Contains(body, "field is required") {
		t.Errorf("expected message in body: %s", body)
	}
}

func TestWriteErrorJSON_TrimWhitespace(t *testing.T) {
	rr := httptest.NewRecorder()

	err := WriteErrorJSON(rr, http.StatusInternalServerError, "  ERROR_CODE  ", "  message with spaces  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := rr.Body.String()
	if strings.Contains(body, `"  ERROR_CODE  "`) {
		t.Errorf("whitespace should be trimmed: %s", body)
	}
}
