package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/budunsigorta/backend/pkg/errors"
)

type samplePayload struct {
	Name    string `json:"name" validate:"required"`
	Premium string `json:"premium" validate:"omitempty,max=32"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"Ayşe Yılmaz"}`))
	var payload samplePayload
	if err := DecodeJSONBody(req, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "Ayşe Yılmaz" {
		t.Fatalf("unexpected name %q", payload.Name)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	if err == nil {
		t.Fatal("expected unknown field error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsMissingFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
	var payload samplePayload
	err := DecodeJSONBody(req, &payload)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["name"] != "is required" {
		t.Fatalf("expected field detail, got %v", typed.Details())
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?days=30", nil)
	value, err := ParseQueryInt(req, "days", 15, 1, 365)
	if err != nil || value != 30 {
		t.Fatalf("expected 30, got %d err=%v", value, err)
	}

	req = httptest.NewRequest("GET", "/", nil)
	value, err = ParseQueryInt(req, "days", 15, 1, 365)
	if err != nil || value != 15 {
		t.Fatalf("expected default 15, got %d err=%v", value, err)
	}

	req = httptest.NewRequest("GET", "/?days=abc", nil)
	if _, err = ParseQueryInt(req, "days", 15, 1, 365); err == nil {
		t.Fatal("expected error for non-numeric value")
	}

	req = httptest.NewRequest("GET", "/?days=9999", nil)
	if _, err = ParseQueryInt(req, "days", 15, 1, 365); err == nil {
		t.Fatal("expected error for out-of-range value")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  ", 0); got != "hello" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
}
