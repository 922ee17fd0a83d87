package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"sellerpilot/internal/domain/insight"
)

type fakeListingService struct {
	generate  func(req insight.ListingRequest) (insight.GeneratedContent, error)
	improve   func(content insight.GeneratedContent) (insight.GeneratedContent, error)
	translate func(content insight.GeneratedContent, language string) (insight.GeneratedContent, error)
}

func (f *fakeListingService) Generate(_ context.Context, req insight.ListingRequest) (insight.GeneratedContent, error) {
	return f.generate(req)
}

func (f *fakeListingService) Improve(_ context.Context, content insight.GeneratedContent) (insight.GeneratedContent, error) {
	return f.improve(content)
}

func (f *fakeListingService) Translate(_ context.Context, content insight.GeneratedContent, language string) (insight.GeneratedContent, error) {
	return f.translate(content, language)
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestGenerate_AssignsGenerationID(t *testing.T) {
	svc := &fakeListingService{
		generate: func(req insight.ListingRequest) (insight.GeneratedContent, error) {
			return insight.GeneratedContent{
				SEOContent: &insight.SEOContent{Title: "Handwoven cotton saree"},
				Category:   req.Category,
			}, nil
		},
	}
	h := NewListingHandler(svc)

	body, contentType := multipartBody(t, map[string]string{
		"description": "Handwoven cotton saree with zari border",
		"category":    "sarees",
	})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var content insight.GeneratedContent
	if err := json.Unmarshal(rec.Body.Bytes(), &content); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if content.GenerationID == "" {
		t.Fatal("expected a generation_id in the response")
	}
	if _, err := uuid.Parse(content.GenerationID); err != nil {
		t.Fatalf("generation_id %q is not a uuid: %v", content.GenerationID, err)
	}
	if content.SEOContent == nil || content.Category != "sarees" {
		t.Fatalf("unexpected content: %+v", content)
	}
}

func TestGenerate_MissingFieldsIsBadRequest(t *testing.T) {
	h := NewListingHandler(&fakeListingService{})

	body, contentType := multipartBody(t, map[string]string{"description": "saree"})
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Generate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestImprove_PreservesGenerationID(t *testing.T) {
	svc := &fakeListingService{
		improve: func(content insight.GeneratedContent) (insight.GeneratedContent, error) {
			// The model rewrite drops the id; the handler must restore it.
			return insight.GeneratedContent{
				SEOContent: &insight.SEOContent{Title: "Premium handwoven cotton saree"},
				Category:   content.Category,
			}, nil
		},
	}
	h := NewListingHandler(svc)

	payload := `{"content":{"generation_id":"4b3c2a10-9f8e-4d7c-b6a5-1234567890ab","seo_content":{"title":"Handwoven cotton saree"},"category":"sarees"}}`
	req := httptest.NewRequest(http.MethodPost, "/improve", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Improve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var content insight.GeneratedContent
	if err := json.Unmarshal(rec.Body.Bytes(), &content); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if content.GenerationID != "4b3c2a10-9f8e-4d7c-b6a5-1234567890ab" {
		t.Fatalf("generation_id not preserved: %q", content.GenerationID)
	}
	if content.SEOContent == nil || content.SEOContent.Title != "Premium handwoven cotton saree" {
		t.Fatalf("unexpected content: %+v", content)
	}
}

func TestTranslate_MissingLanguageIsBadRequest(t *testing.T) {
	h := NewListingHandler(&fakeListingService{})

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"content":{}}`))
	rec := httptest.NewRecorder()
	h.Translate(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
