//go:build !integration

package rest

import (
	"comicSnap/business/recommendation"
	"comicSnap/domain"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubRecommender struct {
	res       recommendation.Result
	gotUser   uint
	gotLimit  int
	callCount int
}

func (s *stubRecommender) GenerateRecommendations(_ context.Context, userID uint, limit int) recommendation.Result {
	s.callCount++
	s.gotUser = userID
	s.gotLimit = limit
	return s.res
}

func serve(h echo.HandlerFunc, target string, userID uint) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID > 0 {
		c.Set("user_id", userID)
	}
	_ = h(c)
	return rec
}

func TestRecommendOK(t *testing.T) {
	svc := &stubRecommender{res: recommendation.Result{
		Entries: []domain.RecommendationEntry{{ID: "4050-9", Title: "Sandman", Score: 5}},
		Failure: recommendation.FailureNone,
	}}
	h := NewRecommendationHandler(svc)

	rec := serve(h.Recommend, "/recommendations?n=5", 3)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if svc.gotUser != 3 || svc.gotLimit != 5 {
		t.Fatalf("service called with user=%d limit=%d", svc.gotUser, svc.gotLimit)
	}
	if rec.Header().Get(HeaderRecommendationStatus) != "none" {
		t.Fatalf("status header = %q", rec.Header().Get(HeaderRecommendationStatus))
	}
	if !strings.Contains(rec.Body.String(), "4050-9") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRecommendEngineFailureIsStill200(t *testing.T) {
	svc := &stubRecommender{res: recommendation.Result{
		Entries: []domain.RecommendationEntry{},
		Failure: recommendation.FailureCatalogTimeout,
	}}

	rec := serve(NewRecommendationHandler(svc).Recommend, "/recommendations", 3)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	if rec.Header().Get(HeaderRecommendationStatus) != "catalog_timeout" {
		t.Fatalf("status header = %q", rec.Header().Get(HeaderRecommendationStatus))
	}
	if svc.gotLimit != 0 {
		t.Fatalf("limit = %d, want 0 so the engine default applies", svc.gotLimit)
	}
}

func TestRecommendRejects(t *testing.T) {
	svc := &stubRecommender{}
	h := NewRecommendationHandler(svc)

	if rec := serve(h.Recommend, "/recommendations", 0); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no user: code = %d", rec.Code)
	}
	if rec := serve(h.Recommend, "/recommendations?n=-1", 3); rec.Code != http.StatusBadRequest {
		t.Fatalf("negative n: code = %d", rec.Code)
	}
	if rec := serve(h.Recommend, "/recommendations?n=abc", 3); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad n: code = %d", rec.Code)
	}
	if svc.callCount != 0 {
		t.Fatal("engine must not run for rejected requests")
	}
}

func TestDebugRecommend(t *testing.T) {
	svc := &stubRecommender{res: recommendation.Result{
		Entries:  []domain.RecommendationEntry{},
		Failure:  recommendation.FailureNone,
		Degraded: []string{recommendation.PartPreferences},
		Query:    "Marvel OR DC",
	}}

	rec := serve(NewRecommendationHandler(svc).DebugRecommend, "/recommendations/debug", 3)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Marvel OR DC") || !strings.Contains(body, "preferences") {
		t.Fatalf("body = %s", body)
	}
}

func TestDebugRecommendHidesErrorDetail(t *testing.T) {
	svc := &stubRecommender{res: recommendation.Result{
		Entries: []domain.RecommendationEntry{},
		Failure: recommendation.FailureStoreUnavailable,
		Err:     errors.New(`failed to load consumed items: dial tcp 10.0.0.5:5432: SELECT "comic_id" FROM "comic_ratings"`),
	}}

	rec := serve(NewRecommendationHandler(svc).DebugRecommend, "/recommendations/debug", 3)

	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "10.0.0.5") || strings.Contains(body, "comic_ratings") {
		t.Fatalf("error detail leaked: %s", body)
	}
	if !strings.Contains(body, "store_unavailable") {
		t.Fatalf("body = %s", body)
	}
}
