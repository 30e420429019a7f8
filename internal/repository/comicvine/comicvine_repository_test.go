//go:build !integration

package comicvine

import (
	"comicSnap/domain"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleResponse = `<?xml version="1.0" encoding="utf-8"?>
<response>
  <error><![CDATA[OK]]></error>
  <limit>2</limit>
  <number_of_total_results>2</number_of_total_results>
  <status_code>1</status_code>
  <results>
    <volume>
      <deck><![CDATA[Who watches the watchmen?]]></deck>
      <id>4050-1</id>
      <image><small_url><![CDATA[https://img.example/watchmen.jpg]]></small_url></image>
      <name><![CDATA[Watchmen]]></name>
      <publisher><id>10</id><name><![CDATA[DC Comics]]></name></publisher>
      <start_year>1986</start_year>
    </volume>
    <volume>
      <id>4050-2</id>
      <name><![CDATA[Untitled Fanzine]]></name>
      <publisher/>
    </volume>
  </results>
</response>`

func newTestRepo(t *testing.T, h http.HandlerFunc) *ComicVineRepository {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewComicVineRepository(ComicVineConfig{
		APIKey:    "secret-key",
		BaseURL:   srv.URL + "/api",
		Timeout:   time.Second,
		UserAgent: "ComicSnapTest",
	})
}

func TestSearchParsesVolumes(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/search/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "secret-key" || q.Get("query") != "Marvel OR DC" ||
			q.Get("resources") != "volume" || q.Get("format") != "xml" || q.Get("limit") != "100" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "ComicSnapTest" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleResponse))
	})

	items, err := repo.Search(context.Background(), "Marvel OR DC", 500)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	w := items[0]
	if w.ID != "4050-1" || w.Title != "Watchmen" || w.Publisher != "DC Comics" ||
		w.Year != "1986" || w.CoverURL != "https://img.example/watchmen.jpg" || w.Description != "Who watches the watchmen?" {
		t.Fatalf("first item = %+v", w)
	}

	f := items[1]
	if f.Publisher != "" || f.Year != domain.UnknownYear || f.CoverURL != domain.DefaultCoverURL || f.Description != domain.UnknownDescription {
		t.Fatalf("placeholders not applied: %+v", f)
	}
}

func TestSearchEmptyResults(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<response><error>OK</error><status_code>1</status_code><results></results></response>`))
	})

	items, err := repo.Search(context.Background(), "nothing", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %+v", items)
	}
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name: "http 502",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			want: domain.ErrCatalogUnavailable,
		},
		{
			name: "invalid api key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<response><error>Invalid API Key</error><status_code>100</status_code><results/></response>`))
			},
			want: domain.ErrCatalogUnavailable,
		},
		{
			name: "not xml",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":"OK"}`))
			},
			want: domain.ErrCatalogMalformed,
		},
		{
			name: "slow",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			want: domain.ErrCatalogTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepo(t, tt.handler)

			ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer cancel()

			_, err := repo.Search(ctx, "x", 10)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if err != nil && strings.Contains(err.Error(), "secret-key") {
				t.Fatalf("error leaks api key: %v", err)
			}
		})
	}
}

func TestSearchUnreachable(t *testing.T) {
	repo := NewComicVineRepository(ComicVineConfig{BaseURL: "http://127.0.0.1:1", APIKey: "secret-key", Timeout: time.Second})

	_, err := repo.Search(context.Background(), "x", 10)
	if !errors.Is(err, domain.ErrCatalogUnavailable) && !errors.Is(err, domain.ErrCatalogTimeout) {
		t.Fatalf("err = %v", err)
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks api key: %v", err)
	}
}
