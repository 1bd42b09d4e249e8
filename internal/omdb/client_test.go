package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Path != "/" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Options{APIKey: "   "})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("NewClient error = %v, want ErrMissingAPIKey", err)
	}
}

func TestClient_SearchAndFetchEncodeQueries(t *testing.T) {
	t.Parallel()

	var gotSearch, gotDetail url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		q := r.URL.Query()
		switch {
		case q.Has("s"):
			gotSearch = q
			_ = json.NewEncoder(w).Encode(SearchResponse{
				Response: "True",
				Search:   []Stub{{IMDbID: "tt1"}, {IMDbID: "tt2"}},
			})
		case q.Has("i"):
			gotDetail = q
			_ = json.NewEncoder(w).Encode(Movie{Title: "X", Year: "1999", Poster: "N/A", Plot: "..."})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, APIKey: "k3y", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	res, err := c.Search(ctx, "  the matrix & co ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if !res.Found() || len(res.Search) != 2 || res.Search[1].IMDbID != "tt2" {
		t.Fatalf("Search payload = %#v, want 2 stubs", res)
	}
	if gotSearch.Get("s") != "  the matrix & co " {
		t.Fatalf("s = %q, want untrimmed query", gotSearch.Get("s"))
	}
	if gotSearch.Get("apikey") != "k3y" {
		t.Fatalf("apikey = %q, want k3y", gotSearch.Get("apikey"))
	}

	movie, err := c.FetchMovie(ctx, "tt1")
	if err != nil {
		t.Fatalf("FetchMovie returned error: %v", err)
	}
	if movie.Title != "X" || movie.Year != "1999" || movie.Poster != "N/A" {
		t.Fatalf("FetchMovie payload = %#v", movie)
	}
	if gotDetail.Get("i") != "tt1" || gotDetail.Get("apikey") != "k3y" {
		t.Fatalf("detail query = %v, want i=tt1 apikey=k3y", gotDetail)
	}

	if !strings.HasPrefix(gotUserAgent, "marquee/") {
		t.Fatalf("User-Agent = %q, want marquee/*", gotUserAgent)
	}
}

func TestClient_ProviderFailureEnvelopeIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Invalid API key!"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, APIKey: "bad"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	res, err := c.Search(context.Background(), "alien")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if res.Found() {
		t.Fatalf("Found() = true, want false")
	}
	if res.Error != "Invalid API key!" {
		t.Fatalf("Error = %q, want provider message", res.Error)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Has("s") {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
			return
		}
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, APIKey: "s3cret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.Search(context.Background(), "alien")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Search error = %v, want decode response error", err)
	}

	_, err = c.FetchMovie(context.Background(), "tt1")
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("FetchMovie error = %v, want status 500 error", err)
	}
	if strings.Contains(err.Error(), "s3cret") {
		t.Fatalf("error leaks api key: %v", err)
	}
}

func TestClient_NonObjectBodyIsDecodeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"null", "null"},
		{"null with whitespace", "  null\n"},
		{"array", `[{"Title":"Alien"}]`},
		{"string", `"True"`},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(Options{BaseURL: server.URL, APIKey: "k"})
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}

			res, err := c.Search(context.Background(), "alien")
			if err == nil || !strings.Contains(err.Error(), "decode response") {
				t.Fatalf("Search = %#v, %v; want decode response error", res, err)
			}
			movie, err := c.FetchMovie(context.Background(), "tt1")
			if err == nil || !strings.Contains(err.Error(), "decode response") {
				t.Fatalf("FetchMovie = %#v, %v; want decode response error", movie, err)
			}
		})
	}
}

func TestClient_TransportErrorRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := server.URL
	server.Close()

	c, err := NewClient(Options{BaseURL: base, APIKey: "s3cret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchMovie(context.Background(), "tt1")
	if err == nil || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("FetchMovie error = %v, want execute request error", err)
	}
	if strings.Contains(err.Error(), "s3cret") {
		t.Fatalf("error leaks api key: %v", err)
	}
}

func TestMovie_HasPoster(t *testing.T) {
	cases := map[string]bool{
		"":                      false,
		"N/A":                   false,
		" N/A ":                 false,
		"https://img/poster.jpg": true,
	}
	for poster, want := range cases {
		if got := (Movie{Poster: poster}).HasPoster(); got != want {
			t.Fatalf("HasPoster(%q) = %v, want %v", poster, got, want)
		}
	}
}
