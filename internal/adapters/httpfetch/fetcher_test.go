package httpfetch

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ruleweaver/internal/application"
)

func allowAll(net.IP) bool { return true }

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "ruleweaver-import" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/markdown")
		w.Write([]byte("# Rules\n\nBe kind."))
	}))
	defer srv.Close()

	f := New(WithAddressPolicy(allowAll))
	res, err := f.Fetch(context.Background(), srv.URL+"/rules.md", 1024)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(res.Body) != "# Rules\n\nBe kind." {
		t.Errorf("Body = %q", res.Body)
	}
	if res.ContentType != "text/markdown" {
		t.Errorf("ContentType = %q", res.ContentType)
	}
	if res.FinalURL != srv.URL+"/rules.md" {
		t.Errorf("FinalURL = %q", res.FinalURL)
	}
}

func TestFetch_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/big":
			w.Write([]byte(strings.Repeat("x", 2048)))
		case "/redirect":
			http.Redirect(w, r, "http://127.0.0.1:1/secret", http.StatusFound)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name       string
		path       string
		wantPolicy bool
		wantText   string
	}{
		{"status", "/missing", false, "404"},
		{"too large", "/big", false, "limit"},
		{"redirect to loopback", "/redirect", true, ""},
	}

	f := New(WithAddressPolicy(allowAll))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), srv.URL+tt.path, 1024)
			if err == nil {
				t.Fatal("Fetch succeeded, want error")
			}
			if got := errors.Is(err, application.ErrPolicyViolation); got != tt.wantPolicy {
				t.Errorf("policy violation = %v, want %v (err = %v)", got, tt.wantPolicy, err)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q does not mention %q", err, tt.wantText)
			}
		})
	}
}

func TestFetch_DialGuard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request reached a loopback server")
	}))
	defer srv.Close()

	_, err := New().Fetch(context.Background(), srv.URL, 1024)
	if !errors.Is(err, application.ErrPolicyViolation) {
		t.Errorf("Fetch error = %v, want policy violation", err)
	}
}

func TestFetch_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithAddressPolicy(allowAll)).Fetch(ctx, srv.URL, 1024)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch error = %v, want context.Canceled", err)
	}
}
