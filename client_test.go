package portage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error")
	}
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	if _, err := New(WithBaseURL("/api")); err == nil {
		t.Fatal("expected error")
	}
}

func TestNew_LanguageOption(t *testing.T) {
	c, err := New(WithBaseURL("http://localhost:8000"), WithLanguage("ar"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()
	if got := c.Language(); got != "ar" {
		t.Errorf("Language() = %q", got)
	}

	if err := c.SetLanguage("en-GB"); err != nil {
		t.Fatalf("set language: %v", err)
	}
	if got := c.Language(); got != "en" {
		t.Errorf("Language() = %q", got)
	}
}

func TestNew_WithPrometheusRegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	for i := 0; i < 2; i++ {
		c, err := New(WithBaseURL("http://localhost:8000"), WithPrometheus(reg))
		if err != nil {
			t.Fatalf("new: %v", err)
		}
		_ = c.Close()
	}
}

func authStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"email":"lina@example.com"}`))
	})
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		_ = r.ParseForm()
		if r.PostFormValue("password") != "hunter2hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"incorrect email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","role":"buyer","email":"lina@example.com"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAuth_RegisterLogsIn(t *testing.T) {
	srv := authStub(t)
	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()

	form := Registration{
		FullName:            "Lina Osei",
		Email:               "lina@example.com",
		Password:            "hunter2hunter2",
		ConfirmPassword:     "hunter2hunter2",
		Role:                RoleBuyer,
		BuyerCountry:        "gb",
		PreferredCategories: []string{"electronics"},
		AgreeToTerms:        true,
		AgreeToPrivacy:      true,
	}
	errs, err := c.Auth().Register(context.Background(), form)
	if err != nil {
		t.Fatalf("register: %v (%v)", err, errs)
	}
	if !c.Auth().Authenticated() {
		t.Error("not authenticated after register")
	}
	if c.Auth().Role() != RoleBuyer || c.Auth().Email() != "lina@example.com" {
		t.Errorf("session = %q %q", c.Auth().Role(), c.Auth().Email())
	}
}

func TestAuth_RegisterValidatesBeforeSending(t *testing.T) {
	// No server at this address: a network call would fail loudly.
	c, err := New(WithBaseURL("http://localhost:1"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()

	errs, err := c.Auth().Register(context.Background(), Registration{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(errs) == 0 {
		t.Fatal("expected field errors")
	}
}

func TestAuth_LoginAndLogout(t *testing.T) {
	srv := authStub(t)
	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.Auth().Login(context.Background(), "lina@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if c.Auth().Authenticated() {
		t.Fatal("failed login stored a session")
	}

	if err := c.Auth().Login(context.Background(), "lina@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !c.Auth().Authenticated() {
		t.Fatal("login not stored")
	}

	if err := c.Auth().Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c.Auth().Authenticated() {
		t.Error("logout did not clear the session")
	}
}

func TestAuth_SessionPersistsAcrossClients(t *testing.T) {
	srv := authStub(t)
	path := filepath.Join(t.TempDir(), "session.db")

	c1, err := New(WithBaseURL(srv.URL), WithSessionPath(path))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := c1.Auth().Login(context.Background(), "lina@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("login: %v", err)
	}
	_ = c1.Close()

	c2, err := New(WithBaseURL(srv.URL), WithSessionPath(path))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = c2.Close() }()
	if !c2.Auth().Authenticated() {
		t.Error("session did not survive the process boundary")
	}
}

func TestMetadata_FallsBackWhenEndpointDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()

	meta, err := c.Metadata().Options(context.Background())
	if err == nil {
		t.Fatal("expected the fetch error to be reported")
	}
	if len(meta.Airports) == 0 || len(meta.Categories) == 0 {
		t.Fatalf("fallback metadata empty: %+v", meta)
	}
}

func TestMetadata_PartialResponseFilledPerList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"categories":[{"value":"toys","label":"Toys"}]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()

	meta, err := c.Metadata().Options(context.Background())
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if len(meta.Categories) != 1 || meta.Categories[0].Value != "toys" {
		t.Errorf("served list overwritten: %v", meta.Categories)
	}
	if len(meta.Airports) == 0 {
		t.Error("missing list not filled")
	}
}

func TestDashboard_RequestStatusHelpers(t *testing.T) {
	var gotStatus string
	mux := http.NewServeMux()
	mux.HandleFunc("/api/requests/r-1/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			Status string `json:"status"`
		}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotStatus = payload.Status
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := New(WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.Dashboard().AcceptRequest(context.Background(), "r-1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if gotStatus != RequestAccepted {
		t.Errorf("status = %q", gotStatus)
	}

	if err := c.Dashboard().DeclineRequest(context.Background(), "r-1"); err != nil {
		t.Fatalf("decline: %v", err)
	}
	if gotStatus != RequestDeclined {
		t.Errorf("status = %q", gotStatus)
	}
}
