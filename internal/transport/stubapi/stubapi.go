// Package stubapi is an in-memory rendition of the marketplace API, used
// by the portaged dev server so the SDK can be exercised without the real
// backend. Data lives for the life of the process.
package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/portage-market/portage-go/internal/domain/account"
	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/dashboard"
	"github.com/portage-market/portage-go/internal/domain/search/filter"
	"github.com/portage-market/portage-go/internal/domain/search/query"
)

const pageSize = 12

type storedUser struct {
	fullName string
	password string
	role     account.Role
}

// Server holds the in-memory marketplace state.
type Server struct {
	logger *zap.Logger

	mu       sync.Mutex
	users    map[string]storedUser // by email
	tokens   map[string]string     // token -> email
	products []catalog.Product
	requests []dashboard.Request
}

// NewServer creates a stub server seeded with demo data.
func NewServer(logger *zap.Logger) *Server {
	s := &Server{
		logger:   logger,
		users:    map[string]storedUser{},
		tokens:   map[string]string{},
		products: demoProducts(),
		requests: demoRequests(),
	}
	// Demo login that works out of the box.
	s.users["traveler@portage.test"] = storedUser{
		fullName: "Demo Traveler", password: "portage-demo", role: account.RoleTraveler,
	}
	s.users["buyer@portage.test"] = storedUser{
		fullName: "Demo Buyer", password: "portage-demo", role: account.RoleBuyer,
	}
	return s
}

// Routes mounts the API under /api.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleProducts)
		r.Get("/metadata", s.handleMetadata)
		r.Post("/products/mark-fulfilled", s.handleMarkFulfilled)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Get("/me", s.handleMe)
		})

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", s.handleStats)
			r.Get("/upcoming-trips", s.handleTrips)
			r.Get("/active-listings", s.handleListings)
			r.Get("/notifications", s.handleNotifications)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Get("/", s.handleRequests)
			r.Post("/", s.handleCreateRequest)
			r.Patch("/{id}/status", s.handleRequestStatus)
		})
	})
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	req := query.FromValues(r.URL.Query())

	page := 1
	if p, err := strconv.Atoi(req["page"]); err == nil && p > 0 {
		page = p
	}
	delete(req, "page")

	s.mu.Lock()
	all := make([]catalog.Product, len(s.products))
	copy(all, s.products)
	s.mu.Unlock()

	matched := make([]catalog.Product, 0, len(all))
	for _, p := range all {
		if matches(p, req) {
			matched = append(matched, p)
		}
	}

	start := (page - 1) * pageSize
	if start >= len(matched) {
		writeJSON(w, http.StatusOK, []catalog.Product{})
		return
	}
	end := min(start+pageSize, len(matched))
	writeJSON(w, http.StatusOK, matched[start:end])
}

// matches applies the cleaned query parameters to one listing.
func matches(p catalog.Product, req query.Request) bool {
	if q := strings.ToLower(req[string(filter.FieldQuery)]); q != "" {
		hay := strings.ToLower(p.Name + " " + p.Description)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if cat := req[string(filter.FieldCategory)]; cat != "" && p.Category != cat {
		return false
	}
	if cur := req[string(filter.FieldCurrency)]; cur != "" && p.Currency != cur {
		return false
	}
	if from := req[string(filter.FieldDepartureAirport)]; from != "" && !strings.EqualFold(p.Route.From, from) {
		return false
	}
	if to := req[string(filter.FieldArrivalAirport)]; to != "" && !strings.EqualFold(p.Route.To, to) {
		return false
	}
	if v := req[string(filter.FieldMinPrice)]; v != "" {
		if minP, err := strconv.ParseFloat(v, 64); err == nil && p.Price < minP {
			return false
		}
	}
	if v := req[string(filter.FieldMaxPrice)]; v != "" {
		if maxP, err := strconv.ParseFloat(v, 64); err == nil && p.Price > maxP {
			return false
		}
	}
	if v := req[string(filter.FieldMinRating)]; v != "" {
		if minR, err := strconv.ParseFloat(v, 64); err == nil && p.Traveler.Rating < minR {
			return false
		}
	}
	if v := req[string(filter.FieldStartDate)]; v != "" && p.TravelDate < v {
		return false
	}
	if v := req[string(filter.FieldEndDate)]; v != "" && p.TravelDate > v {
		return false
	}
	if v := req[string(filter.FieldPickupOptions)]; v != "" {
		if !overlaps(p.PickupOptions, query.SplitList(v)) {
			return false
		}
	}
	return true
}

func overlaps(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (s *Server) handleMetadata(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalog.StaticMetadata())
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload account.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		writeDetail(w, http.StatusBadRequest, "email and password required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[payload.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "email already registered")
		return
	}
	s.users[payload.Email] = storedUser{
		fullName: payload.FullName,
		password: payload.Password,
		role:     payload.Role,
	}
	s.logger.Info("user registered",
		zap.String("email", payload.Email),
		zap.String("role", string(payload.Role)),
	)
	writeJSON(w, http.StatusCreated, map[string]string{"email": payload.Email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form body")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok || u.password != password {
		s.logger.Debug("login rejected", zap.String("email", email))
		writeDetail(w, http.StatusUnauthorized, "incorrect email or password")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = email
	writeJSON(w, http.StatusOK, account.Token{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        u.role,
		Email:       email,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	email, u, ok := s.authenticate(r)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, account.User{
		ID:       email,
		FullName: u.fullName,
		Email:    email,
		Role:     u.role,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_, u, ok := s.authenticate(r)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if u.role == account.RoleTraveler {
		writeJSON(w, http.StatusOK, dashboard.Stats{
			ActiveListings:  3,
			PendingRequests: s.countPending(),
			UpcomingTrips:   2,
			TotalEarnings:   1240.50,
		})
		return
	}
	writeJSON(w, http.StatusOK, dashboard.Stats{
		ActiveRequests:     s.countPending(),
		SavedProducts:      5,
		CompletedPurchases: 4,
		TotalSpent:         689.99,
	})
}

func (s *Server) countPending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, req := range s.requests {
		if req.Status == dashboard.RequestPending {
			n++
		}
	}
	return n
}

func (s *Server) handleTrips(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.authenticate(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, demoTrips())
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.authenticate(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	listings := demoListings()
	if tripID := r.URL.Query().Get("trip_id"); tripID != "" {
		scoped := make([]dashboard.Listing, 0, len(listings))
		for _, l := range listings {
			if l.Destination == tripDestination(tripID) {
				scoped = append(scoped, l)
			}
		}
		listings = scoped
	}
	writeJSON(w, http.StatusOK, listings)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.authenticate(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, demoNotifications())
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.authenticate(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	s.mu.Lock()
	out := make([]dashboard.Request, len(s.requests))
	copy(out, s.requests)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	email, _, ok := s.authenticate(r)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req dashboard.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.ID = uuid.NewString()
	req.BuyerID = email
	req.Status = dashboard.RequestPending
	req.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleRequestStatus(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.authenticate(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Status != dashboard.RequestAccepted && payload.Status != dashboard.RequestDeclined {
		writeDetail(w, http.StatusBadRequest, "status must be accepted or declined")
		return
	}

	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests[i].Status = payload.Status
			writeJSON(w, http.StatusOK, s.requests[i])
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "request not found")
}

func (s *Server) handleMarkFulfilled(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := s.authenticate(r); !ok {
		writeDetail(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var payload struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == payload.ProductID {
			s.products = append(s.products[:i], s.products[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"status": "fulfilled"})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "product not found")
}

func (s *Server) authenticate(r *http.Request) (string, storedUser, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", storedUser{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.tokens[token]
	if !ok {
		return "", storedUser{}, false
	}
	u, ok := s.users[email]
	return email, u, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail emits the {"detail": ...} error shape the SDK expects.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
