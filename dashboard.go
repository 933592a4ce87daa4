package portage

import (
	"context"
	"time"

	"github.com/portage-market/portage-go/internal/transport/rest"
)

// DashboardService reads the role-dependent dashboard and manages buyer
// requests.
type DashboardService struct {
	api *rest.Client
	obs *observer
}

// Stats fetches the activity summary for the current role.
func (s *DashboardService) Stats(ctx context.Context) (Stats, error) {
	start := time.Now()
	stats, err := s.api.Stats(ctx)
	s.obs.observe("dashboard.stats", start, err)
	return stats, err
}

// UpcomingTrips fetches the traveler's upcoming trips.
func (s *DashboardService) UpcomingTrips(ctx context.Context) ([]Trip, error) {
	start := time.Now()
	trips, err := s.api.UpcomingTrips(ctx)
	s.obs.observe("dashboard.trips", start, err)
	return trips, err
}

// ActiveListings fetches the traveler's active listings. A non-empty
// tripID scopes the result to listings linkable to that trip.
func (s *DashboardService) ActiveListings(ctx context.Context, tripID string) ([]Listing, error) {
	start := time.Now()
	listings, err := s.api.ActiveListings(ctx, tripID)
	s.obs.observe("dashboard.listings", start, err)
	return listings, err
}

// Notifications fetches the notification feed.
func (s *DashboardService) Notifications(ctx context.Context) ([]Notification, error) {
	start := time.Now()
	notifs, err := s.api.Notifications(ctx)
	s.obs.observe("dashboard.notifications", start, err)
	return notifs, err
}

// Requests fetches the buyer requests visible to the current user.
func (s *DashboardService) Requests(ctx context.Context) ([]Request, error) {
	start := time.Now()
	reqs, err := s.api.Requests(ctx)
	s.obs.observe("requests.list", start, err)
	return reqs, err
}

// CreateRequest files a buyer request against a listing.
func (s *DashboardService) CreateRequest(ctx context.Context, req Request) (Request, error) {
	start := time.Now()
	created, err := s.api.CreateRequest(ctx, req)
	s.obs.observe("requests.create", start, err)
	return created, err
}

// AcceptRequest marks a buyer request accepted.
func (s *DashboardService) AcceptRequest(ctx context.Context, requestID string) error {
	return s.updateStatus(ctx, requestID, RequestAccepted)
}

// DeclineRequest marks a buyer request declined.
func (s *DashboardService) DeclineRequest(ctx context.Context, requestID string) error {
	return s.updateStatus(ctx, requestID, RequestDeclined)
}

func (s *DashboardService) updateStatus(ctx context.Context, requestID, status string) error {
	start := time.Now()
	err := s.api.UpdateRequestStatus(ctx, requestID, status)
	s.obs.observe("requests.status", start, err)
	return err
}

// MarkFulfilled marks a listing as fulfilled, removing it from the
// active set.
func (s *DashboardService) MarkFulfilled(ctx context.Context, productID string) error {
	start := time.Now()
	err := s.api.MarkFulfilled(ctx, productID)
	s.obs.observe("listings.fulfilled", start, err)
	return err
}
