// Package dashboard holds the traveler dashboard records: activity stats,
// upcoming trips, active listings, buyer requests, and notifications.
package dashboard

// Stats is the role-dependent activity summary. Only the fields for the
// caller's role are populated by the endpoint.
type Stats struct {
	// Traveler.
	ActiveListings  int     `json:"activeListings,omitempty"`
	PendingRequests int     `json:"pendingRequests,omitempty"`
	UpcomingTrips   int     `json:"upcomingTrips,omitempty"`
	TotalEarnings   float64 `json:"totalEarnings,omitempty"`

	// Buyer.
	ActiveRequests     int     `json:"activeRequests,omitempty"`
	SavedProducts      int     `json:"savedProducts,omitempty"`
	CompletedPurchases int     `json:"completedPurchases,omitempty"`
	TotalSpent         float64 `json:"totalSpent,omitempty"`
}

// Trip is one upcoming trip card.
type Trip struct {
	ID                 string   `json:"id"`
	Route              string   `json:"route"`
	DepartureAirport   string   `json:"departureAirport"`
	ArrivalAirport     string   `json:"arrivalAirport"`
	DepartureDate      string   `json:"departureDate"`
	ReturnDate         string   `json:"returnDate,omitempty"`
	AssociatedListings int      `json:"associatedListings"`
	PotentialBuyers    int      `json:"potentialBuyers"`
	ProductIDs         []string `json:"product_ids,omitempty"`
}

// Listing is one active listing card.
type Listing struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Image        string  `json:"image"`
	Status       string  `json:"status"`
	RequestCount int     `json:"requestCount"`
	Destination  string  `json:"destination"`
}

// Request statuses a traveler can set on a buyer request.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestDeclined = "declined"
)

// Request is a buyer's solicitation against a listing.
type Request struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	BuyerID   string  `json:"buyer_id"`
	BuyerName string  `json:"buyerName,omitempty"`
	Quantity  int     `json:"quantity"`
	Offer     float64 `json:"offer,omitempty"`
	Message   string  `json:"message,omitempty"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt,omitempty"`
}

// Notification is one dashboard notification entry.
type Notification struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt,omitempty"`
}
