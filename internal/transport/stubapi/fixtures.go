package stubapi

import (
	"time"

	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/dashboard"
	"github.com/portage-market/portage-go/internal/domain/search/filter"
)

func travelDate(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format(filter.DateLayout)
}

func demoProducts() []catalog.Product {
	amalia := catalog.Traveler{
		Name: "Amalia", FullName: "Amalia Haddad", Rating: 4.8, ReviewCount: 132,
	}
	kenji := catalog.Traveler{
		Name: "Kenji", FullName: "Kenji Watanabe", Rating: 4.5, ReviewCount: 57,
	}
	priya := catalog.Traveler{
		Name: "Priya", FullName: "Priya Nair", Rating: 4.9, ReviewCount: 203,
	}

	return []catalog.Product{
		{
			ID: "p-1001", Name: "Noise Cancelling Headphones",
			Description: "Sealed, latest model, bought duty free.",
			Price:       249.00, Category: "electronics", Currency: "USD",
			Route:      catalog.Route{From: "jfk", To: "dxb"},
			TravelDate: travelDate(5), Traveler: amalia,
			PickupOptions: []string{"airport", "hotel"},
		},
		{
			ID: "p-1002", Name: "Matcha Gift Set",
			Description: "Ceremonial grade matcha with whisk, from Kyoto.",
			Price:       68.50, Category: "food", Currency: "USD",
			Route:      catalog.Route{From: "nrt", To: "lhr"},
			TravelDate: travelDate(12), Traveler: kenji,
			PickupOptions: []string{"city"},
		},
		{
			ID: "p-1003", Name: "French Pharmacy Skincare Bundle",
			Description: "Five cult classics straight from a Paris pharmacy.",
			Price:       94.00, Category: "cosmetics", Currency: "EUR",
			Route:      catalog.Route{From: "cdg", To: "jfk"},
			TravelDate: travelDate(3), Traveler: priya,
			PickupOptions: []string{"delivery", "city"},
		},
		{
			ID: "p-1004", Name: "Limited Edition Sneakers",
			Description: "Region-exclusive colorway, size selection available.",
			Price:       189.99, Category: "fashion", Currency: "USD",
			Route:      catalog.Route{From: "lhr", To: "dxb"},
			TravelDate: travelDate(20), Traveler: amalia,
			PickupOptions: []string{"airport"},
		},
		{
			ID: "p-1005", Name: "Signed Cookbook",
			Description: "Signed first edition from a London book launch.",
			Price:       45.00, Category: "books", Currency: "GBP",
			Route:      catalog.Route{From: "lhr", To: "jfk"},
			TravelDate: travelDate(8), Traveler: kenji,
			PickupOptions: []string{"hotel", "city"},
		},
		{
			ID: "p-1006", Name: "Carbon Padel Racket",
			Description: "Pro model, hard to find outside Spain.",
			Price:       310.00, Category: "sports", Currency: "EUR",
			Route:      catalog.Route{From: "cdg", To: "dxb"},
			TravelDate: travelDate(15), Traveler: priya,
			PickupOptions: []string{"airport", "delivery"},
		},
	}
}

func demoRequests() []dashboard.Request {
	return []dashboard.Request{
		{
			ID: "r-2001", ProductID: "p-1001", BuyerID: "buyer@portage.test",
			BuyerName: "Demo Buyer", Quantity: 1, Offer: 240.00,
			Message: "Would you take 240 for cash pickup at the airport?",
			Status:  dashboard.RequestPending,
		},
		{
			ID: "r-2002", ProductID: "p-1004", BuyerID: "buyer@portage.test",
			BuyerName: "Demo Buyer", Quantity: 2,
			Message: "Need two pairs, size 42 and 44.",
			Status:  dashboard.RequestAccepted,
		},
	}
}

func demoTrips() []dashboard.Trip {
	return []dashboard.Trip{
		{
			ID: "t-3001", Route: "JFK → DXB",
			DepartureAirport: "jfk", ArrivalAirport: "dxb",
			DepartureDate:      travelDate(5),
			AssociatedListings: 2, PotentialBuyers: 7,
			ProductIDs: []string{"p-1001", "p-1004"},
		},
		{
			ID: "t-3002", Route: "CDG → JFK",
			DepartureAirport: "cdg", ArrivalAirport: "jfk",
			DepartureDate:      travelDate(3),
			ReturnDate:         travelDate(10),
			AssociatedListings: 1, PotentialBuyers: 3,
			ProductIDs: []string{"p-1003"},
		},
	}
}

// tripDestination maps a demo trip to the destination its listings carry.
func tripDestination(tripID string) string {
	switch tripID {
	case "t-3001":
		return "Dubai"
	case "t-3002":
		return "New York"
	}
	return ""
}

func demoListings() []dashboard.Listing {
	return []dashboard.Listing{
		{
			ID: "p-1001", Title: "Noise Cancelling Headphones",
			Description: "Sealed, latest model.", Price: 249.00,
			Status: "active", RequestCount: 1, Destination: "Dubai",
		},
		{
			ID: "p-1003", Title: "French Pharmacy Skincare Bundle",
			Description: "Five cult classics.", Price: 94.00,
			Status: "active", RequestCount: 0, Destination: "New York",
		},
		{
			ID: "p-1004", Title: "Limited Edition Sneakers",
			Description: "Region-exclusive colorway.", Price: 189.99,
			Status: "active", RequestCount: 1, Destination: "Dubai",
		},
	}
}

func demoNotifications() []dashboard.Notification {
	return []dashboard.Notification{
		{ID: "n-4001", Type: "request", Message: "New request on Noise Cancelling Headphones", Read: false},
		{ID: "n-4002", Type: "trip", Message: "Your JFK → DXB trip departs in 5 days", Read: false},
		{ID: "n-4003", Type: "payout", Message: "Payout of $240.00 settled", Read: true},
	}
}
