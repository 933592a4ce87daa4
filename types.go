package portage

import (
	"github.com/portage-market/portage-go/internal/domain/account"
	"github.com/portage-market/portage-go/internal/domain/catalog"
	"github.com/portage-market/portage-go/internal/domain/dashboard"
	"github.com/portage-market/portage-go/internal/domain/search/filter"
	"github.com/portage-market/portage-go/internal/repository/session"
	"github.com/portage-market/portage-go/internal/urlstate"
)

// FilterState is the canonical search filter state. The zero value is the
// all-default state: every scalar empty, every collection empty.
type FilterState = filter.State

// Field names a filter field. Values are the wire parameter names.
type Field = filter.Field

// Filter fields.
const (
	FieldQuery             = filter.FieldQuery
	FieldDepartureAirport  = filter.FieldDepartureAirport
	FieldArrivalAirport    = filter.FieldArrivalAirport
	FieldRegion            = filter.FieldRegion
	FieldCountry           = filter.FieldCountry
	FieldCategory          = filter.FieldCategory
	FieldSubcategories     = filter.FieldSubcategories
	FieldMinPrice          = filter.FieldMinPrice
	FieldMaxPrice          = filter.FieldMaxPrice
	FieldCurrency          = filter.FieldCurrency
	FieldStartDate         = filter.FieldStartDate
	FieldEndDate           = filter.FieldEndDate
	FieldMinRating         = filter.FieldMinRating
	FieldTravelerTypes     = filter.FieldTravelerTypes
	FieldPickupOptions     = filter.FieldPickupOptions
	FieldDeliveryTimeframe = filter.FieldDeliveryTimeframe
	FieldSort              = filter.FieldSort
)

// Chip is a displayed summary of one active filter or filter group.
type Chip = filter.Chip

// Chip group identifiers accepted by RemoveChip.
const (
	ChipPrice = filter.ChipPrice
	ChipDates = filter.ChipDates
)

// QuickRange is a preset travel-date window.
type QuickRange = filter.QuickRange

// Product is one listing card from the product listing endpoint.
type Product = catalog.Product

// ProductRoute is the traveler's carry route for a listing.
type ProductRoute = catalog.Route

// Traveler is a listing owner's public card info.
type Traveler = catalog.Traveler

// MetadataOption is one selectable filter value with its display label.
type MetadataOption = catalog.Option

// Metadata holds the filter option lists.
type Metadata = catalog.Metadata

// Role is a marketplace role.
type Role = account.Role

// Marketplace roles.
const (
	RoleBuyer    = account.RoleBuyer
	RoleTraveler = account.RoleTraveler
)

// User is the authenticated profile.
type User = account.User

// Registration is the accumulated registration wizard form.
type Registration = account.Registration

// Registration wizard steps.
const (
	StepBasicInfo = account.StepBasicInfo
	StepRole      = account.StepRole
	StepDetails   = account.StepDetails
	TotalSteps    = account.TotalSteps
)

// Stats is the role-dependent dashboard summary.
type Stats = dashboard.Stats

// Trip is one upcoming trip card.
type Trip = dashboard.Trip

// Listing is one active listing card.
type Listing = dashboard.Listing

// Request is a buyer's solicitation against a listing.
type Request = dashboard.Request

// Request statuses a traveler can set on a buyer request.
const (
	RequestPending  = dashboard.RequestPending
	RequestAccepted = dashboard.RequestAccepted
	RequestDeclined = dashboard.RequestDeclined
)

// Notification is one dashboard notification entry.
type Notification = dashboard.Notification

// History exposes the current location and replaces it in place, the way
// browser history replaceState does.
type History = urlstate.History

// NewMemoryHistory creates an in-process History at the given location,
// standing in for browser history in non-browser hosts.
func NewMemoryHistory(raw string) (History, error) {
	return urlstate.NewMemory(raw)
}

// SessionStore is a key-value store backing the session context.
type SessionStore = session.Store
