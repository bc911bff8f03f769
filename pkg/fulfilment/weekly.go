package fulfilment

import (
	"strings"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

// Logical query names of the weekly export manifest.
const (
	WeeklyIntroductoryQuery  = "WeeklyIntroductoryPeriod"
	WeeklySubscriptionsQuery = "WeeklySubscriptions"
	HolidaySuspensionsQuery  = "HolidaySuspensions"
)

// Weekly subscription export column names.
const (
	colSubscriptionName   = "Subscription.Name"
	colTitle              = "SoldToContact.Title__c"
	colFirstName          = "SoldToContact.FirstName"
	colLastName           = "SoldToContact.LastName"
	colCompanyName        = "SoldToContact.Company_Name__c"
	colAddress1           = "SoldToContact.Address1"
	colAddress2           = "SoldToContact.Address2"
	colCity               = "SoldToContact.City"
	colState              = "SoldToContact.State"
	colPostalCode         = "SoldToContact.PostalCode"
	colCountry            = "SoldToContact.Country"
	colCanadaHandDelivery = "Subscription.CanadaHandDelivery__c"
)

// WeeklyFolders carries the per-destination upload folders from run
// configuration.
type WeeklyFolders struct {
	UK     string
	CA     string
	CAHand string
	US     string
	AU     string
	EU     string
	ROW    string
}

// NewWeeklyPlan assembles the weekly run: introductory-period rows stream
// before regular subscription rows, and each row is routed across the
// regional destination list with rest-of-world as the fallback. Hand-delivery
// Canada is declared before regular Canada; the flag makes them disjoint
// either way.
func NewWeeklyPlan(folders WeeklyFolders, inputPrefix string) Plan[domain.SubscriptionRow] {
	return Plan[domain.SubscriptionRow]{
		Fulfilment:          domain.Weekly,
		Product:             ProductWeekly,
		SubscriptionQueries: []string{WeeklyIntroductoryQuery, WeeklySubscriptionsQuery},
		SuspensionsQuery:    HolidaySuspensionsQuery,
		InputPrefix:         inputPrefix,
		Parse:               ParseSubscriptionRow,
		Key: func(row domain.SubscriptionRow) string {
			return row.SubscriptionName
		},
		Validate: validateSubscriptionRow,
		Destinations: []Destination[domain.SubscriptionRow]{
			NewCountryDestination("UK", folders.UK, "United Kingdom", "Isle of Man", "Guernsey", "Jersey"),
			NewCanadaHandDeliveryDestination(folders.CAHand),
			NewCanadaDestination(folders.CA),
			NewUSDestination(folders.US),
			NewUppercaseDestination("AU", folders.AU, "Australia", "New Zealand", "Vanuatu"),
			NewEUDestination(folders.EU),
			NewRestOfWorldDestination(folders.ROW),
		},
	}
}

// ParseSubscriptionRow binds a header-indexed record to the weekly row
// shape. Unknown columns are ignored; missing columns become empty fields.
func ParseSubscriptionRow(rec map[string]string) domain.SubscriptionRow {
	return domain.SubscriptionRow{
		SubscriptionName:   rec[colSubscriptionName],
		Title:              rec[colTitle],
		FirstName:          rec[colFirstName],
		LastName:           rec[colLastName],
		CompanyName:        rec[colCompanyName],
		Address1:           rec[colAddress1],
		Address2:           rec[colAddress2],
		City:               rec[colCity],
		State:              rec[colState],
		PostalCode:         rec[colPostalCode],
		Country:            rec[colCountry],
		CanadaHandDelivery: rec[colCanadaHandDelivery],
	}
}

func validateSubscriptionRow(row domain.SubscriptionRow, counters *domain.ValidationCounters) {
	if strings.TrimSpace(row.Address1) == "" {
		counters.Record(domain.MissingAddress)
	}
	if strings.TrimSpace(row.City) == "" {
		counters.Record(domain.MissingCity)
	}
	if strings.TrimSpace(row.PostalCode) == "" {
		counters.Record(domain.MissingPostcode)
	}
	if strings.TrimSpace(row.Country) == "" {
		counters.Record(domain.MissingCountry)
	}
	if FullName(row.Title, row.FirstName, row.LastName) == "" {
		counters.Record(domain.MissingName)
	}
}
