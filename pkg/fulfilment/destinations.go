package fulfilment

import (
	"strings"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

// Destination binds one regional output file to an eligibility predicate
// and a field-mapping formatter. Destinations are plain values evaluated in
// declared order by Route; a nil Eligible marks the fallback that claims any
// row no earlier destination wanted. Eligibility predicates of one run must
// never overlap; that is a configuration bug, not a runtime condition.
type Destination[T any] struct {
	Name     string // destination label, also used in run reports
	Country  string // filename country token, "" for single-file runs
	Folder   string // upload folder from run configuration
	Headers  []string
	Eligible func(row T) bool
	Format   func(row T) domain.OutputRow
}

// Route returns the index of the first destination claiming the row, or the
// fallback's index when none does. Returns -1 when no destination claims the
// row and no fallback is configured.
func Route[T any](destinations []Destination[T], row T) int {
	fallback := -1
	for i, d := range destinations {
		if d.Eligible == nil {
			if fallback == -1 {
				fallback = i
			}
			continue
		}
		if d.Eligible(row) {
			return i
		}
	}
	return fallback
}

// weeklyHeaders is the base weekly output schema. The double space in
// "Address  3" is part of the agreed schema; downstream consumers match on it.
var weeklyHeaders = []string{
	"Subscriber ID", "Name", "Company name", "Address 1", "Address 2", "Address  3",
	"Country", "Post code", "Copies",
}

// euWeeklyHeaders extends the base schema with the two EU billing columns.
var euWeeklyHeaders = append(append([]string{}, weeklyHeaders...), "Unit price", "Currency")

const weeklyCopies = "1"

// Fixed EU billing constants injected into every EU output row.
const (
	euUnitPrice = "4.06"
	euCurrency  = "EUR"
)

// euCountries is the fixed EU eligibility list. Both "Czechia" and
// "Czech Republic" spellings occur in the billing exports.
var euCountries = []string{
	"Austria", "Belgium", "Bulgaria", "Croatia", "Cyprus", "Czech Republic", "Czechia",
	"Denmark", "Estonia", "Finland", "France", "Germany", "Greece", "Hungary", "Ireland",
	"Italy", "Latvia", "Lithuania", "Luxembourg", "Malta", "Netherlands", "Poland",
	"Portugal", "Romania", "Slovakia", "Slovenia", "Spain", "Sweden",
}

// usCountries matched by the US destination.
var usCountries = []string{"United States", "United States of America"}

func isHandDelivery(row domain.SubscriptionRow) bool {
	return strings.EqualFold(strings.TrimSpace(row.CanadaHandDelivery), "YES")
}

// weeklyRow copies fields verbatim with trimming only. The third address
// column carries the city; regional variants append a state/province code.
func weeklyRow(row domain.SubscriptionRow) domain.OutputRow {
	return domain.OutputRow{
		strings.TrimSpace(row.SubscriptionName),
		FullName(row.Title, row.FirstName, row.LastName),
		strings.TrimSpace(row.CompanyName),
		strings.TrimSpace(row.Address1),
		strings.TrimSpace(row.Address2),
		strings.TrimSpace(row.City),
		strings.TrimSpace(row.Country),
		strings.TrimSpace(row.PostalCode),
		weeklyCopies,
	}
}

// cityWithState joins city and a resolved state/province code.
func cityWithState(city, code string) string {
	city = strings.TrimSpace(city)
	code = strings.TrimSpace(code)
	if code == "" {
		return city
	}
	if city == "" {
		return code
	}
	return city + ", " + code
}

// NewCountryDestination is the base variant: eligible when the row's country
// field case-sensitively equals one of the configured names.
func NewCountryDestination(name, folder string, countries ...string) Destination[domain.SubscriptionRow] {
	members := domain.NewSet(countries...)
	return Destination[domain.SubscriptionRow]{
		Name:    name,
		Country: name,
		Folder:  folder,
		Headers: weeklyHeaders,
		Eligible: func(row domain.SubscriptionRow) bool {
			return members.Has(row.Country)
		},
		Format: weeklyRow,
	}
}

// NewUppercaseDestination is the base variant plus uppercased address and
// state fields, used for the Australia/New Zealand/Vanuatu group.
func NewUppercaseDestination(name, folder string, countries ...string) Destination[domain.SubscriptionRow] {
	d := NewCountryDestination(name, folder, countries...)
	d.Format = func(row domain.SubscriptionRow) domain.OutputRow {
		out := weeklyRow(row)
		out[3] = strings.ToUpper(out[3])
		out[4] = strings.ToUpper(out[4])
		out[5] = strings.ToUpper(cityWithState(row.City, row.State))
		return out
	}
	return d
}

// NewCanadaDestination claims Canadian rows without the hand-delivery flag
// and maps the raw province text through the Canadian lookup table.
func NewCanadaDestination(folder string) Destination[domain.SubscriptionRow] {
	return Destination[domain.SubscriptionRow]{
		Name:    "CA",
		Country: "CA",
		Folder:  folder,
		Headers: weeklyHeaders,
		Eligible: func(row domain.SubscriptionRow) bool {
			return row.Country == "Canada" && !isHandDelivery(row)
		},
		Format: func(row domain.SubscriptionRow) domain.OutputRow {
			out := weeklyRow(row)
			out[5] = cityWithState(row.City, CanadaProvinceCode(row.State))
			return out
		},
	}
}

// NewCanadaHandDeliveryDestination is the inverse hand-delivery condition on
// top of the Canada mapping.
func NewCanadaHandDeliveryDestination(folder string) Destination[domain.SubscriptionRow] {
	d := NewCanadaDestination(folder)
	d.Name = "CA_HAND"
	d.Country = "CA_HAND"
	d.Folder = folder
	d.Eligible = func(row domain.SubscriptionRow) bool {
		return row.Country == "Canada" && isHandDelivery(row)
	}
	return d
}

// NewUSDestination claims US rows and maps the state through the USPS table.
func NewUSDestination(folder string) Destination[domain.SubscriptionRow] {
	d := NewCountryDestination("USA", folder, usCountries...)
	d.Format = func(row domain.SubscriptionRow) domain.OutputRow {
		out := weeklyRow(row)
		out[5] = cityWithState(row.City, USStateCode(row.State))
		return out
	}
	return d
}

// NewEUDestination claims rows from the fixed EU country list and appends
// the fixed unit-price and currency columns.
func NewEUDestination(folder string) Destination[domain.SubscriptionRow] {
	d := NewCountryDestination("EU", folder, euCountries...)
	d.Headers = euWeeklyHeaders
	d.Format = func(row domain.SubscriptionRow) domain.OutputRow {
		return append(weeklyRow(row), euUnitPrice, euCurrency)
	}
	return d
}

// NewRestOfWorldDestination is the fallback: no eligibility check, claims
// whatever no other destination wanted.
func NewRestOfWorldDestination(folder string) Destination[domain.SubscriptionRow] {
	return Destination[domain.SubscriptionRow]{
		Name:    "ROW",
		Country: "ROW",
		Folder:  folder,
		Headers: weeklyHeaders,
		Format:  weeklyRow,
	}
}
