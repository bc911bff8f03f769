package fulfilment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/fulfilment"
)

func weeklyTestPlan() fulfilment.Plan[domain.SubscriptionRow] {
	return fulfilment.NewWeeklyPlan(fulfilment.WeeklyFolders{
		UK:     "weekly/uk",
		CA:     "weekly/ca",
		CAHand: "weekly/ca-hand",
		US:     "weekly/us",
		AU:     "weekly/au",
		EU:     "weekly/eu",
		ROW:    "weekly/row",
	}, "salesforce_output")
}

func subRow(country string) domain.SubscriptionRow {
	return domain.SubscriptionRow{
		SubscriptionName: "A-S00000001",
		Title:            "Mr",
		FirstName:        "John",
		LastName:         "Smith",
		Address1:         "1 Poultry",
		City:             "London",
		PostalCode:       "EC2R 8EJ",
		Country:          country,
	}
}

func routeName(plan fulfilment.Plan[domain.SubscriptionRow], row domain.SubscriptionRow) string {
	i := fulfilment.Route(plan.Destinations, row)
	if i < 0 {
		return ""
	}
	return plan.Destinations[i].Name
}

func TestWeeklyRoutingIsExclusive(t *testing.T) {
	plan := weeklyTestPlan()

	cases := map[string]string{
		"United Kingdom":           "UK",
		"Isle of Man":              "UK",
		"Guernsey":                 "UK",
		"Jersey":                   "UK",
		"United States":            "USA",
		"United States of America": "USA",
		"Australia":                "AU",
		"New Zealand":              "AU",
		"Vanuatu":                  "AU",
		"France":                   "EU",
		"Czechia":                  "EU",
		"Czech Republic":           "EU",
		"Brazil":                   "ROW",
		"":                         "ROW",
		"united kingdom":           "ROW", // country matching is case sensitive
	}

	for country, want := range cases {
		row := subRow(country)
		require.Equal(t, want, routeName(plan, row), "country %q", country)

		// exactly one destination claims the row
		claims := 0
		for _, d := range plan.Destinations {
			if d.Eligible != nil && d.Eligible(row) {
				claims++
			}
		}
		require.LessOrEqual(t, claims, 1, "country %q", country)
	}
}

func TestCanadaHandDeliverySplit(t *testing.T) {
	plan := weeklyTestPlan()

	row := subRow("Canada")
	row.State = "Ontario"
	require.Equal(t, "CA", routeName(plan, row))

	row.CanadaHandDelivery = "Yes"
	require.Equal(t, "CA_HAND", routeName(plan, row))

	row.CanadaHandDelivery = " YES "
	require.Equal(t, "CA_HAND", routeName(plan, row))

	row.CanadaHandDelivery = "No"
	require.Equal(t, "CA", routeName(plan, row))
}

func TestCanadaRowCarriesProvinceCode(t *testing.T) {
	plan := weeklyTestPlan()

	row := subRow("Canada")
	row.City = "Toronto"
	row.State = "Ontario"

	i := fulfilment.Route(plan.Destinations, row)
	out := plan.Destinations[i].Format(row)
	require.Equal(t, "Toronto, ON", out[5])

	// unknown provinces fall back to the raw value
	row.State = "Ontariooo"
	out = plan.Destinations[i].Format(row)
	require.Equal(t, "Toronto, Ontariooo", out[5])
}

func TestUSRowCarriesStateCode(t *testing.T) {
	plan := weeklyTestPlan()

	row := subRow("United States")
	row.City = "Brooklyn"
	row.State = "New York"

	i := fulfilment.Route(plan.Destinations, row)
	out := plan.Destinations[i].Format(row)
	require.Equal(t, "Brooklyn, NY", out[5])
}

func TestAustraliaRowIsUppercased(t *testing.T) {
	plan := weeklyTestPlan()

	row := subRow("Australia")
	row.Address1 = "12 Collins St"
	row.Address2 = "Level 3"
	row.City = "Melbourne"
	row.State = "Victoria"

	i := fulfilment.Route(plan.Destinations, row)
	out := plan.Destinations[i].Format(row)
	require.Equal(t, "12 COLLINS ST", out[3])
	require.Equal(t, "LEVEL 3", out[4])
	require.Equal(t, "MELBOURNE, VICTORIA", out[5])
}

func TestEURowAppendsBillingColumns(t *testing.T) {
	plan := weeklyTestPlan()

	row := subRow("France")
	i := fulfilment.Route(plan.Destinations, row)
	d := plan.Destinations[i]

	require.Equal(t, "Unit price", d.Headers[len(d.Headers)-2])
	require.Equal(t, "Currency", d.Headers[len(d.Headers)-1])

	out := d.Format(row)
	require.Len(t, out, len(d.Headers))
	require.Equal(t, "4.06", out[len(out)-2])
	require.Equal(t, "EUR", out[len(out)-1])
}

func TestWeeklyRowShape(t *testing.T) {
	plan := weeklyTestPlan()

	row := subRow("Brazil")
	row.CompanyName = "Acme Ltd"
	row.Address2 = " Flat 2 "

	i := fulfilment.Route(plan.Destinations, row)
	d := plan.Destinations[i]
	out := d.Format(row)

	require.Equal(t, len(d.Headers), len(out))
	require.Equal(t, domain.OutputRow{
		"A-S00000001", "Mr John Smith", "Acme Ltd", "1 Poultry", "Flat 2", "London",
		"Brazil", "EC2R 8EJ", "1",
	}, out)
}

func TestRouteWithoutFallback(t *testing.T) {
	destinations := []fulfilment.Destination[domain.SubscriptionRow]{
		fulfilment.NewCountryDestination("UK", "weekly/uk", "United Kingdom"),
	}
	require.Equal(t, -1, fulfilment.Route(destinations, subRow("Brazil")))
}
