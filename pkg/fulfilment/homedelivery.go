package fulfilment

import (
	"strings"
	"time"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

// HomeDeliverySubscriptionsQuery is the logical query name of the
// home-delivery subscription export. Suspensions reuse the shared query name.
const HomeDeliverySubscriptionsQuery = "HomeDeliverySubscriptions"

// Home-delivery export column names. The contact columns match the weekly
// export; the delivery columns are specific to this fulfilment.
const (
	colDeliveryQuantity     = "Subscription.DeliveryQuantity__c"
	colDeliveryAgent        = "DeliveryAgent.Name"
	colDeliveryInstructions = "SoldToContact.Special_Delivery_Instructions__c"
)

var homeDeliveryHeaders = []string{
	"Customer Reference", "Customer Full Name", "Customer Address Line 1",
	"Customer Address Line 2", "Customer Town", "Customer PostCode",
	"Delivery Quantity", "Delivery Information", "Delivery Date", "Charge day",
}

// NewHomeDeliveryPlan assembles the home-delivery run: one subscription
// export into a single output file, no eligibility routing. The delivery
// date is stamped into every output row, so the plan is bound to one run.
func NewHomeDeliveryPlan(folder, inputPrefix string, deliveryDate time.Time) Plan[domain.HomeDeliveryRow] {
	dateField := deliveryDate.Format(DeliveryDateFormat)
	chargeDay := ChargeDay(deliveryDate)

	return Plan[domain.HomeDeliveryRow]{
		Fulfilment:          domain.HomeDelivery,
		Product:             ProductHomeDelivery,
		SubscriptionQueries: []string{HomeDeliverySubscriptionsQuery},
		SuspensionsQuery:    HolidaySuspensionsQuery,
		InputPrefix:         inputPrefix,
		Parse:               ParseHomeDeliveryRow,
		Key: func(row domain.HomeDeliveryRow) string {
			return row.SubscriptionName
		},
		Validate: validateHomeDeliveryRow,
		Destinations: []Destination[domain.HomeDeliveryRow]{
			{
				Name:    "HOME_DELIVERY",
				Folder:  folder,
				Headers: homeDeliveryHeaders,
				Format: func(row domain.HomeDeliveryRow) domain.OutputRow {
					quantity := strings.TrimSpace(row.DeliveryQuantity)
					if quantity == "" {
						quantity = "1"
					}
					return domain.OutputRow{
						strings.TrimSpace(row.SubscriptionName),
						FullName(row.Title, row.FirstName, row.LastName),
						strings.TrimSpace(row.Address1),
						strings.TrimSpace(row.Address2),
						strings.TrimSpace(row.City),
						FormatPostcode(row.PostalCode),
						quantity,
						FormatDeliveryInstructions(strings.TrimSpace(row.DeliveryInstructions)),
						dateField,
						chargeDay,
					}
				},
			},
		},
	}
}

// ParseHomeDeliveryRow binds a header-indexed record to the home-delivery
// row shape. Unknown columns are ignored; missing columns become empty.
func ParseHomeDeliveryRow(rec map[string]string) domain.HomeDeliveryRow {
	return domain.HomeDeliveryRow{
		SubscriptionName:     rec[colSubscriptionName],
		Title:                rec[colTitle],
		FirstName:            rec[colFirstName],
		LastName:             rec[colLastName],
		Address1:             rec[colAddress1],
		Address2:             rec[colAddress2],
		City:                 rec[colCity],
		PostalCode:           rec[colPostalCode],
		DeliveryQuantity:     rec[colDeliveryQuantity],
		DeliveryAgent:        rec[colDeliveryAgent],
		DeliveryInstructions: rec[colDeliveryInstructions],
	}
}

func validateHomeDeliveryRow(row domain.HomeDeliveryRow, counters *domain.ValidationCounters) {
	if strings.TrimSpace(row.Address1) == "" {
		counters.Record(domain.MissingAddress)
	}
	if strings.TrimSpace(row.City) == "" {
		counters.Record(domain.MissingCity)
	}
	if strings.TrimSpace(row.PostalCode) == "" {
		counters.Record(domain.MissingPostcode)
	}
	if strings.TrimSpace(row.DeliveryAgent) == "" {
		counters.Record(domain.MissingDeliveryAgent)
	}
	if FullName(row.Title, row.FirstName, row.LastName) == "" {
		counters.Record(domain.MissingName)
	}
}
