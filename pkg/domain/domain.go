package domain

// FulfilmentType identifies which fulfilment a run produces files for.
type FulfilmentType string

const (
	HomeDelivery FulfilmentType = "homedelivery"
	Weekly       FulfilmentType = "weekly"
)

// QueryResult is one entry of the export manifest: a logical query name
// and the exported file it produced.
type QueryResult struct {
	QueryName string
	FileName  string
}

// SubscriptionRow is one weekly-export subscription record. The export
// carries more columns than these; unknown columns are ignored at parse.
type SubscriptionRow struct {
	SubscriptionName   string
	Title              string
	FirstName          string
	LastName           string
	CompanyName        string
	Address1           string
	Address2           string
	City               string
	State              string
	PostalCode         string
	Country            string
	CanadaHandDelivery string
}

// HomeDeliveryRow is one home-delivery-export subscription record.
type HomeDeliveryRow struct {
	SubscriptionName     string
	Title                string
	FirstName            string
	LastName             string
	Address1             string
	Address2             string
	City                 string
	PostalCode           string
	DeliveryQuantity     string
	DeliveryAgent        string
	DeliveryInstructions string
}

// OutputRow is one destination-schema CSV record, ordered per the
// destination's header list.
type OutputRow []string

// ValidationField names a per-row defect tallied during streaming.
// Defects never reject a row; they only feed run telemetry.
type ValidationField string

const (
	MissingAddress       ValidationField = "missing-address"
	MissingCity          ValidationField = "missing-city"
	MissingPostcode      ValidationField = "missing-postcode"
	MissingCountry       ValidationField = "missing-country"
	MissingDeliveryAgent ValidationField = "missing-delivery-agent"
	MissingName          ValidationField = "missing-name"
)

// ValidationCounters accumulates per-row defect tallies for one run.
type ValidationCounters struct {
	Fulfilment FulfilmentType
	Counts     map[ValidationField]int
}

func NewValidationCounters(ft FulfilmentType) *ValidationCounters {
	return &ValidationCounters{
		Fulfilment: ft,
		Counts:     map[ValidationField]int{},
	}
}

// Record tallies one defect occurrence.
func (c *ValidationCounters) Record(field ValidationField) {
	c.Counts[field]++
}

// Total returns the number of defects recorded across all fields.
func (c *ValidationCounters) Total() int {
	total := 0
	for _, n := range c.Counts {
		total += n
	}
	return total
}

// OutputFile describes one finalized destination artifact.
type OutputFile struct {
	Destination string
	Folder      string
	FileName    string
	Location    string // storage location after upload
	Rows        int
}

// RunReport is the outcome of one pipeline run.
type RunReport struct {
	JobID         string
	Fulfilment    FulfilmentType
	DeliveryDate  string
	RowsProcessed int
	RowsSuspended int
	RowsSkipped   int
	Files         []OutputFile
	Validation    map[ValidationField]int
}
