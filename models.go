package fulfilment_orchestra

import (
	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

type ContextKey string

func (c ContextKey) String() string {
	return string(c)
}

const StoreContextKey = ContextKey("object-store")
const TelemetryContextKey = ContextKey("telemetry-sink")
const LedgerContextKey = ContextKey("run-ledger")

// FulfilmentRunRequest is the workflow input for one fulfilment run. Either
// DeliveryDate carries an explicit date or TargetDay plus MinDaysInAdvance
// ask for the next qualifying weekday; never both.
type FulfilmentRunRequest struct {
	JobID            string
	Fulfilment       domain.FulfilmentType
	Stage            string
	DeliveryDate     string
	TargetDay        string
	MinDaysInAdvance int
	Manifest         []domain.QueryResult
}

// RecordRunInput carries the outcome of a run to the ledger activity.
// Report is nil when the run failed before producing one.
type RecordRunInput struct {
	JobID      string
	Fulfilment domain.FulfilmentType
	Report     *domain.RunReport
	Status     string
	Error      string
}
