package fulfilment_orchestra

import "github.com/google/uuid"

// ApplicationName is the task list for fulfilment run workflows
const ApplicationName = "fulfilmentTaskGroup"

// HostID - Use a new uuid just for demo so we can run 2 host specific activity workers on same machine.
// In real world case, you would use a hostname or ip address as HostID.
var HostID = ApplicationName + "_" + uuid.New().String()

// FulfilmentRunWorkflowName is the task list for producing one delivery-date batch of fulfilment files
const FulfilmentRunWorkflowName = "github.com/pressrun/fulfilment-orchestra.FulfilmentRunWorkflow"
