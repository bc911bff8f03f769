package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/utils"
)

func TestCleanHeaders(t *testing.T) {
	headers := []string{
		"\uFEFFSubscription.Name",
		` "SoldToContact.FirstName" `,
		"SoldToContact.LastName",
	}
	require.Equal(t, []string{
		"Subscription.Name",
		"SoldToContact.FirstName",
		"SoldToContact.LastName",
	}, utils.CleanHeaders(headers))
}

func TestRecordToMap(t *testing.T) {
	headers := []string{"Subscription.Name", "SoldToContact.City", "SoldToContact.Country"}

	rec := utils.RecordToMap(headers, []string{"A-S00000001", "London"})
	require.Equal(t, "A-S00000001", rec["Subscription.Name"])
	require.Equal(t, "London", rec["SoldToContact.City"])
	require.Equal(t, "", rec["SoldToContact.Country"])

	// extra values beyond the headers are dropped
	rec = utils.RecordToMap(headers, []string{"A-S00000002", "Paris", "France", "extra"})
	require.Len(t, rec, 3)
	require.Equal(t, "France", rec["SoldToContact.Country"])
}
