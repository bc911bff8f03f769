package fulfilment_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/fulfilment"
)

func TestResolveQueryFiles(t *testing.T) {
	manifest := []domain.QueryResult{
		{QueryName: "WeeklyIntroductoryPeriod", FileName: "intro.csv"},
		{QueryName: "WeeklySubscriptions", FileName: "subs.csv"},
		{QueryName: "HolidaySuspensions", FileName: "holidays.csv"},
		{QueryName: "Unrelated", FileName: "ignored.csv"},
	}

	expected := domain.NewOrderedSet("WeeklySubscriptions", "HolidaySuspensions")
	files, err := fulfilment.ResolveQueryFiles(manifest, expected)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"WeeklySubscriptions": "subs.csv",
		"HolidaySuspensions":  "holidays.csv",
	}, files)
}

func TestResolveQueryFilesMissingQuery(t *testing.T) {
	manifest := []domain.QueryResult{
		{QueryName: "WeeklySubscriptions", FileName: "subs.csv"},
	}

	expected := domain.NewOrderedSet("WeeklySubscriptions", "HolidaySuspensions")
	_, err := fulfilment.ResolveQueryFiles(manifest, expected)
	require.ErrorIs(t, err, fulfilment.ErrAmbiguousOrMissingQuery)
	require.Contains(t, err.Error(), "HolidaySuspensions")
}

func TestResolveQueryFilesDuplicateQuery(t *testing.T) {
	manifest := []domain.QueryResult{
		{QueryName: "WeeklySubscriptions", FileName: "subs-1.csv"},
		{QueryName: "WeeklySubscriptions", FileName: "subs-2.csv"},
	}

	expected := domain.NewOrderedSet("WeeklySubscriptions")
	_, err := fulfilment.ResolveQueryFiles(manifest, expected)
	require.ErrorIs(t, err, fulfilment.ErrAmbiguousOrMissingQuery)
	require.Contains(t, err.Error(), "WeeklySubscriptions")
}
