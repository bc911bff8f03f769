package fulfilment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/fulfilment"
)

func TestResolveDeliveryDateExplicit(t *testing.T) {
	now := time.Date(2017, time.November, 7, 10, 30, 0, 0, time.UTC)

	date, err := fulfilment.ResolveDeliveryDate(fulfilment.DeliveryDateInput{Date: "2017-07-06"}, now)
	require.NoError(t, err)
	require.Equal(t, "2017-07-06", date.Format(fulfilment.DeliveryDateFormat))

	// explicit date wins over a weekday rule
	date, err = fulfilment.ResolveDeliveryDate(fulfilment.DeliveryDateInput{
		Date:             "2017-07-06",
		Weekday:          "friday",
		MinDaysInAdvance: 8,
	}, now)
	require.NoError(t, err)
	require.Equal(t, "2017-07-06", date.Format(fulfilment.DeliveryDateFormat))
}

func TestResolveDeliveryDateRejectsBadInput(t *testing.T) {
	now := time.Date(2017, time.November, 7, 0, 0, 0, 0, time.UTC)

	_, err := fulfilment.ResolveDeliveryDate(fulfilment.DeliveryDateInput{Date: "06/07/2017"}, now)
	require.ErrorIs(t, err, fulfilment.ErrInvalidDateFormat)

	_, err = fulfilment.ResolveDeliveryDate(fulfilment.DeliveryDateInput{Date: "2017-14-32"}, now)
	require.ErrorIs(t, err, fulfilment.ErrInvalidDateFormat)

	_, err = fulfilment.ResolveDeliveryDate(fulfilment.DeliveryDateInput{Weekday: "someday"}, now)
	require.ErrorIs(t, err, fulfilment.ErrInvalidWeekday)

	_, err = fulfilment.ResolveDeliveryDate(fulfilment.DeliveryDateInput{}, now)
	require.ErrorIs(t, err, fulfilment.ErrMissingDateInput)
}

func TestNextDeliveryDay(t *testing.T) {
	// Tuesday; threshold lands on Wednesday the 15th, next Friday is the 17th
	tue := time.Date(2017, time.November, 7, 9, 0, 0, 0, time.UTC)
	date := fulfilment.NextDeliveryDay(tue, time.Friday, 8)
	require.Equal(t, "2017-11-17", date.Format(fulfilment.DeliveryDateFormat))

	// Friday; threshold lands on Saturday the 18th so the 17th is too close
	fri := time.Date(2017, time.November, 10, 9, 0, 0, 0, time.UTC)
	date = fulfilment.NextDeliveryDay(fri, time.Friday, 8)
	require.Equal(t, "2017-11-24", date.Format(fulfilment.DeliveryDateFormat))

	// threshold day itself qualifies when it is the target weekday
	date = fulfilment.NextDeliveryDay(fri, time.Saturday, 8)
	require.Equal(t, "2017-11-18", date.Format(fulfilment.DeliveryDateFormat))

	// zero minimum on the target weekday resolves to today
	date = fulfilment.NextDeliveryDay(fri, time.Friday, 0)
	require.Equal(t, "2017-11-10", date.Format(fulfilment.DeliveryDateFormat))
}

func TestParseWeekdayAliases(t *testing.T) {
	for _, name := range []string{"friday", "FRIDAY", "Fri", " fri "} {
		day, err := fulfilment.ParseWeekday(name)
		require.NoError(t, err, name)
		require.Equal(t, time.Friday, day, name)
	}
}

func TestChargeDay(t *testing.T) {
	date := time.Date(2017, time.November, 17, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "Friday", fulfilment.ChargeDay(date))
}
