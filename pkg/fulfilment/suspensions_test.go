package fulfilment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressrun/fulfilment-orchestra/pkg/fulfilment"
)

func TestBuildSuspensionSet(t *testing.T) {
	csvData := "Subscription.Name,Holiday.StartDate\n" +
		"A-S00000001,2018-02-01\n" +
		"A-S00000002,2018-02-05\n" +
		"A-S00000001,2018-02-12\n"

	set, err := fulfilment.BuildSuspensionSet(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 2, set.Size())
	require.True(t, set.Has("A-S00000001"))
	require.True(t, set.Has("A-S00000002"))
	require.False(t, set.Has("A-S00000003"))
}

func TestBuildSuspensionSetEmptyFile(t *testing.T) {
	set, err := fulfilment.BuildSuspensionSet(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, 0, set.Size())
}

func TestBuildSuspensionSetMissingKeyColumn(t *testing.T) {
	csvData := "SomeOtherColumn\nA-S00000001\n"

	set, err := fulfilment.BuildSuspensionSet(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 0, set.Size())
}

func TestBuildSuspensionSetSkipsMalformedRows(t *testing.T) {
	csvData := "Subscription.Name,Holiday.StartDate\n" +
		"A-S00000001,2018-02-01\n" +
		"\"A-S0000,broken\n"

	set, err := fulfilment.BuildSuspensionSet(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Equal(t, 1, set.Size())
	require.True(t, set.Has("A-S00000001"))
}
