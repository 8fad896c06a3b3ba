package console

import (
	"bytes"
	"testing"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableRenderer_Sections(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf, "", false)

	require.NoError(t, r.Basic(models.BasicStats{
		TotalRides: 2,
		Payments: []models.PaymentShare{
			{PaymentType: "card", Count: 1, Percentage: 50},
			{PaymentType: "wallet", Count: 1, Percentage: 50},
		},
	}))
	require.NoError(t, r.PeakHours(models.PeakHours{
		Count: 1,
		Slots: []models.PeakSlot{{DayOfWeek: "Saturday", Hour: 9, TotalRides: 131}},
	}))
	require.NoError(t, r.TopDrivers(models.TopDrivers{
		Limit:   5,
		Drivers: []models.DriverRanking{{Name: "Dana Bekova", Rating: 4.8, TotalRides: 3310, RidesInDataset: 1}},
	}))

	out := buf.String()
	assert.Contains(t, out, "  Total rides: 2\n")
	assert.Contains(t, out, "Payment Distribution:\n+")
	assert.Contains(t, out, "PAYMENT TYPE")
	assert.Contains(t, out, "wallet")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "09:00")
	assert.Contains(t, out, "Saturday")
	assert.Contains(t, out, "RIDES IN DATASET")
	assert.Contains(t, out, "Dana Bekova")
	assert.Contains(t, out, "3310")
	assert.NotContains(t, out, "Saturday at 09:00")
}
