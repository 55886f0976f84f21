package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryRecordIsValid(t *testing.T) {
	date := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		rec   DeliveryRecord
		valid bool
	}{
		{
			name: "single stop matching total",
			rec: DeliveryRecord{
				Date:  date,
				Items: 1,
				Stops: [MaxStops]Stop{{Location: "A", Items: 1}},
			},
			valid: true,
		},
		{
			name: "stacked across two stops",
			rec: DeliveryRecord{
				Date:  date,
				Items: 3,
				Stops: [MaxStops]Stop{{Location: "A", Items: 2}, {Location: "B", Items: 1}},
			},
			valid: true,
		},
		{
			name: "item counts disagree",
			rec: DeliveryRecord{
				Date:  date,
				Items: 2,
				Stops: [MaxStops]Stop{{Location: "A", Items: 1}},
			},
			valid: false,
		},
		{
			name:  "no items",
			rec:   DeliveryRecord{Date: date},
			valid: false,
		},
		{
			name: "zero date",
			rec: DeliveryRecord{
				Items: 1,
				Stops: [MaxStops]Stop{{Location: "A", Items: 1}},
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.rec.IsValid())
		})
	}
}

func TestNonEmptyStops(t *testing.T) {
	rec := DeliveryRecord{
		Stops: [MaxStops]Stop{
			{Location: "A", Items: 1},
			{},
			{Location: "B", Items: 2},
		},
	}

	stops := rec.NonEmptyStops()
	assert.Len(t, stops, 2)
	assert.Equal(t, "A", stops[0].Location)
	assert.Equal(t, "B", stops[1].Location)
}

func TestStacked(t *testing.T) {
	assert.False(t, DeliveryRecord{Items: 1}.Stacked())
	assert.True(t, DeliveryRecord{Items: 2}.Stacked())
}

func TestShiftSessionIsValid(t *testing.T) {
	date := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)

	assert.True(t, ShiftSession{Date: date, Hours: 4, Minutes: 59, Seconds: 59}.IsValid())
	assert.False(t, ShiftSession{Date: date, Minutes: 60}.IsValid())
	assert.False(t, ShiftSession{Date: date, Seconds: -1}.IsValid())
	assert.False(t, ShiftSession{Hours: 1}.IsValid())
}

func TestNullFloat(t *testing.T) {
	assert.True(t, IsNull(NullFloat()))
	assert.False(t, IsNull(0))
	assert.False(t, IsNull(-1.5))
}
