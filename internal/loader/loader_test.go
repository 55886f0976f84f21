package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashpulse/internal/domain"
	"dashpulse/internal/errors"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMapColumns(t *testing.T) {
	cols := mapColumns([]string{"Date", " Pickup Time ", "Num-Items", "", "Total"})

	idx, ok := cols.lookup("date")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	idx, ok = cols.lookup("timestamp", "pickup_time")
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	idx, ok = cols.lookup("items", "num_items")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	_, ok = cols.lookup("miles")
	assert.False(t, ok)
}

func TestParseHelpers(t *testing.T) {
	t.Run("parseFloat", func(t *testing.T) {
		assert.Equal(t, 1234.5, parseFloat("1,234.5", 0))
		assert.Equal(t, 7.0, parseFloat(" 7 ", 0))
		fallback := domain.NullFloat()
		assert.True(t, domain.IsNull(parseFloat("", fallback)))
		assert.True(t, domain.IsNull(parseFloat("n/a", fallback)))
	})

	t.Run("parseDate formats", func(t *testing.T) {
		for _, value := range []string{"2024-06-03", "06/03/2024", "6/3/2024"} {
			parsed, err := parseDate(value)
			require.NoError(t, err, value)
			assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), parsed)
		}
		_, err := parseDate("June 3rd")
		assert.Error(t, err)
	})

	t.Run("parseBool", func(t *testing.T) {
		assert.True(t, parseBool("TRUE"))
		assert.True(t, parseBool("1"))
		assert.True(t, parseBool("yes"))
		assert.False(t, parseBool("0"))
		assert.False(t, parseBool(""))
	})
}

func TestLoadDeliveries(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		path := writeCSV(t, "deliveries.csv",
			"date,pickup_time,items,total,tip,miles,wait_minutes,location1,location1_items,location2,location2_items\n"+
				"2024-06-03,2024-06-03 11:30:00,2,14.50,3.00,5.2,4,Burger Barn,1,Taco Stop,1\n"+
				"2024-06-03,2024-06-03 18:05:00,1,8.00,,,,Burger Barn,1,,\n")

		records, err := LoadDeliveries(path)
		require.NoError(t, err)
		require.Len(t, records, 2)

		first := records[0]
		assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), first.Date)
		assert.Equal(t, 11, first.PickupAt.Hour())
		assert.Equal(t, 2, first.Items)
		assert.InDelta(t, 14.50, first.Earnings, 1e-9)
		assert.True(t, first.Tipped) // no tipped column, inferred from tip > 0
		assert.InDelta(t, 5.2, first.Miles, 1e-9)
		assert.Equal(t, "Burger Barn", first.Stops[0].Location)
		assert.Equal(t, "Taco Stop", first.Stops[1].Location)

		second := records[1]
		assert.False(t, second.Tipped)
		assert.True(t, domain.IsNull(second.Miles))
		assert.True(t, domain.IsNull(second.WaitMinutes))
	})

	t.Run("invalid date aborts", func(t *testing.T) {
		path := writeCSV(t, "deliveries.csv",
			"date,pickup_time,items,total,location1,location1_items\n"+
				"2024-06-03,2024-06-03 11:30:00,1,8.00,A,1\n"+
				"not-a-date,2024-06-04 11:30:00,1,8.00,A,1\n")

		records, err := LoadDeliveries(path)
		assert.Nil(t, records)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidDate, errors.CodeOf(err))
		assert.Contains(t, err.Error(), "row 3")
	})

	t.Run("item count mismatch aborts", func(t *testing.T) {
		path := writeCSV(t, "deliveries.csv",
			"date,pickup_time,items,total,location1,location1_items\n"+
				"2024-06-03,2024-06-03 11:30:00,3,8.00,A,1\n")

		_, err := LoadDeliveries(path)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidRow, errors.CodeOf(err))
	})

	t.Run("header only is empty", func(t *testing.T) {
		path := writeCSV(t, "deliveries.csv", "date,pickup_time,items,total\n")
		_, err := LoadDeliveries(path)
		assert.Equal(t, errors.CodeEmptyInput, errors.CodeOf(err))
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, "deliveries.csv", "date,items,total\nrow\n")
		_, err := LoadDeliveries(path)
		assert.Equal(t, errors.CodeInvalidRow, errors.CodeOf(err))
	})

	t.Run("BOM and blank rows tolerated", func(t *testing.T) {
		path := writeCSV(t, "deliveries.csv",
			"\xEF\xBB\xBFdate,pickup_time,items,total,location1,location1_items\n"+
				"2024-06-03,2024-06-03 11:30:00,1,8.00,A,1\n"+
				",,,,,\n")

		records, err := LoadDeliveries(path)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})
}

func TestLoadGuarantees(t *testing.T) {
	path := writeCSV(t, "guaranteed_earnings.csv",
		"date,amount\n"+
			"2024-06-08,12.50\n"+
			"2024-06-09,\n")

	events, err := LoadGuarantees(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.True(t, events[0].Achieved())
	// Blank amount is a listed-but-unachieved guarantee, not a null
	assert.Zero(t, events[1].Amount)
	assert.False(t, events[1].Achieved())
}

func TestLoadSessions(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		path := writeCSV(t, "hours_mileage.csv",
			"date,hours,minutes,seconds,total_miles\n"+
				"2024-06-03,4,30,0,52.3\n")

		sessions, err := LoadSessions(path)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, 4, sessions[0].Hours)
		assert.Equal(t, 30, sessions[0].Minutes)
		assert.InDelta(t, 52.3, sessions[0].TotalMiles, 1e-9)
	})

	t.Run("out of range duration aborts", func(t *testing.T) {
		path := writeCSV(t, "hours_mileage.csv",
			"date,hours,minutes,seconds\n"+
				"2024-06-03,2,75,0\n")

		_, err := LoadSessions(path)
		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidRow, errors.CodeOf(err))
	})
}

func TestReadTableUnsupportedFormat(t *testing.T) {
	_, err := readTable("deliveries.txt")
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingInput, errors.CodeOf(err))
}
