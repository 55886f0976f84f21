package loader

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"dashpulse/internal/domain"
	"dashpulse/internal/errors"
)

// LoadDeliveries reads the deliveries table. Required columns: date, pickup
// timestamp, items, earnings. Optional columns default: pay fields to 0,
// distance and wait to NaN (absent). The weekday code column in the source
// is ignored — the enricher derives it from the date.
func LoadDeliveries(path string) ([]domain.DeliveryRecord, error) {
	source := filepath.Base(path)
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.EmptyInput(source)
	}

	cols := mapColumns(rows[0])
	dateIdx, ok := cols.lookup("date")
	if !ok {
		return nil, errors.InvalidRow(source, 1, "missing date column")
	}
	tsIdx, ok := cols.lookup("timestamp", "pickup_time", "pickup_at", "time")
	if !ok {
		return nil, errors.InvalidRow(source, 1, "missing timestamp column")
	}
	itemsIdx, ok := cols.lookup("items", "num_items", "orders")
	if !ok {
		return nil, errors.InvalidRow(source, 1, "missing items column")
	}
	earningsIdx, ok := cols.lookup("earnings", "total", "total_earnings")
	if !ok {
		return nil, errors.InvalidRow(source, 1, "missing earnings column")
	}

	sessionIdx, _ := cols.lookup("session", "session_id", "shift")
	basePayIdx, _ := cols.lookup("base_pay", "base", "pay")
	tipIdx, _ := cols.lookup("tip", "tip_amount", "tips")
	tippedIdx, _ := cols.lookup("tipped", "tip_received", "tip_flag")
	milesIdx, _ := cols.lookup("miles", "distance", "distance_miles")
	waitIdx, _ := cols.lookup("wait_minutes", "wait", "wait_time")

	locIdx := make([]int, domain.MaxStops)
	locItemsIdx := make([]int, domain.MaxStops)
	for i := 0; i < domain.MaxStops; i++ {
		n := i + 1
		locIdx[i], _ = cols.lookup(
			fmt.Sprintf("location%d", n), fmt.Sprintf("location_%d", n), fmt.Sprintf("name%d", n))
		locItemsIdx[i], _ = cols.lookup(
			fmt.Sprintf("location%d_items", n), fmt.Sprintf("items%d", n), fmt.Sprintf("orders%d", n))
	}

	records := make([]domain.DeliveryRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		date, err := parseDate(cell(row, dateIdx))
		if err != nil {
			return nil, errors.InvalidDate(source, rowNum, cell(row, dateIdx))
		}
		pickupAt, err := parseTimestamp(cell(row, tsIdx))
		if err != nil {
			return nil, errors.InvalidDate(source, rowNum, cell(row, tsIdx))
		}

		rec := domain.DeliveryRecord{
			Date:        date,
			PickupAt:    pickupAt,
			SessionID:   cell(row, sessionIdx),
			Items:       parseInt(cell(row, itemsIdx)),
			BasePay:     parseFloat(cell(row, basePayIdx), 0),
			Tip:         parseFloat(cell(row, tipIdx), 0),
			Earnings:    parseFloat(cell(row, earningsIdx), 0),
			Miles:       parseFloat(cell(row, milesIdx), domain.NullFloat()),
			WaitMinutes: parseFloat(cell(row, waitIdx), domain.NullFloat()),
		}
		if tippedIdx >= 0 {
			rec.Tipped = parseBool(cell(row, tippedIdx))
		} else {
			rec.Tipped = rec.Tip > 0
		}

		for s := 0; s < domain.MaxStops; s++ {
			name := cell(row, locIdx[s])
			if name == "" {
				continue
			}
			rec.Stops[s] = domain.Stop{Location: name, Items: parseInt(cell(row, locItemsIdx[s]))}
		}

		if !rec.IsValid() {
			return nil, errors.InvalidRow(source, rowNum,
				fmt.Sprintf("location item counts sum to %d, row total is %d", rec.StopItems(), rec.Items))
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, errors.EmptyInput(source)
	}
	slog.Info("loaded deliveries", slog.String("file", source), slog.Int("records", len(records)))
	return records, nil
}

// LoadGuarantees reads the guaranteed-earnings table. A blank amount cell
// is kept as 0: a listed date with no payout means the guarantee was not
// achieved.
func LoadGuarantees(path string) ([]domain.GuaranteeEvent, error) {
	source := filepath.Base(path)
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.EmptyInput(source)
	}

	cols := mapColumns(rows[0])
	dateIdx, ok := cols.lookup("date")
	if !ok {
		return nil, errors.InvalidRow(source, 1, "missing date column")
	}
	amountIdx, _ := cols.lookup("amount", "guarantee", "guaranteed_earnings", "guarantee_amount")

	events := make([]domain.GuaranteeEvent, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		date, err := parseDate(cell(row, dateIdx))
		if err != nil {
			return nil, errors.InvalidDate(source, rowNum, cell(row, dateIdx))
		}
		events = append(events, domain.GuaranteeEvent{
			Date:   date,
			Amount: parseFloat(cell(row, amountIdx), 0),
		})
	}

	slog.Info("loaded guarantees", slog.String("file", source), slog.Int("events", len(events)))
	return events, nil
}

// LoadSessions reads the hours/mileage table.
func LoadSessions(path string) ([]domain.ShiftSession, error) {
	source := filepath.Base(path)
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.EmptyInput(source)
	}

	cols := mapColumns(rows[0])
	dateIdx, ok := cols.lookup("date")
	if !ok {
		return nil, errors.InvalidRow(source, 1, "missing date column")
	}
	hoursIdx, _ := cols.lookup("hours", "hrs")
	minutesIdx, _ := cols.lookup("minutes", "mins")
	secondsIdx, _ := cols.lookup("seconds", "secs")
	milesIdx, _ := cols.lookup("total_miles", "miles", "mileage")

	sessions := make([]domain.ShiftSession, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			continue
		}

		date, err := parseDate(cell(row, dateIdx))
		if err != nil {
			return nil, errors.InvalidDate(source, rowNum, cell(row, dateIdx))
		}

		s := domain.ShiftSession{
			Date:       date,
			Hours:      parseInt(cell(row, hoursIdx)),
			Minutes:    parseInt(cell(row, minutesIdx)),
			Seconds:    parseInt(cell(row, secondsIdx)),
			TotalMiles: parseFloat(cell(row, milesIdx), 0),
		}
		if !s.IsValid() {
			return nil, errors.InvalidRow(source, rowNum, "duration components out of range")
		}
		sessions = append(sessions, s)
	}

	if len(sessions) == 0 {
		return nil, errors.EmptyInput(source)
	}
	slog.Info("loaded sessions", slog.String("file", source), slog.Int("sessions", len(sessions)))
	return sessions, nil
}
