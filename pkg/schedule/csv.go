package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// CSV column headers of the schedule configuration file.
const (
	columnApp         = "App"
	columnMaxDuration = "Max Duration"
	columnDays        = "Days"
	columnTimeRanges  = "Time Ranges"
)

// Load reads a schedule configuration from a CSV file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a schedule configuration from CSV data. Each row describes one
// app for one set of days. A row with Days, Time Ranges, and Max Duration all
// empty marks the app as permanently unrestricted. Multiple rows for the same
// app merge into a single schedule.
func Parse(r io.Reader) (*Config, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty config: missing header row")
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{columnApp, columnMaxDuration, columnDays, columnTimeRanges} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	cfg := NewConfig()
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		app := field(record, columnApp)
		if app == "" {
			continue
		}
		daysSpec := field(record, columnDays)
		timeSpec := field(record, columnTimeRanges)
		durationSpec := field(record, columnMaxDuration)

		// All three schedule fields empty marks the app always allowed.
		if daysSpec == "" && timeSpec == "" && durationSpec == "" {
			cfg.Apps[app] = &AppSchedule{AlwaysAllowed: true}
			continue
		}

		entry, ok := cfg.Apps[app]
		if !ok || entry.AlwaysAllowed {
			entry = newScheduled()
			cfg.Apps[app] = entry
		}

		days, err := ParseDays(daysSpec)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", line, app, err)
		}
		windows, err := ParseTimeWindows(timeSpec)
		if err != nil {
			return nil, fmt.Errorf("row %d (%s): %w", line, app, err)
		}

		limit := -1
		if durationSpec != "" {
			limit, err = ParseDuration(durationSpec)
			if err != nil {
				return nil, fmt.Errorf("row %d (%s): %w", line, app, err)
			}
		}

		for _, day := range days {
			entry.Windows[day] = windows
			if limit >= 0 {
				entry.Limits[day] = limit
			}
		}
	}

	return cfg, nil
}

// WriteDefault writes a template configuration covering the given app names,
// each with a 0:00 daily cap and no day or time restrictions.
func WriteDefault(w io.Writer, apps []string) error {
	sorted := make([]string, len(apps))
	copy(sorted, apps)
	sort.Strings(sorted)

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{columnApp, columnMaxDuration, columnDays, columnTimeRanges}); err != nil {
		return err
	}
	for _, app := range sorted {
		if err := writer.Write([]string{app, "0:00", "", ""}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDefaultFile writes the template configuration to a new file at path.
func WriteDefaultFile(path string, apps []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := WriteDefault(f, apps); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
