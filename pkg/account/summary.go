package account

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const notAvailable = "N/A"

// Value formats the field key of s for display. Missing and null fields are rendered as "N/A".
func (s State) Value(key string) string {
	v, ok := s[key]
	if !ok || v == nil {
		return notAvailable
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return fmt.Sprint(value)
	}
}

// Section returns the nested object stored under key, or an empty State if there isn't one.
func (s State) Section(key string) State {
	if nested, ok := s[key].(map[string]interface{}); ok {
		return nested
	}
	return State{}
}

const rule = "------------------------------------------"

func formatSummary(data, charge, drive State) string {
	var b strings.Builder
	line := func(format string, a ...interface{}) {
		fmt.Fprintf(&b, format+"\n", a...)
	}

	line("Tesla Vehicle Summary:")
	line(rule)
	line("")
	line("Basic Info:")
	line("  * Name: %s", data.Value("display_name"))
	line("  * VIN: %s", data.Value("vin"))
	line("  * Color: %s", data.Value("color"))
	line("  * State: %s", data.Value("state"))
	line("")
	line("Battery & Charge:")
	line("  * Battery Level: %s%%", charge.Value("battery_level"))
	line("  * Charging State: %s", charge.Value("charging_state"))
	line("  * Charge Rate: %s km/h", charge.Value("charge_rate"))
	line("  * Time to Full Charge: %s hours", charge.Value("time_to_full_charge"))
	line("  * Range: %s km", data.Value("battery_range"))
	line("")
	line("Location:")
	line("  * Latitude: %s", drive.Value("latitude"))
	line("  * Longitude: %s", drive.Value("longitude"))
	line("  * Speed: %s km/h", drive.Value("speed"))
	line("  * Power: %s kW", drive.Value("power"))
	line("")
	line("Vehicle Info:")
	line("  * Odometer: %s km", data.Value("odometer"))
	line("  * Software Version: %s", data.Section("software_update").Value("version"))
	line("  * Locked: %s", data.Value("locked"))
	line("  * Sentry Mode: %s", data.Value("sentry_mode"))
	line("  * Summon Standby: %s", data.Value("summon_standby"))
	line("")
	line(rule)
	return b.String()
}

// VehicleSummary returns a human-readable report built from the vehicle's data, charge state and
// drive state.
//
// Unlike the individual state reads, VehicleSummary does not return an error; if any read fails
// the returned text describes the failure instead.
func (a *Account) VehicleSummary(ctx context.Context, vehicleID string) string {
	data, err := a.GetVehicleData(ctx, vehicleID)
	if err != nil {
		return summaryError(err)
	}
	charge, err := a.GetChargeState(ctx, vehicleID)
	if err != nil {
		return summaryError(err)
	}
	drive, err := a.GetDriveState(ctx, vehicleID)
	if err != nil {
		return summaryError(err)
	}
	return formatSummary(data, charge, drive)
}

func summaryError(err error) string {
	return fmt.Sprintf("Error getting vehicle summary: %s", err)
}
