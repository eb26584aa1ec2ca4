package account

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Vehicle is a snapshot of a vehicle record returned by the owner API.
type Vehicle struct {
	ID          int64    `json:"id"`
	VIN         string   `json:"vin"`
	DisplayName string   `json:"display_name"`
	Color       *string  `json:"color"`
	Tokens      []string `json:"tokens"`
	State       string   `json:"state"`
	InService   bool     `json:"in_service"`
	// IDS is the identifier used in per-vehicle endpoint paths.
	IDS       string `json:"id_s"`
	VehicleID int64  `json:"vehicle_id"`
}

// State is the untyped response object of a vehicle state endpoint.
type State map[string]interface{}

// ListVehicles returns the vehicles that belong to the account, in the order the server lists
// them.
func (a *Account) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	body, err := a.Get(ctx, "api/1/vehicles")
	if err != nil {
		return nil, err
	}
	var rsp struct {
		Response []Vehicle `json:"response"`
	}
	if err := json.Unmarshal(body, &rsp); err != nil {
		return nil, fmt.Errorf("invalid vehicle list: %w", err)
	}
	return rsp.Response, nil
}

func (a *Account) fetchState(ctx context.Context, vehicleID, resource string) (State, error) {
	body, err := a.Get(ctx, fmt.Sprintf("api/1/vehicles/%s/%s", url.PathEscape(vehicleID), resource))
	if err != nil {
		return nil, err
	}
	var rsp struct {
		Response State `json:"response"`
	}
	if err := json.Unmarshal(body, &rsp); err != nil {
		return nil, fmt.Errorf("invalid %s response: %w", resource, err)
	}
	if rsp.Response == nil {
		return State{}, nil
	}
	return rsp.Response, nil
}

// GetVehicleData fetches the full data record of a vehicle. The vehicleID is the id_s field of a
// [Vehicle].
func (a *Account) GetVehicleData(ctx context.Context, vehicleID string) (State, error) {
	return a.fetchState(ctx, vehicleID, "data")
}

// GetVehicleState fetches the merged vehicle_data payload (charge, climate, drive and vehicle
// state).
func (a *Account) GetVehicleState(ctx context.Context, vehicleID string) (State, error) {
	return a.fetchState(ctx, vehicleID, "vehicle_data")
}

func (a *Account) GetChargeState(ctx context.Context, vehicleID string) (State, error) {
	return a.fetchState(ctx, vehicleID, "charge_state")
}

func (a *Account) GetClimateState(ctx context.Context, vehicleID string) (State, error) {
	return a.fetchState(ctx, vehicleID, "climate_state")
}

// GetDriveState fetches location and motion data.
func (a *Account) GetDriveState(ctx context.Context, vehicleID string) (State, error) {
	return a.fetchState(ctx, vehicleID, "drive_state")
}
