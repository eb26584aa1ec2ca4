package account

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/teslamotors/vehicle-assistant/internal/log"
	"github.com/teslamotors/vehicle-assistant/pkg/connector/inet"
)

// DefaultClimateTemp is the cabin temperature (Celsius) used when the caller does not specify one.
const DefaultClimateTemp = 22.0

func (a *Account) sendCommand(ctx context.Context, vehicleID, command string, payload interface{}) (*inet.Reply, error) {
	endpoint := fmt.Sprintf("api/1/vehicles/%s/command/%s", url.PathEscape(vehicleID), command)
	reply, err := a.Post(ctx, endpoint, payload)
	if err != nil {
		log.Debug("Command %s failed: %s", command, err)
	}
	return reply, err
}

// commandResult extracts the outcome of a command from the response field of a reply.
//
// The owner API responds with {"response": true}; the Fleet API responds with
// {"response": {"result": true, "reason": ""}}. Both forms are accepted.
func commandResult(reply *inet.Reply) bool {
	var rsp struct {
		Response json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal(reply.Body, &rsp); err != nil {
		log.Debug("Invalid command response (%d bytes): %s", len(reply.Body), reply.Body)
		return false
	}
	var ok bool
	if err := json.Unmarshal(rsp.Response, &ok); err == nil {
		return ok
	}
	var result struct {
		Result bool   `json:"result"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(rsp.Response, &result); err != nil {
		return false
	}
	if !result.Result && result.Reason != "" {
		log.Debug("Vehicle rejected command: %s", result.Reason)
	}
	return result.Result
}

func (a *Account) simpleCommand(ctx context.Context, vehicleID, command string) bool {
	reply, err := a.sendCommand(ctx, vehicleID, command, nil)
	if err != nil {
		return false
	}
	return commandResult(reply)
}

// HonkHorn honks the horn. Returns true if the server accepted the command with HTTP 200.
func (a *Account) HonkHorn(ctx context.Context, vehicleID string) bool {
	reply, err := a.sendCommand(ctx, vehicleID, "honk_horn", nil)
	if err != nil {
		return false
	}
	return reply.OK()
}

// LockDoors locks the vehicle if lock is true and unlocks it otherwise.
func (a *Account) LockDoors(ctx context.Context, vehicleID string, lock bool) bool {
	command := "unlock_doors"
	if lock {
		command = "lock_doors"
	}
	return a.simpleCommand(ctx, vehicleID, command)
}

// StartClimate sets the driver and passenger temperature to celsius and turns on climate control.
//
// Climate control is only turned on if the server accepts the temperature change.
func (a *Account) StartClimate(ctx context.Context, vehicleID string, celsius float64) bool {
	temps := struct {
		DriverTemp    float64 `json:"driver_temp"`
		PassengerTemp float64 `json:"passenger_temp"`
	}{celsius, celsius}
	reply, err := a.sendCommand(ctx, vehicleID, "set_temps", &temps)
	if err != nil || !reply.OK() {
		return false
	}
	return a.simpleCommand(ctx, vehicleID, "auto_condition_air")
}

func (a *Account) StopClimate(ctx context.Context, vehicleID string) bool {
	return a.simpleCommand(ctx, vehicleID, "auto_condition_air_off")
}

func (a *Account) FlashLights(ctx context.Context, vehicleID string) bool {
	return a.simpleCommand(ctx, vehicleID, "flash_lights")
}

// WakeUp asks the server to wake the vehicle. Returns true if the vehicle reports that it is
// online. The vehicle usually needs several seconds to wake up, so a false result is common for
// sleeping vehicles even though the request succeeded; callers may send the command again.
func (a *Account) WakeUp(ctx context.Context, vehicleID string) bool {
	reply, err := a.Post(ctx, fmt.Sprintf("api/1/vehicles/%s/wake_up", url.PathEscape(vehicleID)), nil)
	if err != nil {
		log.Debug("Wake up failed: %s", err)
		return false
	}
	var rsp struct {
		Response struct {
			State string `json:"state"`
		} `json:"response"`
	}
	if err := json.Unmarshal(reply.Body, &rsp); err != nil {
		return false
	}
	return rsp.Response.State == "online"
}
