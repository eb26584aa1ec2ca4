package shell

import (
	"context"
	"fmt"

	"github.com/teslamotors/vehicle-assistant/pkg/account"
	"github.com/teslamotors/vehicle-assistant/pkg/assistant"
)

// intentHandler executes an interpreted request on the selected vehicle. A non-empty report is
// printed instead of the generic success line.
type intentHandler func(ctx context.Context, s *Shell, intent assistant.Intent) (ok bool, report string)

var intentHandlers = map[assistant.Command]intentHandler{
	assistant.CommandHonk: func(ctx context.Context, s *Shell, intent assistant.Intent) (bool, string) {
		return s.controller.HonkHorn(ctx, s.current.IDS), ""
	},
	assistant.CommandLock: func(ctx context.Context, s *Shell, intent assistant.Intent) (bool, string) {
		return s.controller.LockDoors(ctx, s.current.IDS, true), ""
	},
	assistant.CommandUnlock: func(ctx context.Context, s *Shell, intent assistant.Intent) (bool, string) {
		return s.controller.LockDoors(ctx, s.current.IDS, false), ""
	},
	assistant.CommandStartClimate: func(ctx context.Context, s *Shell, intent assistant.Intent) (bool, string) {
		celsius, ok := intent.Float("temperature")
		if !ok {
			celsius = account.DefaultClimateTemp
		}
		return s.controller.StartClimate(ctx, s.current.IDS, celsius), ""
	},
	assistant.CommandStopClimate: func(ctx context.Context, s *Shell, intent assistant.Intent) (bool, string) {
		return s.controller.StopClimate(ctx, s.current.IDS), ""
	},
	assistant.CommandFlashLights: func(ctx context.Context, s *Shell, intent assistant.Intent) (bool, string) {
		return s.controller.FlashLights(ctx, s.current.IDS), ""
	},
	assistant.CommandGetStatus: func(ctx context.Context, s *Shell, intent assistant.Intent) (bool, string) {
		return true, s.controller.VehicleSummary(ctx, s.current.IDS)
	},
}

// interpret treats line as a natural-language request.
func (s *Shell) interpret(ctx context.Context, line string) {
	if s.interpreter == nil {
		s.out.failure("Unknown command: %s. Type 'help' for a list of commands.", line)
		return
	}
	if s.current == nil {
		s.out.failure("%s", ErrNoVehicleSelected)
		return
	}
	s.out.info("Unrecognized command; asking the AI assistant...")

	state, err := s.vehicleState(ctx)
	if err != nil {
		s.out.failure("%s", err)
		return
	}
	intent := s.interpreter.ParseCommand(ctx, line, state)
	s.dispatch(ctx, intent)
}

func (s *Shell) dispatch(ctx context.Context, intent assistant.Intent) {
	if intent.Confidence <= s.threshold {
		s.out.warning("Low confidence (%.2f). Use an explicit command.", intent.Confidence)
		return
	}
	handler, ok := intentHandlers[intent.Command]
	if !ok {
		name := intent.Requested
		if name == "" {
			name = intent.Command.String()
		}
		s.out.warning("Unknown command: %s", name)
		return
	}
	ok, report := handler(ctx, s, intent)
	if report != "" {
		s.out.panel("Vehicle status", report)
		return
	}
	s.report(ok,
		fmt.Sprintf("Command '%s' executed", intent.Command),
		fmt.Sprintf("Command '%s' failed", intent.Command))
}
