package shell

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/teslamotors/vehicle-assistant/pkg/account"
	"github.com/teslamotors/vehicle-assistant/pkg/assistant"
)

// Verbs handled by ExecuteArgs itself.
var builtins = map[string]string{
	"help": "Show this help, or the usage of COMMAND",
	"exit": "Leave the shell (also: quit)",
}

type argument struct {
	name string
	help string
}

type commandHandler func(ctx context.Context, s *Shell, args map[string]string) error

type command struct {
	help                string
	requiresVehicle     bool // True if the command acts on the selected vehicle
	requiresInterpreter bool // True if the command needs the AI assistant
	optional            []argument
	rest                *argument // Required free-form text made of all remaining words
	handler             commandHandler
}

func (c *command) usage(out *renderer, name string) {
	var labels []string
	switch {
	case c.rest != nil:
		labels = append(labels, c.rest.name+"...")
	case len(c.optional) > 0:
		var names []string
		for _, arg := range c.optional {
			names = append(names, arg.name)
		}
		labels = append(labels, "[ "+strings.Join(names, " ")+" ]")
	}
	out.println(strings.TrimSpace("Usage: " + name + " " + strings.Join(labels, " ")))
	out.println(c.help)

	args := c.optional
	if c.rest != nil {
		args = []argument{*c.rest}
	}
	maxLength := 0
	for _, arg := range args {
		maxLength = max(maxLength, len(arg.name))
	}
	maxLength++
	for _, arg := range args {
		out.println(fmt.Sprintf("    %s:%s%s", arg.name, strings.Repeat(" ", maxLength-len(arg.name)), arg.help))
	}
}

// overflows returns true if args, starting with the verb, has more words than c accepts.
func (c *command) overflows(args []string) bool {
	return c.rest == nil && len(args)-1 > len(c.optional)
}

func isVerb(name string) bool {
	_, ok := commands[name]
	return ok || name == "quit" || builtins[name] != ""
}

func listCommands(out *renderer) {
	out.println("Available commands:")
	var labels []string
	maxLength := 0
	for name := range commands {
		labels = append(labels, name)
		maxLength = max(maxLength, len(name))
	}
	sort.Strings(labels)
	for _, name := range append(labels, "help", "exit") {
		help := builtins[name]
		if info, ok := commands[name]; ok {
			help = info.help
		}
		out.println(fmt.Sprintf("  %s%s %s", name, strings.Repeat(" ", maxLength-len(name)), help))
	}
}

// Usage writes the list of commands to w.
func Usage(w io.Writer) {
	out := newRenderer(w)
	out.noColor = true
	listCommands(out)
}

// help prints the verb table, or the usage of the verbs named in args.
func (s *Shell) help(args []string) {
	if len(args) == 0 {
		listCommands(s.out)
		if s.interpreter != nil {
			s.out.println("")
			s.out.println(`Anything else is interpreted as a request, e.g. "lock the car" or "turn on the AC at 21 degrees".`)
		}
		return
	}
	for _, name := range args {
		info, ok := commands[name]
		if !ok {
			s.out.failure("Unrecognized command: %s", name)
			continue
		}
		info.usage(s.out, name)
	}
}

func (s *Shell) selectVehicle(key string) bool {
	// id_s values are numeric too, so out-of-range positions are looked up by key.
	if index, err := strconv.Atoi(key); err == nil && index >= 1 && index <= len(s.vehicles) {
		s.current = &s.vehicles[index-1]
		return true
	}
	for i := range s.vehicles {
		if s.vehicles[i].IDS == key || s.vehicles[i].DisplayName == key {
			s.current = &s.vehicles[i]
			return true
		}
	}
	return false
}

func parseTemperature(arg string) (float64, error) {
	if arg == "" {
		return account.DefaultClimateTemp, nil
	}
	celsius, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToUpper(arg), "C"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: temperature must be a number of degrees Celsius", ErrCommandLineArgs)
	}
	return celsius, nil
}

var commands = map[string]*command{
	"status": {
		help:            "Show a summary of the selected vehicle",
		requiresVehicle: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.out.panel("Vehicle status", s.controller.VehicleSummary(ctx, s.current.IDS))
			return nil
		},
	},
	"vehicles": {
		help: "List the vehicles on the account",
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			vehicles, err := s.controller.ListVehicles(ctx)
			if err != nil {
				return err
			}
			selected := ""
			if s.current != nil {
				selected = s.current.IDS
			}
			s.vehicles = vehicles
			s.current = nil
			for i := range s.vehicles {
				if s.vehicles[i].IDS == selected {
					s.current = &s.vehicles[i]
				}
			}
			s.out.vehicles(s.vehicles, s.current)
			return nil
		},
	},
	"select": {
		help: "Select a vehicle by list position, id_s or name",
		rest: &argument{name: "VEHICLE", help: "1-based position in the vehicle list, id_s or display name"},
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			if !s.selectVehicle(args["VEHICLE"]) {
				return fmt.Errorf("vehicle not found: %s", args["VEHICLE"])
			}
			s.out.success("Selected: %s", s.current.DisplayName)
			return nil
		},
	},
	"honk": {
		help:            "Honk the horn",
		requiresVehicle: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.report(s.controller.HonkHorn(ctx, s.current.IDS), "Honked!", "Failed to honk the horn")
			return nil
		},
	},
	"lock": {
		help:            "Lock the doors",
		requiresVehicle: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.report(s.controller.LockDoors(ctx, s.current.IDS, true), "Doors locked", "Failed to lock the doors")
			return nil
		},
	},
	"unlock": {
		help:            "Unlock the doors",
		requiresVehicle: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.report(s.controller.LockDoors(ctx, s.current.IDS, false), "Doors unlocked", "Failed to unlock the doors")
			return nil
		},
	},
	"climate": {
		help:            "Turn on climate control",
		requiresVehicle: true,
		optional: []argument{
			{name: "TEMP", help: "Target temperature in Celsius (default 22)"},
		},
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			celsius, err := parseTemperature(args["TEMP"])
			if err != nil {
				return err
			}
			s.report(s.controller.StartClimate(ctx, s.current.IDS, celsius),
				fmt.Sprintf("Climate control on at %g°C", celsius), "Failed to turn on climate control")
			return nil
		},
	},
	"stop-climate": {
		help:            "Turn off climate control",
		requiresVehicle: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.report(s.controller.StopClimate(ctx, s.current.IDS), "Climate control off", "Failed to turn off climate control")
			return nil
		},
	},
	"flash": {
		help:            "Flash the lights",
		requiresVehicle: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.report(s.controller.FlashLights(ctx, s.current.IDS), "Lights flashed", "Failed to flash the lights")
			return nil
		},
	},
	"wake": {
		help:            "Wake up the vehicle",
		requiresVehicle: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.report(s.controller.WakeUp(ctx, s.current.IDS), "Vehicle is online", "Vehicle is not awake yet; try again shortly")
			return nil
		},
	},
	"explain": {
		help:                "Have the AI explain the state of the vehicle",
		requiresVehicle:     true,
		requiresInterpreter: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			state, err := s.vehicleState(ctx)
			if err != nil {
				return err
			}
			s.out.panel("Explanation", s.interpreter.ExplainVehicleData(ctx, state))
			return nil
		},
	},
	"ask": {
		help:                "Ask the AI a question about the selected vehicle",
		requiresVehicle:     true,
		requiresInterpreter: true,
		rest:                &argument{name: "QUESTION", help: "Question about the vehicle"},
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			state, err := s.vehicleState(ctx)
			if err != nil {
				return err
			}
			reply := s.interpreter.GenerateResponse(ctx, args["QUESTION"], assistant.WithVehicleContext(state))
			s.out.panel("AI", reply.Content)
			return nil
		},
	},
	"chat": {
		help:                "Talk to the AI assistant",
		requiresInterpreter: true,
		rest:                &argument{name: "MESSAGE", help: "Message for the assistant"},
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.out.panel("AI", s.interpreter.GenerateResponse(ctx, args["MESSAGE"]).Content)
			return nil
		},
	},
	"advice": {
		help:                "Get recommendations for the selected vehicle",
		requiresVehicle:     true,
		requiresInterpreter: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			state, err := s.vehicleState(ctx)
			if err != nil {
				return err
			}
			s.out.panel("Recommendations", s.interpreter.GetAdvice(ctx, state))
			return nil
		},
	},
	"reset": {
		help:                "Forget the conversation with the AI assistant",
		requiresInterpreter: true,
		handler: func(ctx context.Context, s *Shell, args map[string]string) error {
			s.interpreter.ClearHistory()
			s.out.success("Conversation cleared")
			return nil
		},
	},
}
