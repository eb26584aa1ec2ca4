// Package shell implements the interactive command loop of tesla-assistant.
//
// A [Shell] keeps track of the vehicles on the account and the currently selected one. Input
// lines are matched against a fixed table of verbs; lines that do not name a verb are handed to
// the [Interpreter], if one is configured, and the resulting intent is executed when the
// interpreter is confident enough.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"

	"github.com/teslamotors/vehicle-assistant/internal/log"
	"github.com/teslamotors/vehicle-assistant/pkg/account"
	"github.com/teslamotors/vehicle-assistant/pkg/assistant"
)

//go:generate mockgen -destination=../../mocks/shell.go -package=mocks -mock_names=Controller=ShellController,Interpreter=ShellInterpreter github.com/teslamotors/vehicle-assistant/pkg/shell Controller,Interpreter

// Controller sends requests to vehicles on an account. It is implemented by [account.Account].
type Controller interface {
	ListVehicles(ctx context.Context) ([]account.Vehicle, error)
	GetVehicleState(ctx context.Context, vehicleID string) (account.State, error)
	VehicleSummary(ctx context.Context, vehicleID string) string
	HonkHorn(ctx context.Context, vehicleID string) bool
	LockDoors(ctx context.Context, vehicleID string, lock bool) bool
	StartClimate(ctx context.Context, vehicleID string, celsius float64) bool
	StopClimate(ctx context.Context, vehicleID string) bool
	FlashLights(ctx context.Context, vehicleID string) bool
	WakeUp(ctx context.Context, vehicleID string) bool
}

// Interpreter answers questions and translates requests into intents. It is implemented by
// [assistant.Assistant].
type Interpreter interface {
	GenerateResponse(ctx context.Context, prompt string, options ...assistant.Option) *assistant.Response
	ParseCommand(ctx context.Context, userInput string, vehicleState map[string]interface{}) assistant.Intent
	ExplainVehicleData(ctx context.Context, data map[string]interface{}) string
	GetAdvice(ctx context.Context, vehicleState map[string]interface{}) string
	ClearHistory()
}

var (
	_ Controller  = (*account.Account)(nil)
	_ Interpreter = (*assistant.Assistant)(nil)
)

var (
	ErrUnknownCommand    = errors.New("unrecognized command")
	ErrCommandLineArgs   = errors.New("invalid command line arguments")
	ErrNoVehicleSelected = errors.New("no vehicle selected; use 'vehicles' and 'select'")
	ErrNoInterpreter     = errors.New("AI assistant is not configured (set OPENAI_API_KEY)")
)

const Prompt = "[tesla]> "

// Shell is an interactive session with one account.
type Shell struct {
	controller  Controller
	interpreter Interpreter
	out         *renderer
	threshold   float64

	vehicles []account.Vehicle
	current  *account.Vehicle
}

// Option configures a Shell.
type Option func(*Shell)

// WithConfidenceThreshold sets the confidence an intent must exceed before it is executed.
func WithConfidenceThreshold(threshold float64) Option {
	return func(s *Shell) {
		s.threshold = threshold
	}
}

// WithNoColor disables colored output.
func WithNoColor() Option {
	return func(s *Shell) {
		s.out.noColor = true
	}
}

// New returns a Shell that writes its output to w. The interpreter may be nil, in which case verbs
// that need it fail and free-form input is rejected.
func New(controller Controller, interpreter Interpreter, w io.Writer, options ...Option) *Shell {
	s := &Shell{
		controller:  controller,
		interpreter: interpreter,
		out:         newRenderer(w),
		threshold:   assistant.DefaultConfidenceThreshold,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Current returns the selected vehicle, or nil.
func (s *Shell) Current() *account.Vehicle {
	return s.current
}

// Vehicles returns the vehicles loaded by the most recent listing.
func (s *Shell) Vehicles() []account.Vehicle {
	return s.vehicles
}

// Load fetches the vehicles on the account and selects the first one.
func (s *Shell) Load(ctx context.Context) error {
	vehicles, err := s.controller.ListVehicles(ctx)
	if err != nil {
		s.out.failure("Failed to load vehicles: %s", err)
		return err
	}
	s.vehicles = vehicles
	if len(vehicles) == 0 {
		s.current = nil
		s.out.warning("No vehicles found")
		return nil
	}
	s.current = &s.vehicles[0]
	s.out.success("Loaded %d vehicle(s)", len(vehicles))
	s.out.info("Selected: %s (%s)", s.current.DisplayName, s.current.VIN)
	return nil
}

// Execute runs one input line. Returns true if the line asks to end the session.
func (s *Shell) Execute(ctx context.Context, line string) (exit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	if !isVerb(fields[0]) {
		// Free-form requests are not split, so apostrophes don't need quoting.
		s.interpret(ctx, strings.TrimSpace(line))
		return false
	}

	args, err := shlex.Split(line)
	if err != nil {
		if info, ok := commands[fields[0]]; ok && info.overflows(fields) {
			s.interpret(ctx, strings.TrimSpace(line))
			return false
		}
		s.out.failure("Invalid command: %s", err)
		return false
	}
	return s.dispatchArgs(ctx, args, strings.TrimSpace(line))
}

// ExecuteArgs runs a command that has already been split into words, such as the arguments of
// the program. Returns true if the command asks to end the session.
func (s *Shell) ExecuteArgs(ctx context.Context, args []string) (exit bool) {
	if len(args) == 0 {
		return false
	}
	return s.dispatchArgs(ctx, args, strings.Join(args, " "))
}

// dispatchArgs runs the verb args[0]. Requests that are not a verb, or that start with a verb but
// carry more words than it accepts (such as "lock the car please"), are interpreted as line.
func (s *Shell) dispatchArgs(ctx context.Context, args []string, line string) (exit bool) {
	switch args[0] {
	case "exit", "quit":
		s.out.info("Goodbye!")
		return true
	case "help":
		s.help(args[1:])
		return false
	}
	info, ok := commands[args[0]]
	if !ok || info.overflows(args) {
		s.interpret(ctx, line)
		return false
	}
	if err := s.execute(ctx, args); err != nil {
		s.out.failure("%s", err)
	}
	return false
}

// Run reads commands from r until it is exhausted, an exit verb is entered or ctx is canceled.
func (s *Shell) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for s.out.prompt(); scanner.Scan(); s.out.prompt() {
		if ctx.Err() != nil {
			break
		}
		if s.Execute(ctx, scanner.Text()) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading command: %w", err)
	}
	s.out.println("")
	return nil
}

func (s *Shell) execute(ctx context.Context, args []string) error {
	info, ok := commands[args[0]]
	if !ok {
		return ErrUnknownCommand
	}
	if info.requiresInterpreter && s.interpreter == nil {
		return ErrNoInterpreter
	}
	if info.requiresVehicle && s.current == nil {
		return ErrNoVehicleSelected
	}

	var keywords map[string]string
	if info.rest != nil {
		if len(args) < 2 {
			info.usage(s.out, args[0])
			return fmt.Errorf("%w: missing %s", ErrCommandLineArgs, info.rest.name)
		}
		keywords = map[string]string{info.rest.name: strings.Join(args[1:], " ")}
	} else {
		keywords = make(map[string]string)
		for i, arg := range args[1:] {
			keywords[info.optional[i].name] = arg
		}
	}
	log.Debug("Executing %s %v", args[0], keywords)
	return info.handler(ctx, s, keywords)
}

func (s *Shell) vehicleState(ctx context.Context) (account.State, error) {
	state, err := s.controller.GetVehicleState(ctx, s.current.IDS)
	if err != nil {
		return nil, fmt.Errorf("failed to read vehicle state: %w", err)
	}
	return state, nil
}

// report prints the outcome of a vehicle command.
func (s *Shell) report(ok bool, success, failure string) {
	if ok {
		s.out.success("%s", success)
	} else {
		s.out.warning("%s", failure)
	}
}
