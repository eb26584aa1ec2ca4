package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/teslamotors/vehicle-assistant/internal/log"
	"github.com/teslamotors/vehicle-assistant/pkg/assistant"
	"github.com/teslamotors/vehicle-assistant/pkg/cli"
	"github.com/teslamotors/vehicle-assistant/pkg/shell"
)

func writeErr(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
	fmt.Fprintf(os.Stderr, "\n")
}

const usage = `
 * All commands require a vehicle API token.
 * Commands marked as using the AI assistant, and free-form requests, require a chat API key.
 * Without a COMMAND, an interactive shell is started.`

func Usage() {
	fmt.Printf("Usage: %s [OPTION...] [COMMAND [ARG...]]\n", os.Args[0])
	fmt.Printf("\nRun %s help COMMAND for more information. Valid COMMANDs are listed below.", os.Args[0])
	fmt.Println("")
	fmt.Println(usage)
	fmt.Println("")

	fmt.Printf("Available OPTIONs:\n")
	flag.PrintDefaults()
	fmt.Println("")
	shell.Usage(os.Stdout)
}

// exitOnInterrupt ends the process successfully on SIGINT, even while the shell is blocked
// reading from stdin.
func exitOnInterrupt() {
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		<-interrupts
		fmt.Println("\nGoodbye!")
		os.Exit(0)
	}()
}

func main() {
	status := 1
	defer func() {
		os.Exit(status)
	}()

	var (
		debug     bool
		noColor   bool
		threshold float64
	)
	config, err := cli.NewConfig(cli.FlagAll)
	if err != nil {
		writeErr("Failed to load credential configuration: %s", err)
		return
	}
	flag.Usage = Usage
	flag.BoolVar(&debug, "debug", false, "Enable verbose debugging messages")
	flag.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flag.Float64Var(&threshold, "confidence", assistant.DefaultConfidenceThreshold, "Minimum `confidence` required to execute a free-form request")

	config.RegisterCommandLineFlags()
	flag.Parse()
	if err := config.LoadDotEnv(); err != nil {
		writeErr("%s", err)
		return
	}
	if !debug {
		debug = cli.Verbose()
	}
	if debug {
		log.SetLevel(log.LevelDebug)
	}
	config.ReadFromEnvironment()

	args := flag.Args()
	if len(args) > 0 && args[0] == "help" && len(args) == 1 {
		Usage()
		status = 0
		return
	}

	if err := config.LoadCredentials(); err != nil {
		writeErr("Error loading credentials: %s", err)
		return
	}
	acct, err := config.Account()
	if err != nil {
		writeErr("Error: %s", err)
		return
	}

	exitOnInterrupt()
	ctx := context.Background()

	options := []shell.Option{shell.WithConfidenceThreshold(threshold)}
	if noColor {
		options = append(options, shell.WithNoColor())
	}

	var interpreter shell.Interpreter
	bot, err := config.Assistant(ctx)
	switch {
	case err == nil:
		interpreter = bot
		log.Info("AI assistant connected (%s)", bot.Model())
	case errors.Is(err, assistant.ErrMissingAPIKey):
		writeErr("AI assistant disabled (set %s to enable it)", cli.EnvOpenAIAPIKey)
	default:
		writeErr("AI assistant disabled: %s", err)
	}

	session := shell.New(acct, interpreter, os.Stdout, options...)
	if err := session.Load(ctx); err != nil {
		log.Debug("Continuing without a selected vehicle: %s", err)
	}

	if len(args) > 0 {
		session.ExecuteArgs(ctx, args)
		status = 0
		return
	}
	if err := session.Run(ctx, os.Stdin); err != nil {
		writeErr("%s", err)
		return
	}
	status = 0
}
