// Utility for storing vehicle API tokens and chat API keys in the system keyring

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/teslamotors/vehicle-assistant/pkg/cli"
)

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "usage: %s [-token-name token_name | -openai-key-name key_name] [-delete] [file]\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Reads an OAuth token from stdin or file and saves it under token_name in the system")
	fmt.Fprintf(w, "keyring. The token_name defaults to $%s.\n", cli.EnvTeslaTokenName)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "With -openai-key-name, saves a chat API key under key_name instead.")
	fmt.Fprintln(w, "")
	flag.PrintDefaults()
}

func main() {
	returnCode := 1
	defer func() {
		os.Exit(returnCode)
	}()

	config, err := cli.NewConfig(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load credential configuration: %s\n", err)
		return
	}

	var remove bool
	flag.StringVar(&config.KeyringTokenName, "token-name", "", "Name to use for keyring entry")
	flag.StringVar(&config.KeyringOpenAIName, "openai-key-name", "", "Name to use for chat API key keyring entry")
	flag.BoolVar(&remove, "delete", false, "Remove the OAuth token from the keyring instead of saving one")
	config.RegisterCommandLineFlags()
	flag.Usage = usage
	flag.Parse()
	config.ReadFromEnvironment()

	if config.KeyringTokenName != "" && config.KeyringOpenAIName != "" {
		fmt.Fprintln(os.Stderr, "Provide either -token-name or -openai-key-name, not both")
		return
	}
	saveKey := config.KeyringOpenAIName != ""
	if !saveKey && config.KeyringTokenName == "" {
		config.KeyringTokenName = os.Getenv(cli.EnvTeslaTokenName)
	}
	if !saveKey && config.KeyringTokenName == "" {
		fmt.Fprintf(os.Stderr, "Must provide system keyring name to save OAuth token under using -token-name or $%s\n", cli.EnvTeslaTokenName)
		return
	}

	if remove {
		if saveKey {
			fmt.Fprintln(os.Stderr, "-delete only applies to OAuth tokens")
			return
		}
		if err := config.DeleteToken(); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing token from keyring: %s\n", err)
			return
		}
		returnCode = 0
		return
	}

	var secret []byte
	switch flag.NArg() {
	case 0:
		secret, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading secret from stdin: %s\n", err)
			return
		}
	case 1:
		secret, err = os.ReadFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading secret from file: %s\n", err)
			return
		}
	default:
		fmt.Fprintln(os.Stderr, "Too many command-line arguments")
		return
	}

	value := strings.TrimSpace(string(secret))
	if value == "" {
		fmt.Fprintln(os.Stderr, "Refusing to save an empty secret")
		return
	}
	if saveKey {
		err = config.SaveOpenAIKeyToKeyring(value)
	} else {
		err = config.SaveTokenToKeyring(value)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving secret to keyring: %s\n", err)
		return
	}

	returnCode = 0
}
