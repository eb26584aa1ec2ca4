/*
Package cli facilitates building command-line applications that talk to vehicles and to the AI
assistant. It defines a [Config] type that can be used to register common command-line flags (using
the Golang flag package) and environment variable equivalents.

The package uses [keyring]'s platform-agnostic interface for storing sensitive values (OAuth tokens
and chat API keys) in an OS-dependent credential store.

# Examples

	import flag

	config, err := NewConfig(FlagAll)
	if err != nil {
		panic(err)
	}
	config.RegisterCommandLineFlags() // Adds command-line flags for tokens, API keys, etc.
	flag.Parse()
	config.LoadDotEnv()               // Loads .env into the environment, if present
	config.ReadFromEnvironment()      // Fills in missing fields using environment variables

	acct, err := config.Account()
	if err != nil {
		panic(err)
	}
	bot, err := config.Assistant(ctx) // Fails with assistant.ErrMissingAPIKey if no key is configured

Alternatively, you can use a [Flag] mask to control what [Config] fields are populated. Note that in
the example below, config.Flags must be set before calling [flag.Parse] or
[Config.ReadFromEnvironment]:

	config, err = NewConfig(FlagOAuth) // Only vehicle API options.
*/
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/99designs/keyring"
	"github.com/joho/godotenv"

	"github.com/teslamotors/vehicle-assistant/internal/log"
	"github.com/teslamotors/vehicle-assistant/pkg/account"
	"github.com/teslamotors/vehicle-assistant/pkg/assistant"
)

// Environment variable names used are used by [Config.ReadFromEnvironment] to set common parameters.
const (
	EnvTeslaAccessToken  = "TESLA_ACCESS_TOKEN"
	EnvTeslaTokenName    = "TESLA_TOKEN_NAME"
	EnvTeslaTokenFile    = "TESLA_TOKEN_FILE"
	EnvTeslaBaseURL      = "TESLA_BASE_URL"
	EnvOpenAIAPIKey      = assistant.EnvOpenAIAPIKey
	EnvOpenAIKeyName     = "OPENAI_KEY_NAME"
	EnvOpenAIBaseURL     = "OPENAI_BASE_URL"
	EnvOpenAIModel       = "OPENAI_MODEL"
	EnvTeslaKeyringType  = "TESLA_KEYRING_TYPE"
	EnvTeslaKeyringPass  = "TESLA_KEYRING_PASSWORD"
	EnvTeslaKeyringPath  = "TESLA_KEYRING_PATH"
	EnvTeslaKeyringDebug = "TESLA_KEYRING_DEBUG"
	EnvTeslaVerbose      = "TESLA_VERBOSE"
)

// Flag controls what options should be scanned from the command line and/or environment variables.
type Flag int

func (f Flag) isSet(other Flag) bool {
	return (f & other) == other
}

const (
	FlagOAuth     Flag = 1 // Enable vehicle API token options.
	FlagAssistant Flag = 2 // Enable chat API options.
	FlagAll       Flag = FlagOAuth | FlagAssistant
)

var (
	ErrNoToken     = errors.New("vehicle API token not provided (use -token, -token-file, -token-name or $TESLA_ACCESS_TOKEN)")
	ErrKeyNotFound = keyring.ErrKeyNotFound
)

// Config fields determine how a client authenticates to Tesla's backend and to the chat API.
type Config struct {
	Flags            Flag   // Controls which set of environment variables/CLI flags to use.
	Token            string // OAuth token provided directly
	KeyringTokenName string // Username for OAuth token in system keyring
	TokenFilename    string
	BaseURL          string // Overrides the vehicle API host

	OpenAIKey         string
	KeyringOpenAIName string // Username for chat API key in system keyring
	OpenAIBaseURL     string
	Model             string

	Backend     keyring.Config
	BackendType backendType
	Debug       bool // Enable keyring debug messages

	password   *string
	oauthToken string
}

func NewConfig(flags Flag) (*Config, error) {
	c := Config{
		Flags: flags,
		Backend: keyring.Config{
			ServiceName:              keyringServiceName,
			KeychainTrustApplication: true,
			KeyCtlScope:              "user",
		},
	}
	c.BackendType = backendType{&c}
	c.Backend.KeychainPasswordFunc = c.getPassword
	c.Backend.FilePasswordFunc = c.getPassword

	return &c, nil
}

// RegisterCommandLineFlags adds the options enabled by c.Flags to the default flag set.
func (c *Config) RegisterCommandLineFlags() {
	c.RegisterFlags(flag.CommandLine)
}

// RegisterFlags adds the options enabled by c.Flags to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	if c.Flags.isSet(FlagOAuth) {
		fs.StringVar(&c.Token, "token", "", "OAuth `token` for the vehicle API. Defaults to $TESLA_ACCESS_TOKEN.")
		fs.StringVar(&c.KeyringTokenName, "token-name", "", "System keyring `name` for OAuth token. Defaults to $TESLA_TOKEN_NAME.")
		fs.StringVar(&c.TokenFilename, "token-file", "", "`File` containing OAuth token. Defaults to $TESLA_TOKEN_FILE.")
		fs.StringVar(&c.BaseURL, "base-url", "", "Vehicle API base `URL`. Defaults to $TESLA_BASE_URL or a host derived from the token.")
	}
	if c.Flags.isSet(FlagAssistant) {
		fs.StringVar(&c.OpenAIKey, "openai-key", "", "Chat API `key`. Defaults to $OPENAI_API_KEY.")
		fs.StringVar(&c.KeyringOpenAIName, "openai-key-name", "", "System keyring `name` for chat API key. Defaults to $OPENAI_KEY_NAME.")
		fs.StringVar(&c.OpenAIBaseURL, "openai-base-url", "", "OpenAI-compatible API base `URL`. Defaults to $OPENAI_BASE_URL.")
		fs.StringVar(&c.Model, "model", "", "Chat `model`. Defaults to $OPENAI_MODEL or "+assistant.DefaultModel+".")
	}
	var names []string
	for _, name := range keyring.AvailableBackends() {
		names = append(names, string(name))
	}
	sort.Strings(names)
	fs.Var(&c.BackendType, "keyring-type", "Keyring `type` ("+strings.Join(names, "|")+"). Defaults to $TESLA_KEYRING_TYPE.")
	fs.StringVar(&c.Backend.FileDir, "keyring-file-dir", keyringDirectory, "keyring `directory` for file-backed keyring types")
	fs.BoolVar(&c.Debug, "keyring-debug", false, "Enable keyring debug logging")
}

// LoadDotEnv loads variables from the given files (".env" if none are given) into the process
// environment. Variables that are already set are not overwritten and missing files are skipped.
func (c *Config) LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		log.Debug("Loaded environment from %s", path)
	}
	return nil
}

// ReadFromEnvironment populates c using environment variables. Values that are already populated
// are not overwritten.
//
// Calling ReadFromEnvironment after flag.Parse() (or other initialization method) will prevent the
// environment from overriding explicit command-line parameters and avoid potentially misleading
// debug log messages.
func (c *Config) ReadFromEnvironment() {
	if c.Flags.isSet(FlagOAuth) {
		if c.Token == "" && c.KeyringTokenName == "" && c.TokenFilename == "" {
			c.Token = os.Getenv(EnvTeslaAccessToken)
			if c.Token != "" {
				log.Debug("Set OAuth token from $%s", EnvTeslaAccessToken)
			}

			c.KeyringTokenName = os.Getenv(EnvTeslaTokenName)
			log.Debug("Set OAuth token name to '%s'", c.KeyringTokenName)

			c.TokenFilename = os.Getenv(EnvTeslaTokenFile)
			log.Debug("Set OAuth token file to '%s'", c.TokenFilename)
		}
		if c.BaseURL == "" {
			c.BaseURL = os.Getenv(EnvTeslaBaseURL)
		}
	}
	if c.Flags.isSet(FlagAssistant) {
		if c.OpenAIKey == "" && c.KeyringOpenAIName == "" {
			c.OpenAIKey = os.Getenv(EnvOpenAIAPIKey)
			c.KeyringOpenAIName = os.Getenv(EnvOpenAIKeyName)
			log.Debug("Set chat API key name to '%s'", c.KeyringOpenAIName)
		}
		if c.OpenAIBaseURL == "" {
			c.OpenAIBaseURL = os.Getenv(EnvOpenAIBaseURL)
		}
		if c.Model == "" {
			c.Model = os.Getenv(EnvOpenAIModel)
			log.Debug("Set chat model to '%s'", c.Model)
		}
	}
	if c.BackendType.String() == string(keyring.InvalidBackend) {
		if err := c.BackendType.Set(os.Getenv(EnvTeslaKeyringType)); err == nil {
			log.Debug("Set keyring type to '%s'", c.BackendType)
		}
	}
	if c.password == nil {
		password := os.Getenv(EnvTeslaKeyringPass)
		c.password = &password
		if len(password) > 0 {
			log.Debug("Set keyring File Password to %s", strings.Repeat("*", len("hunter2")))
		}
	}
	if c.Backend.FileDir == "" {
		c.Backend.FileDir = os.Getenv(EnvTeslaKeyringPath)
		log.Debug("Set keyring File Path to '%s'", c.Backend.FileDir)
	}
	if !c.Debug {
		_, c.Debug = os.LookupEnv(EnvTeslaKeyringDebug)
		log.Debug("Set keyring Debug Logging to '%v'", c.Debug)
	}
}

// Verbose reports whether $TESLA_VERBOSE asks for debug logging.
func Verbose() bool {
	value, ok := os.LookupEnv(EnvTeslaVerbose)
	return ok && value != "false" && value != "0"
}

// LoadCredentials resolves the vehicle API token, prompting for a keyring password if needed. Call
// this method before issuing requests to prevent interactive prompts from counting against
// timeouts.
func (c *Config) LoadCredentials() error {
	if c.Flags.isSet(FlagOAuth) {
		if _, err := c.token(); err != nil {
			return err
		}
	}
	return nil
}

// token resolves the OAuth token from, in order, c.Token, c.TokenFilename and the keyring.
func (c *Config) token() (string, error) {
	if c.oauthToken != "" {
		return c.oauthToken, nil
	}
	if c.Token != "" {
		c.oauthToken = strings.TrimSpace(c.Token)
		return c.oauthToken, nil
	}
	if c.TokenFilename != "" {
		token, err := os.ReadFile(c.TokenFilename)
		if err == nil {
			c.oauthToken = strings.TrimSpace(string(token))
			return c.oauthToken, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		// If the token file doesn't exist, fall through to trying to load from the system keyring.
		log.Debug("Token file %s not found", c.TokenFilename)
	}
	if c.KeyringTokenName == "" {
		return "", ErrNoToken
	}
	var err error
	c.oauthToken, err = c.LoadTokenFromKeyring()
	return c.oauthToken, err
}

// Account returns a client for the configured Tesla account.
func (c *Config) Account() (*account.Account, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}
	var options []account.Option
	if c.BaseURL != "" {
		options = append(options, account.WithBaseURL(c.BaseURL))
	}
	return account.New(token, "", options...)
}

func (c *Config) openAIKey() (string, error) {
	if c.OpenAIKey != "" {
		return strings.TrimSpace(c.OpenAIKey), nil
	}
	if c.KeyringOpenAIName == "" {
		return "", nil
	}
	return c.LoadOpenAIKeyFromKeyring()
}

// Assistant returns an AI assistant using the configured chat API key and model.
//
// Returns assistant.ErrMissingAPIKey if no key is configured.
func (c *Config) Assistant(ctx context.Context) (*assistant.Assistant, error) {
	key, err := c.openAIKey()
	if err != nil {
		return nil, err
	}
	return assistant.New(ctx, &assistant.Config{
		APIKey:  key,
		BaseURL: c.OpenAIBaseURL,
		Model:   c.Model,
	})
}
