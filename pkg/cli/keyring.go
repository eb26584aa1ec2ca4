package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/99designs/keyring"
	"golang.org/x/term"
)

const (
	keyringServiceName   = "com.tesla.assistant"
	keyringTokenService  = "oauthtoken"
	keyringOpenAIService = "openaikey"
	keyringDirectory     = "~/.tesla_keys"
)

type backendType struct {
	config *Config
}

func (b backendType) String() string {
	if b.config == nil || len(b.config.Backend.AllowedBackends) == 0 {
		return string(keyring.InvalidBackend)
	}
	return string(b.config.Backend.AllowedBackends[0])
}

func (b backendType) Set(v string) error {
	value := keyring.BackendType(v)
	if b.config == nil {
		return fmt.Errorf("invalid backendType")
	}
	if v == "" {
		return nil
	}
	for _, name := range keyring.AvailableBackends() {
		if name == value {
			b.config.Backend.AllowedBackends = []keyring.BackendType{name}
			return nil
		}
	}
	return fmt.Errorf("unsupported credential storage")
}

func (c *Config) getPassword(prompt string) (string, error) {
	if c.password != nil && *c.password != "" {
		return *c.password, nil
	}

	var w io.Writer
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fd = int(os.Stderr.Fd())
		if !term.IsTerminal(fd) {
			return "", fmt.Errorf("no terminal output available for password prompt")
		} else {
			w = os.Stderr
		}
	} else {
		w = os.Stdout
	}

	fmt.Fprintf(w, "%s: ", prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}
	fmt.Fprintln(w)
	password := string(b)
	c.password = &password
	return password, nil
}

func (c *Config) openKeyring() (keyring.Keyring, error) {
	keyring.Debug = c.Debug
	return keyring.Open(c.Backend)
}

func (c *Config) loadSecret(service, name, description string) (string, error) {
	kr, err := c.openKeyring()
	if err != nil {
		return "", err
	}

	item, err := kr.Get(service + "." + name)
	if err != nil {
		return "", fmt.Errorf("could not load %s: %w", description, err)
	}
	return string(item.Data), nil
}

func (c *Config) saveSecret(service, name, description, secret string) error {
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}

	if err := kr.Set(keyring.Item{
		Key:  service + "." + name,
		Data: []byte(secret),
	}); err != nil {
		return fmt.Errorf("failed to enroll %s in keyring: %s", description, err)
	}
	return nil
}

// LoadTokenFromKeyring loads an OAuth token from the system keyring.
//
// The user must match the value provided to SaveTokenToKeyring.
func (c *Config) LoadTokenFromKeyring() (string, error) {
	return c.loadSecret(keyringTokenService, c.KeyringTokenName, "token")
}

// SaveTokenToKeyring writes the account's OAuth token to the system keyring.
//
// The user identifies the OAuth token for future use with LoadTokenFromKeyring and does not
// necessarily need to match the system username.
func (c *Config) SaveTokenToKeyring(token string) error {
	return c.saveSecret(keyringTokenService, c.KeyringTokenName, "token", token)
}

// LoadOpenAIKeyFromKeyring loads a chat API key from the system keyring.
func (c *Config) LoadOpenAIKeyFromKeyring() (string, error) {
	return c.loadSecret(keyringOpenAIService, c.KeyringOpenAIName, "chat API key")
}

// SaveOpenAIKeyToKeyring writes a chat API key to the system keyring under c.KeyringOpenAIName.
func (c *Config) SaveOpenAIKeyToKeyring(key string) error {
	return c.saveSecret(keyringOpenAIService, c.KeyringOpenAIName, "chat API key", key)
}

// DeleteToken removes the OAuth token from the system keyring.
func (c *Config) DeleteToken() error {
	kr, err := c.openKeyring()
	if err != nil {
		return err
	}
	return kr.Remove(keyringTokenService + "." + c.KeyringTokenName)
}
