package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultConfidenceThreshold is the confidence an [Intent] must exceed before it is executed
// without confirmation.
const DefaultConfidenceThreshold = 0.7

// Command enumerates the vehicle commands the interpreter can recognize.
type Command int

const (
	CommandUnknown Command = iota
	CommandHonk
	CommandLock
	CommandUnlock
	CommandStartClimate
	CommandStopClimate
	CommandFlashLights
	CommandGetStatus
)

var commandNames = map[Command]string{
	CommandUnknown:      "unknown",
	CommandHonk:         "honk",
	CommandLock:         "lock",
	CommandUnlock:       "unlock",
	CommandStartClimate: "start_climate",
	CommandStopClimate:  "stop_climate",
	CommandFlashLights:  "flash_lights",
	CommandGetStatus:    "get_status",
}

// ParseCommandName returns the Command called name. Unrecognized names map to CommandUnknown.
func ParseCommandName(name string) Command {
	name = strings.ToLower(strings.TrimSpace(name))
	for command, n := range commandNames {
		if n == name {
			return command
		}
	}
	return CommandUnknown
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return commandNames[CommandUnknown]
}

func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Command) UnmarshalText(text []byte) error {
	*c = ParseCommandName(string(text))
	return nil
}

// Intent is the structured form of a natural-language request.
type Intent struct {
	Command    Command                `json:"command"`
	Parameters map[string]interface{} `json:"parameters"`
	Confidence float64                `json:"confidence"`

	// Requested is the command name exactly as the model wrote it, which may not be a known
	// Command.
	Requested string `json:"-"`
}

// UnknownIntent is returned whenever a request cannot be interpreted.
func UnknownIntent() Intent {
	return Intent{Command: CommandUnknown, Parameters: map[string]interface{}{}, Confidence: 0.0}
}

// Actionable returns true if the intent names a command and its confidence exceeds threshold.
func (i Intent) Actionable(threshold float64) bool {
	return i.Command != CommandUnknown && i.Confidence > threshold
}

// Float returns the numeric parameter key. Numbers encoded as strings are accepted.
func (i Intent) Float(key string) (float64, bool) {
	switch v := i.Parameters[key].(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

var ErrNoJSONObject = errors.New("reply does not contain a JSON object")

// ExtractIntent decodes the JSON object embedded in a model reply.
//
// The object is taken to span from the first '{' to the last '}' of content. Replies that contain
// more than one JSON fragment are therefore not decoded correctly.
func ExtractIntent(content string) (Intent, error) {
	content = strings.TrimSpace(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return UnknownIntent(), ErrNoJSONObject
	}
	object := []byte(content[start : end+1])
	var intent Intent
	if err := json.Unmarshal(object, &intent); err != nil {
		return UnknownIntent(), fmt.Errorf("invalid command JSON: %w", err)
	}
	var raw struct {
		Command string `json:"command"`
	}
	if json.Unmarshal(object, &raw) == nil {
		intent.Requested = strings.TrimSpace(raw.Command)
	}
	if intent.Parameters == nil {
		intent.Parameters = map[string]interface{}{}
	}
	intent.Confidence = min(max(intent.Confidence, 0), 1)
	return intent, nil
}
