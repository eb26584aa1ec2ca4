/*
Package assistant interprets natural-language requests about a vehicle using a chat-completion
model.

An [Assistant] keeps a short conversation log so follow-up questions have context, and offers
two kinds of operations: free-form replies ([Assistant.GenerateResponse] and the helpers built on
it) and structured command extraction ([Assistant.ParseCommand]).

None of the operations return errors. Model or network failures are reported inside the
returned value, either as an error message in [Response.Content] or as an [Intent] with
[CommandUnknown]. Only construction can fail.

# Examples

	bot, err := assistant.New(ctx, &assistant.Config{Model: "gpt-4o"})
	if err != nil {
		panic(err) // No API key available
	}
	reply := bot.GenerateResponse(ctx, "Is my car charging?", assistant.WithVehicleContext(state))
	fmt.Println(reply.Content)

	intent := bot.ParseCommand(ctx, "turn on the AC at 21 degrees", state)
	if intent.Actionable(assistant.DefaultConfidenceThreshold) {
		// Execute intent.Command
	}
*/
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/teslamotors/vehicle-assistant/internal/log"
)

// EnvOpenAIAPIKey is consulted when [Config] does not include an API key.
const EnvOpenAIAPIKey = "OPENAI_API_KEY"

const (
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

var ErrMissingAPIKey = fmt.Errorf("chat API key is required; set $%s", EnvOpenAIAPIKey)

const defaultSystemPrompt = `You are an AI assistant that controls a Tesla vehicle.
You help the user run commands, answer questions about the state of the vehicle and provide
information. Keep answers short and relevant to the vehicle.`

// Config controls how an Assistant talks to the chat-completion API. Zero values select the
// defaults; a nil Temperature selects DefaultTemperature, so an explicit 0 is honored.
type Config struct {
	APIKey       string
	BaseURL      string // Optional OpenAI-compatible endpoint
	Model        string
	Temperature  *float32
	MaxTokens    int
	HistoryLimit int
}

func (c *Config) withDefaults() Config {
	var out Config
	if c != nil {
		out = *c
	}
	if out.Model == "" {
		out.Model = DefaultModel
	}
	if out.Temperature == nil {
		temperature := float32(DefaultTemperature)
		out.Temperature = &temperature
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = DefaultMaxTokens
	}
	if out.HistoryLimit == 0 {
		out.HistoryLimit = DefaultHistoryLimit
	}
	return out
}

// Response is the outcome of a chat completion.
type Response struct {
	Content    string
	TokensUsed int
	Model      string
}

// Assistant wraps a chat model with a bounded conversation log.
type Assistant struct {
	chatModel   model.BaseChatModel
	model       string
	temperature float32
	maxTokens   int
	history     *History
}

// New returns an Assistant backed by an OpenAI-compatible chat-completion API.
//
// If config does not provide an API key, $OPENAI_API_KEY is used. Returns ErrMissingAPIKey if
// neither is set.
func New(ctx context.Context, config *Config) (*Assistant, error) {
	c := config.withDefaults()
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvOpenAIAPIKey)
	}
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      c.APIKey,
		BaseURL:     c.BaseURL,
		Model:       c.Model,
		MaxTokens:   &c.MaxTokens,
		Temperature: c.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewWithChatModel(chatModel, &c), nil
}

// NewWithChatModel returns an Assistant that uses chatModel for completions. The APIKey and BaseURL
// fields of config are ignored.
func NewWithChatModel(chatModel model.BaseChatModel, config *Config) *Assistant {
	c := config.withDefaults()
	return &Assistant{
		chatModel:   chatModel,
		model:       c.Model,
		temperature: *c.Temperature,
		maxTokens:   c.MaxTokens,
		history:     NewHistory(c.HistoryLimit),
	}
}

// Model returns the name of the chat model.
func (a *Assistant) Model() string {
	return a.model
}

// AddToHistory appends a message to the conversation log.
func (a *Assistant) AddToHistory(role, content string) {
	a.history.Add(schema.RoleType(role), content)
}

// History returns the conversation log, oldest entry first.
func (a *Assistant) History() []Entry {
	return a.history.Entries()
}

// ClearHistory forgets the conversation so far.
func (a *Assistant) ClearHistory() {
	a.history.Clear()
}

type generateOptions struct {
	systemPrompt   string
	vehicleContext map[string]interface{}
}

// Option customizes a single call to GenerateResponse.
type Option func(*generateOptions)

// WithSystemPrompt replaces the default system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *generateOptions) {
		o.systemPrompt = prompt
	}
}

// WithVehicleContext appends a serialized vehicle state to the system prompt.
func WithVehicleContext(state map[string]interface{}) Option {
	return func(o *generateOptions) {
		o.vehicleContext = state
	}
}

func formatState(state map[string]interface{}) string {
	encoded, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Sprint(state)
	}
	return string(encoded)
}

func (a *Assistant) buildMessages(prompt string, o *generateOptions) []*schema.Message {
	system := o.systemPrompt
	if system == "" {
		system = defaultSystemPrompt
	}
	if len(o.vehicleContext) > 0 {
		system += "\n\nCurrent vehicle state:\n" + formatState(o.vehicleContext)
	}
	messages := []*schema.Message{schema.SystemMessage(system)}
	messages = append(messages, a.history.Messages()...)
	return append(messages, schema.UserMessage(prompt))
}

// GenerateResponse sends prompt, preceded by the system prompt and conversation log, to the
// chat model.
//
// On success the prompt and the reply are added to the conversation log. On failure the log is
// left untouched and the returned Response describes the error, with TokensUsed set to 0.
func (a *Assistant) GenerateResponse(ctx context.Context, prompt string, options ...Option) *Response {
	var o generateOptions
	for _, option := range options {
		option(&o)
	}
	messages := a.buildMessages(prompt, &o)

	log.Debug("Sending %d messages to %s", len(messages), a.model)
	reply, err := a.chatModel.Generate(ctx, messages,
		model.WithTemperature(a.temperature),
		model.WithMaxTokens(a.maxTokens),
	)
	if err == nil && reply == nil {
		err = errors.New("model returned no message")
	}
	if err != nil {
		log.Warning("Chat completion failed: %s", err)
		return &Response{
			Content:    fmt.Sprintf("Error generating response: %s", err),
			TokensUsed: 0,
			Model:      a.model,
		}
	}

	var tokens int
	if reply.ResponseMeta != nil && reply.ResponseMeta.Usage != nil {
		tokens = reply.ResponseMeta.Usage.TotalTokens
	}
	log.Debug("Received %d characters (%d tokens)", len(reply.Content), tokens)

	a.history.Add(schema.User, prompt)
	a.history.Add(schema.Assistant, reply.Content)
	return &Response{
		Content:    reply.Content,
		TokensUsed: tokens,
		Model:      a.model,
	}
}
