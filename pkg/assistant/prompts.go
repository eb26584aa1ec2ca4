package assistant

import (
	"context"
	"fmt"

	"github.com/teslamotors/vehicle-assistant/internal/log"
)

const commandParserSystemPrompt = "You are a command parser for a Tesla vehicle."

const parseCommandTemplate = `Based on the user's request, decide which Tesla command should be executed.
Reply with a JSON object with the fields:
- command: name of the command, one of 'honk', 'lock', 'unlock', 'start_climate', 'stop_climate', 'flash_lights', 'get_status' or 'unknown'
- parameters: object with the command parameters (if any)
- confidence: confidence from 0 to 1

Current vehicle state:
%s

User request: %q

Examples:
- "Honk the horn" -> {"command": "honk", "parameters": {}, "confidence": 0.95}
- "Lock the doors" -> {"command": "lock", "parameters": {}, "confidence": 0.98}
- "Turn on the AC at 23 degrees" -> {"command": "start_climate", "parameters": {"temperature": 23}, "confidence": 0.9}
- "What's the battery level?" -> {"command": "get_status", "parameters": {"what": "battery"}, "confidence": 0.95}

Return only the JSON object, without any other text.`

const explainTemplate = `Explain the following Tesla vehicle data in plain language:

%s

Make the explanation easy to follow for a regular driver and highlight what matters.`

const adviceTemplate = `Based on the state of the vehicle, give the owner useful recommendations.
Take the charge level, location, climate and other factors into account.

Vehicle state:
%s

Give 2-3 specific recommendations.`

// ParseCommand asks the model to translate userInput into an [Intent].
//
// Returns UnknownIntent() if the model cannot be reached or its reply does not contain a valid
// JSON command object.
func (a *Assistant) ParseCommand(ctx context.Context, userInput string, vehicleState map[string]interface{}) Intent {
	prompt := fmt.Sprintf(parseCommandTemplate, formatState(vehicleState), userInput)
	reply := a.GenerateResponse(ctx, prompt, WithSystemPrompt(commandParserSystemPrompt))
	intent, err := ExtractIntent(reply.Content)
	if err != nil {
		log.Debug("Could not interpret %q: %s", userInput, err)
		return UnknownIntent()
	}
	log.Debug("Interpreted %q as %s (confidence %.2f)", userInput, intent.Command, intent.Confidence)
	return intent
}

// ExplainVehicleData asks the model to describe data in plain language.
func (a *Assistant) ExplainVehicleData(ctx context.Context, data map[string]interface{}) string {
	return a.GenerateResponse(ctx, fmt.Sprintf(explainTemplate, formatState(data))).Content
}

// GetAdvice asks the model for recommendations based on vehicleState.
func (a *Assistant) GetAdvice(ctx context.Context, vehicleState map[string]interface{}) string {
	return a.GenerateResponse(ctx, fmt.Sprintf(adviceTemplate, formatState(vehicleState))).Content
}
