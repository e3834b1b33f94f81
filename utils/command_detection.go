package utils

import (
	"strings"
)

// AssistantTrigger is the literal prefix that marks a chat message as directed
// at the assistant pipeline rather than another human participant.
const AssistantTrigger = "@ia"

// TriggerDetectionResult represents the result of assistant trigger detection
type TriggerDetectionResult struct {
	IsTrigger bool
	Prompt    string
}

// DetectAssistantTrigger checks if a message text starts with the assistant
// trigger token (case-insensitive) and returns the effective prompt with the
// token stripped. The prompt may be empty when the message is only the token.
func DetectAssistantTrigger(messageText string) TriggerDetectionResult {
	trimmed := strings.TrimSpace(messageText)

	if len(trimmed) < len(AssistantTrigger) {
		return TriggerDetectionResult{IsTrigger: false, Prompt: ""}
	}

	if !strings.EqualFold(trimmed[:len(AssistantTrigger)], AssistantTrigger) {
		return TriggerDetectionResult{IsTrigger: false, Prompt: ""}
	}

	rest := trimmed[len(AssistantTrigger):]
	// Require the token to stand alone: "@ia hola" triggers, "@iana" does not
	if rest != "" && !strings.HasPrefix(rest, " ") && !strings.HasPrefix(rest, "\t") && !strings.HasPrefix(rest, "\n") {
		return TriggerDetectionResult{IsTrigger: false, Prompt: ""}
	}

	return TriggerDetectionResult{
		IsTrigger: true,
		Prompt:    strings.TrimSpace(rest),
	}
}
