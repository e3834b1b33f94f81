package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectAssistantTrigger(t *testing.T) {
	tests := []struct {
		name              string
		messageText       string
		expectedIsTrigger bool
		expectedPrompt    string
	}{
		{
			name:              "Trigger with prompt",
			messageText:       "@ia cuéntame un chiste",
			expectedIsTrigger: true,
			expectedPrompt:    "cuéntame un chiste",
		},
		{
			name:              "Trigger uppercase",
			messageText:       "@IA cuéntame un chiste",
			expectedIsTrigger: true,
			expectedPrompt:    "cuéntame un chiste",
		},
		{
			name:              "Trigger with surrounding whitespace",
			messageText:       "  @ia   enviar correo a ana@example.com  ",
			expectedIsTrigger: true,
			expectedPrompt:    "enviar correo a ana@example.com",
		},
		{
			name:              "Trigger with only whitespace after it",
			messageText:       "@ia ",
			expectedIsTrigger: true,
			expectedPrompt:    "",
		},
		{
			name:              "Bare trigger",
			messageText:       "@ia",
			expectedIsTrigger: true,
			expectedPrompt:    "",
		},
		{
			name:              "Ordinary message",
			messageText:       "hola, ¿cómo estás?",
			expectedIsTrigger: false,
			expectedPrompt:    "",
		},
		{
			name:              "Trigger in middle of text",
			messageText:       "oye @ia cuéntame un chiste",
			expectedIsTrigger: false,
			expectedPrompt:    "",
		},
		{
			name:              "Token glued to a word",
			messageText:       "@iana hola",
			expectedIsTrigger: false,
			expectedPrompt:    "",
		},
		{
			name:              "Empty message",
			messageText:       "",
			expectedIsTrigger: false,
			expectedPrompt:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectAssistantTrigger(tt.messageText)
			assert.Equal(t, tt.expectedIsTrigger, result.IsTrigger, "IsTrigger mismatch")
			assert.Equal(t, tt.expectedPrompt, result.Prompt, "Prompt mismatch")
		})
	}
}
