package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbackend/models"
)

func TestDetect(t *testing.T) {
	service := NewCommandsService(DefaultDefinitions())

	tests := []struct {
		name         string
		prompt       string
		expectedType string
		expectMatch  bool
	}{
		{
			name:         "Email with topic",
			prompt:       "enviar correo a ana@example.com sobre el proyecto",
			expectedType: "email",
			expectMatch:  true,
		},
		{
			name:         "Email without topic",
			prompt:       "mandar mail para jefe@empresa.es",
			expectedType: "email",
			expectMatch:  true,
		},
		{
			name:         "Email uppercase prompt",
			prompt:       "ENVIAR CORREO A ANA@EXAMPLE.COM",
			expectedType: "email",
			expectMatch:  true,
		},
		{
			name:         "Calendar with topic",
			prompt:       "crear reunión sobre presupuesto",
			expectedType: "calendar",
			expectMatch:  true,
		},
		{
			name:         "Calendar with date and topic",
			prompt:       "agendar una reunión para mañana sobre la demo",
			expectedType: "calendar",
			expectMatch:  true,
		},
		{
			name:         "Task with topic",
			prompt:       "crear tarea sobre revisar el informe",
			expectedType: "task",
			expectMatch:  true,
		},
		{
			name:        "Task without topic clause does not match",
			prompt:      "crear tarea",
			expectMatch: false,
		},
		{
			name:        "Free text",
			prompt:      "cuéntame un chiste",
			expectMatch: false,
		},
		{
			name:        "Empty prompt",
			prompt:      "",
			expectMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := service.Detect(tt.prompt)
			if !tt.expectMatch {
				assert.True(t, result.IsAbsent(), "expected no command match")
				return
			}
			require.True(t, result.IsPresent(), "expected a command match")
			assert.Equal(t, tt.expectedType, result.MustGet().Type)
		})
	}
}

func TestDetect_FirstMatchWins(t *testing.T) {
	// Two definitions whose patterns both match; order decides
	service := NewCommandsService([]models.CommandDefinition{
		{Name: "first", Pattern: `hola`, Action: "a"},
		{Name: "second", Pattern: `hola mundo`, Action: "b"},
	})

	result := service.Detect("hola mundo")
	require.True(t, result.IsPresent())
	assert.Equal(t, "first", result.MustGet().Type, "definition order is the sole tie-break")
}

func TestExtractParams_Email(t *testing.T) {
	service := NewCommandsService(DefaultDefinitions())

	t.Run("WithTopic", func(t *testing.T) {
		// Scenario: "enviar correo a ana@example.com sobre el proyecto"
		cmd := service.Detect("enviar correo a ana@example.com sobre el proyecto").MustGet()
		params := service.ExtractParams(cmd, "enviar correo a ana@example.com sobre el proyecto")

		assert.Equal(t, models.CommandParams{
			"destinatario": "ana@example.com",
			"titulo":       "el proyecto",
			"cuerpo":       "el proyecto",
			"comando":      "email",
		}, params)
	})

	t.Run("WithoutTopic_UsesDefaults", func(t *testing.T) {
		cmd := service.Detect("enviar correo a ana@example.com").MustGet()
		params := service.ExtractParams(cmd, "enviar correo a ana@example.com")

		assert.Equal(t, "ana@example.com", params["destinatario"])
		assert.Equal(t, DefaultEmailSubject, params["titulo"])
		assert.Equal(t, DefaultEmailSubject, params["cuerpo"])
	})

	t.Run("RecipientIsVerbatimCapture", func(t *testing.T) {
		cmd := service.Detect("redactar email para maria.lopez+dev@sub.example.org sobre la entrega").MustGet()
		params := service.ExtractParams(cmd, "")

		assert.Equal(t, "maria.lopez+dev@sub.example.org", params["destinatario"])
	})
}

func TestExtractParams_Calendar(t *testing.T) {
	service := NewCommandsService(DefaultDefinitions())

	t.Run("WithTopic", func(t *testing.T) {
		// Scenario: "crear reunión sobre presupuesto"
		cmd := service.Detect("crear reunión sobre presupuesto").MustGet()
		params := service.ExtractParams(cmd, "crear reunión sobre presupuesto")

		assert.Equal(t, models.CommandParams{
			"titulo":  "presupuesto",
			"fecha":   "today",
			"hora":    "to be defined",
			"comando": "calendar",
		}, params)
	})

	t.Run("DateIsAlwaysTodayEvenWhenPhraseCaptured", func(t *testing.T) {
		cmd := service.Detect("agendar una reunión para mañana sobre la demo").MustGet()
		require.Equal(t, "mañana", cmd.Matches[1], "the relative-date phrase is captured")

		params := service.ExtractParams(cmd, "")
		assert.Equal(t, DefaultCalendarDate, params["fecha"], "captured phrase never overrides the fixed date")
		assert.Equal(t, "mañana", params["hora"], "captured phrase fills the time slot instead")
		assert.Equal(t, "la demo", params["titulo"])
	})

	t.Run("WithoutTopic_UsesDefaultTitle", func(t *testing.T) {
		cmd := service.Detect("organizar evento").MustGet()
		params := service.ExtractParams(cmd, "")

		assert.Equal(t, DefaultCalendarTitle, params["titulo"])
		assert.Equal(t, DefaultCalendarTime, params["hora"])
	})
}

func TestExtractParams_Task(t *testing.T) {
	service := NewCommandsService(DefaultDefinitions())

	cmd := service.Detect("agregar recordatorio sobre llamar al cliente").MustGet()
	params := service.ExtractParams(cmd, "agregar recordatorio sobre llamar al cliente")

	assert.Equal(t, models.CommandParams{
		"titulo":      "llamar al cliente",
		"descripcion": "llamar al cliente",
		"prioridad":   "medium",
		"comando":     "task",
	}, params)
}

func TestExtractParams_UnknownType(t *testing.T) {
	service := NewCommandsService(DefaultDefinitions())

	params := service.ExtractParams(&models.DetectedCommand{Type: "weather"}, "qué tiempo hace")
	assert.Equal(t, models.CommandParams{"comando": "weather"}, params)
}
