package commands

import (
	"log"
	"regexp"
	"strings"

	"github.com/samber/mo"

	"chatbackend/models"
	"chatbackend/utils"
)

// Command type names. Definition order in DefaultDefinitions determines match
// priority: first match wins, there is no scoring.
const (
	CommandTypeEmail    = "email"
	CommandTypeCalendar = "calendar"
	CommandTypeTask     = "task"
)

// Default parameter values substituted when an optional capture group did not
// participate in the match
const (
	DefaultEmailSubject  = "No subject"
	DefaultCalendarTitle = "Important meeting"
	DefaultCalendarDate  = "today"
	DefaultCalendarTime  = "to be defined"
	DefaultTaskDesc      = "No description"
	DefaultTaskPriority  = "medium"
)

// DefaultDefinitions returns the fixed ordered command set: email, calendar,
// task. Patterns match Spanish command phrasings anywhere in the lowercased
// prompt.
func DefaultDefinitions() []models.CommandDefinition {
	return []models.CommandDefinition{
		{
			Name:        CommandTypeEmail,
			Pattern:     `(?i)(?:enviar|redactar|crear|mandar|escribir)\s+(?:correo|email|mail)\s+(?:a|para|dirigido a|destinado a)\s+([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})(?:\s+(?:sobre|acerca de|con|relacionado con)\s+(.+))?`,
			Action:      "sendEmail",
			Description: "Send an email",
		},
		{
			Name:        CommandTypeCalendar,
			Pattern:     `(?i)(?:crear|agendar|programar|agenda|organizar|coordinar)\s+(?:una\s+)?(?:reuni[oó]n|evento|meeting|cita|encuentro)(?:\s+(?:para|el|a)\s+(mañana|pasado\s+mañana|hoy|esta\s+semana|próxima\s+semana))?(?:\s+(?:sobre|acerca de|para|de)\s+(.+))?`,
			Action:      "createEvent",
			Description: "Create a calendar event",
		},
		{
			Name:        CommandTypeTask,
			Pattern:     `(?i)(?:crear|agregar|anotar|registrar)\s+(?:tarea|recordatorio|nota|pendiente)\s+(?:sobre|para|acerca de)\s+(.+)`,
			Action:      "createTask",
			Description: "Create a task or reminder",
		},
	}
}

type compiledDefinition struct {
	definition models.CommandDefinition
	pattern    *regexp.Regexp
}

// CommandsService classifies free-text prompts against a fixed ordered set of
// command definitions and extracts the type-specific webhook parameters. The
// definition list is injected at construction so tests can substitute it.
type CommandsService struct {
	definitions []compiledDefinition
}

func NewCommandsService(definitions []models.CommandDefinition) *CommandsService {
	compiled := make([]compiledDefinition, 0, len(definitions))
	for _, def := range definitions {
		pattern, err := regexp.Compile(def.Pattern)
		utils.AssertInvariant(err == nil, "command pattern must compile: "+def.Name)
		compiled = append(compiled, compiledDefinition{definition: def, pattern: pattern})
	}
	return &CommandsService{definitions: compiled}
}

// Detect matches the prompt against the definitions in order and returns the
// first match. Pure classification: no side effects, absence of a match is
// the signal to fall back to generative completion.
func (s *CommandsService) Detect(prompt string) mo.Option[*models.DetectedCommand] {
	promptLower := strings.ToLower(prompt)
	log.Printf("🔍 Looking for command in: %s", promptLower)

	for _, cd := range s.definitions {
		matches := cd.pattern.FindStringSubmatch(promptLower)
		if matches == nil {
			continue
		}

		log.Printf("✅ Command detected: %s", cd.definition.Name)
		return mo.Some(&models.DetectedCommand{
			Type:      cd.definition.Name,
			Action:    cd.definition.Action,
			Matches:   matches,
			FullMatch: matches[0],
		})
	}

	log.Printf("🔍 No command detected")
	return mo.None[*models.DetectedCommand]()
}

// ExtractParams derives the webhook parameter mapping from the capture groups
// of a detected command. Extraction never fails: required groups are
// guaranteed by the pattern that matched, optional ones fall back to fixed
// defaults.
func (s *CommandsService) ExtractParams(command *models.DetectedCommand, originalPrompt string) models.CommandParams {
	switch command.Type {
	case CommandTypeEmail:
		subject := captureOrDefault(command.Matches, 2, DefaultEmailSubject)
		return models.CommandParams{
			"destinatario": command.Matches[1],
			"titulo":       subject,
			"cuerpo":       subject,
			"comando":      command.Type,
		}
	case CommandTypeCalendar:
		// The captured relative-date phrase (group 1) is deliberately not
		// parsed: the date is always the fixed literal and the phrase only
		// feeds the time slot.
		return models.CommandParams{
			"titulo":  captureOrDefault(command.Matches, 2, DefaultCalendarTitle),
			"fecha":   DefaultCalendarDate,
			"hora":    captureOrDefault(command.Matches, 1, DefaultCalendarTime),
			"comando": command.Type,
		}
	case CommandTypeTask:
		title := command.Matches[1]
		return models.CommandParams{
			"titulo":      title,
			"descripcion": captureOrDefault(command.Matches, 1, DefaultTaskDesc),
			"prioridad":   DefaultTaskPriority,
			"comando":     command.Type,
		}
	default:
		return models.CommandParams{"comando": command.Type}
	}
}

func captureOrDefault(matches []string, group int, defaultValue string) string {
	if group < len(matches) && matches[group] != "" {
		return matches[group]
	}
	return defaultValue
}
