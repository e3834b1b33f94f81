package models

// CommandDefinition describes one recognizable structured command: a regular
// expression over lowercased free text, a symbolic action name for the
// automation backend and a human-readable description. Definitions are
// immutable and evaluated in a fixed order; the first match wins.
type CommandDefinition struct {
	Name        string
	Pattern     string
	Action      string
	Description string
}

// DetectedCommand is the result of matching a prompt against the command
// definitions. Matches holds the full regex submatch slice: Matches[0] is the
// full match, the rest are capture groups ("" when a group did not
// participate in the match).
type DetectedCommand struct {
	Type      string
	Action    string
	Matches   []string
	FullMatch string
}

// CommandParams is the flat parameter mapping sent to the automation webhook.
// The keys are command-type specific and match the webhook contract
// (destinatario/titulo/cuerpo for email, titulo/fecha/hora for calendar,
// titulo/descripcion/prioridad for task), plus "comando" echoing the type.
type CommandParams map[string]string

// DispatchContext carries chat/user identification for the webhook call
type DispatchContext struct {
	ChatID   string `json:"chatId"`
	ChatName string `json:"chatName"`
	UserName string `json:"userName"`
	UserID   string `json:"userId"`
}

// DispatchResult represents the automation backend's parsed response.
// Success comes from the boolean field in the response body, independent of
// the HTTP status beyond "2xx received".
type DispatchResult struct {
	Success      bool
	Message      string
	ErrorMessage string
	Data         map[string]any
}
