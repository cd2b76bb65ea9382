package model

// Placeholders used when an optional event attribute is not supplied.
const (
	DefaultUsername    = "Unknown user"
	DefaultUserID      = "unknown"
	DefaultDescription = "No description provided."
	DefaultBotName     = "Unknown Bot"
)

// ExtraField is a caller-supplied key/value pair, already stringified.
type ExtraField struct {
	Key   string
	Value string
}

// CommandEvent describes a command or trigger that was used somewhere and should be logged.
type CommandEvent struct {
	Command     string
	Username    string
	UserID      string
	Description string
	BotName     string
	// Extra keeps the order in which the caller sent the entries.
	Extra []ExtraField
}
