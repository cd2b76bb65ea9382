package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"command-logger/internal/domain/model"
)

var (
	// ErrInvalidJSON means the body is not a JSON object.
	ErrInvalidJSON = errors.New("expected JSON body")
	// ErrMissingCommand means the body has no usable "command" key.
	ErrMissingCommand = errors.New("missing 'command' field")
)

var jsonNull = []byte("null")

// DecodeCommandEvent parses a notification body. Optional attributes fall back to
// their placeholders and "extra" keeps the key order of the body.
func DecodeCommandEvent(body []byte) (model.CommandEvent, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return model.CommandEvent{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if raw == nil {
		return model.CommandEvent{}, fmt.Errorf("%w: body is null", ErrInvalidJSON)
	}

	command, ok := raw["command"]
	if !ok || isNull(command) {
		return model.CommandEvent{}, ErrMissingCommand
	}

	return model.CommandEvent{
		Command:     stringify(command),
		Username:    optional(raw, "username", model.DefaultUsername),
		UserID:      optional(raw, "user_id", model.DefaultUserID),
		Description: optional(raw, "description", model.DefaultDescription),
		BotName:     optional(raw, "bot_name", model.DefaultBotName),
		Extra:       decodeExtra(raw["extra"]),
	}, nil
}

func optional(raw map[string]json.RawMessage, key, fallback string) string {
	value, ok := raw[key]
	if !ok || isNull(value) {
		return fallback
	}
	return stringify(value)
}

// decodeExtra walks the object token by token because a Go map would lose key order.
// Anything other than an object yields no fields.
func decodeExtra(raw json.RawMessage) []model.ExtraField {
	if len(raw) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}

	var fields []model.ExtraField
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}

		// duplicate keys keep their first position and the last value
		if i, seen := index[key]; seen {
			fields[i].Value = stringify(value)
			continue
		}
		index[key] = len(fields)
		fields = append(fields, model.ExtraField{Key: key, Value: stringify(value)})
	}
	return fields
}

// stringify returns JSON strings verbatim and every other value as compact JSON text.
func stringify(raw json.RawMessage) string {
	if !isNull(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), jsonNull)
}
