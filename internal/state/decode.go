package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// decoders maps every action name to its payload decoder.
var decoders = map[string]func([]byte) (Action, error){
	"SetData":            decodeAs[SetData],
	"AddAccount":         decodeAs[AddAccount],
	"DeleteAccount":      decodeAs[DeleteAccount],
	"AddTransaction":     decodeAs[AddTransaction],
	"DeleteTransaction":  decodeAs[DeleteTransaction],
	"AddCategory":        decodeAs[AddCategory],
	"DeleteCategory":     decodeAs[DeleteCategory],
	"AddProject":         decodeAs[AddProject],
	"UpdateProject":      decodeAs[UpdateProject],
	"DeleteProject":      decodeAs[DeleteProject],
	"AddTask":            decodeAs[AddTask],
	"UpdateTask":         decodeAs[UpdateTask],
	"DeleteTask":         decodeAs[DeleteTask],
	"UpdateTaskStatus":   decodeAs[UpdateTaskStatus],
	"AddContact":         decodeAs[AddContact],
	"UpdateContact":      decodeAs[UpdateContact],
	"DeleteContact":      decodeAs[DeleteContact],
	"AddJournalEntry":    decodeAs[AddJournalEntry],
	"UpdateJournalEntry": decodeAs[UpdateJournalEntry],
	"DeleteJournalEntry": decodeAs[DeleteJournalEntry],
	"AddMoodLog":         decodeAs[AddMoodLog],
	"DeleteMoodLog":      decodeAs[DeleteMoodLog],
}

// ActionNames returns every decodable action name, sorted.
func ActionNames() []string {
	names := make([]string, 0, len(decoders))
	for name := range decoders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DecodeAction builds the named action from a JSON payload. Unknown payload
// fields are rejected so typos surface instead of becoming zero values.
func DecodeAction(name string, payload []byte) (Action, error) {
	decode, ok := decoders[name]
	if !ok {
		return nil, &ActionError{
			Code:    ErrCodeUnknownAction,
			Action:  name,
			Message: fmt.Sprintf("unknown action, must be one of %v", ActionNames()),
		}
	}
	act, err := decode(payload)
	if err != nil {
		return nil, &ActionError{
			Code:    ErrCodeMalformedPayload,
			Action:  name,
			Message: err.Error(),
		}
	}
	return act, nil
}

func decodeAs[T Action](payload []byte) (Action, error) {
	var act T
	if len(bytes.TrimSpace(payload)) == 0 {
		return act, nil
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&act); err != nil {
		return nil, err
	}
	return act, nil
}
