package convstate

import (
	"encoding/json"
	"fmt"
)

// Serialize marshals the conversation state to the opaque JSON document
// callers persist between turns. encoding/json writes map keys in sorted
// order, so the same state always serializes to the same bytes; the keys of
// `buckets` therefore appear alphabetically, not in catalog order.
// Messages, a slice, keeps its order exactly.
func Serialize(state *ConversationState) ([]byte, error) {
	out, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("convstate: serialize: %w", err)
	}
	return out, nil
}

// Deserialize parses a previously-serialized state blob.
func Deserialize(blob []byte) (*ConversationState, error) {
	var state ConversationState
	if err := json.Unmarshal(blob, &state); err != nil {
		return nil, fmt.Errorf("convstate: deserialize: %w", err)
	}
	return &state, nil
}
