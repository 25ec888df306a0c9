package amqp

import (
	"encoding/json"
	"time"
)

// ChangeEvent tells other family clients that one collection changed and
// should be re-read. It deliberately carries no record data: the receiver
// reloads the full collection snapshot from the store, so a lost or
// duplicated event can never corrupt state.
type ChangeEvent struct {
	FamilyID   string    `json:"family_id"`
	Collection string    `json:"collection"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewChangeEvent creates a change event for one family collection.
func NewChangeEvent(familyID, collection string) *ChangeEvent {
	return &ChangeEvent{
		FamilyID:   familyID,
		Collection: collection,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (e *ChangeEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ChangeEventFromJSON creates an event from JSON bytes.
func ChangeEventFromJSON(data []byte) (*ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
