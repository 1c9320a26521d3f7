package amqp

import (
	"encoding/json"
	"time"
)

// EntryChangeMessage tells consumers a ledger entry changed. It carries only
// the action and id; consumers fetch the full entry from the service.
type EntryChangeMessage struct {
	Action    string    `json:"action"` // created | updated | deleted
	EntryID   int64     `json:"entry_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntryChangeMessage(action string, entryID int64) *EntryChangeMessage {
	return &EntryChangeMessage{Action: action, EntryID: entryID, Timestamp: time.Now().UTC()}
}

func (m *EntryChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntryChangeMessageFromJSON(data []byte) (*EntryChangeMessage, error) {
	var msg EntryChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
