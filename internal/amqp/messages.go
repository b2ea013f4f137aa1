package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"spese-tracker/internal/core"
)

// ExpenseRecordedMessage announces a newly stored expense to downstream
// consumers. It carries the full record since expenses are never edited.
type ExpenseRecordedMessage struct {
	ID          string    `json:"id"`
	Ref         string    `json:"ref"`
	AmountCents int64     `json:"amount_cents"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewExpenseRecordedMessage builds a message with a fresh random id.
func NewExpenseRecordedMessage(ref string, e core.Expense) *ExpenseRecordedMessage {
	return &ExpenseRecordedMessage{
		ID:          uuid.NewString(),
		Ref:         ref,
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.String(),
		Timestamp:   time.Now().UTC(),
	}
}

// Expense rebuilds the domain expense carried by the message, field for field.
func (m *ExpenseRecordedMessage) Expense() (core.Expense, error) {
	d, err := core.ParseDate(m.Date)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{Amount: core.Money{Cents: m.AmountCents}, Category: m.Category, Description: m.Description, Date: d}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseRecordedMessageFromJSON creates a message from JSON bytes
func ExpenseRecordedMessageFromJSON(data []byte) (*ExpenseRecordedMessage, error) {
	var msg ExpenseRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
