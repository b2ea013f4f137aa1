package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldBackend     = "backend"
	FieldPath        = "path"
	FieldRef         = "ref"
	FieldCount       = "count"
	FieldRow         = "row"
	FieldReason      = "reason"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldAmountCents = "amount_cents"
	FieldDate        = "date"
	FieldMessageID   = "message_id"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentShell   = "shell"
	ComponentExpense = "expense"
	ComponentStorage = "storage"
	ComponentCSV     = "csv"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentReport  = "report"
	ComponentBackend = "backend"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpRecord  = "record"
	OpLoad    = "load"
	OpAppend  = "append"
	OpFilter  = "filter"
	OpSummary = "summary"
	OpReport  = "report"
	OpPublish = "publish"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithExpense adds expense-related fields
func (f LogFields) WithExpense(amountCents int64, category, description, date string) LogFields {
	f[FieldAmountCents] = amountCents
	f[FieldCategory] = category
	f[FieldDescription] = description
	f[FieldDate] = date
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
