package logging

// Standardized field names for structured logging.
const (
	FieldComponent     = "component"
	FieldFile          = "file_path"
	FieldSourceApp     = "source_app"
	FieldTransactionID = "transaction_id"
	FieldAccountID     = "account_id"
	FieldUserID        = "user_id"
	FieldCategory      = "category"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldCount         = "count"
	FieldIndex         = "index"
	FieldBudget        = "budget"
	FieldFormat        = "format"
)
