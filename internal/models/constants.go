package models

// Transaction sources
const (
	SourceSMS     = "sms"
	SourceReceipt = "receipt"
	SourceManual  = "manual"
)

// Categories
const (
	CategoryUncategorized = "Uncategorized"
	CategoryFood          = "Food"
	CategoryGroceries     = "Groceries"
	CategoryTransport     = "Transport"
	CategoryShopping      = "Shopping"
	CategoryBills         = "Bills"
	CategoryEntertainment = "Entertainment"
	CategorySalary        = "Salary"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
