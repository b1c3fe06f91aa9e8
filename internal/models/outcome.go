package models

// ImportOutcomeRow is the flat form of one import outcome, as written to outcome reports.
type ImportOutcomeRow struct {
	Index         int    `csv:"index" json:"index" yaml:"index"`
	Status        string `csv:"status" json:"status" yaml:"status"`
	TransactionID string `csv:"transaction_id" json:"transaction_id,omitempty" yaml:"transaction_id,omitempty"`
	Amount        string `csv:"amount" json:"amount,omitempty" yaml:"amount,omitempty"`
	Type          string `csv:"type" json:"type,omitempty" yaml:"type,omitempty"`
	Reason        string `csv:"reason" json:"reason,omitempty" yaml:"reason,omitempty"`
}
