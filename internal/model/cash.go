package model

const (
	CashPaidIn  = "PAID_IN"
	CashPaidOut = "PAID_OUT"
)

type CashEntry struct {
	GUID    string `json:"guid"`
	Date    string `json:"date,omitempty"`
	Amount  Money  `json:"amount"`
	Type    string `json:"type"`
	Reason  string `json:"reason,omitempty"`
	Comment string `json:"comment,omitempty"`
	Deleted bool   `json:"deleted"`
}
