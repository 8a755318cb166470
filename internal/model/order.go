package model

import "time"

// Money is an amount in minor currency units (cents).
type Money int64

type Order struct {
	GUID           string  `json:"guid"`
	ExternalID     string  `json:"externalId,omitempty"`
	OpenedDate     string  `json:"openedDate"`
	ModifiedDate   string  `json:"modifiedDate,omitempty"`
	PromisedDate   string  `json:"promisedDate,omitempty"`
	ClosedDate     string  `json:"closedDate,omitempty"`
	PaidDate       string  `json:"paidDate,omitempty"`
	VoidDate       string  `json:"voidDate,omitempty"`
	Source         string  `json:"source,omitempty"`
	BusinessDate   int     `json:"businessDate"`
	NumberOfGuests int     `json:"numberOfGuests,omitempty"`
	Voided         bool    `json:"voided"`
	Deleted        bool    `json:"deleted"`
	Checks         []Check `json:"checks"`
}

// Opened parses OpenedDate, keeping the offset the timestamp was written with.
func (o Order) Opened() (time.Time, bool) {
	return ParseTime(o.OpenedDate)
}

// CheckTotal is the sum of totalAmount over the order's checks.
func (o Order) CheckTotal() Money {
	var sum Money
	for _, c := range o.Checks {
		sum += c.TotalAmount
	}
	return sum
}

type Check struct {
	GUID               string              `json:"guid"`
	DisplayNumber      string              `json:"displayNumber,omitempty"`
	OpenedDate         string              `json:"openedDate,omitempty"`
	ClosedDate         string              `json:"closedDate,omitempty"`
	Selections         []Selection         `json:"selections"`
	Payments           []Payment           `json:"payments,omitempty"`
	AppliedDiscounts   []AppliedDiscount   `json:"appliedDiscounts,omitempty"`
	Customer           *Customer           `json:"customer,omitempty"`
	AppliedLoyaltyInfo *AppliedLoyaltyInfo `json:"appliedLoyaltyInfo,omitempty"`
	Amount             Money               `json:"amount"`
	TaxAmount          Money               `json:"taxAmount"`
	TotalAmount        Money               `json:"totalAmount"`
	PaymentStatus      string              `json:"paymentStatus,omitempty"`
	VoidStatus         string              `json:"voidStatus,omitempty"`
	Voided             bool                `json:"voided"`
	VoidDate           string              `json:"voidDate,omitempty"`
	TabName            string              `json:"tabName,omitempty"`
}

type Selection struct {
	GUID              string            `json:"guid"`
	ItemGUID          string            `json:"itemGuid"`
	DisplayName       string            `json:"displayName"`
	Quantity          float64           `json:"quantity"`
	PreDiscountPrice  Money             `json:"preDiscountPrice,omitempty"`
	Price             Money             `json:"price"`
	Tax               Money             `json:"tax,omitempty"`
	Voided            bool              `json:"voided"`
	VoidDate          string            `json:"voidDate,omitempty"`
	AppliedDiscounts  []AppliedDiscount `json:"appliedDiscounts,omitempty"`
	FulfillmentStatus string            `json:"fulfillmentStatus,omitempty"`
}

// DiscountTotal sums the discount amounts applied to this selection.
func (s Selection) DiscountTotal() Money {
	var sum Money
	for _, d := range s.AppliedDiscounts {
		sum += d.DiscountAmount
	}
	return sum
}

type Payment struct {
	GUID          string    `json:"guid"`
	PaymentDate   string    `json:"paymentDate,omitempty"`
	Type          string    `json:"type"`
	Amount        Money     `json:"amount"`
	TipAmount     Money     `json:"tipAmount"`
	PaymentStatus string    `json:"paymentStatus,omitempty"`
	CardType      string    `json:"cardType,omitempty"`
	Last4Digits   string    `json:"last4Digits,omitempty"`
	Refund        *Refund   `json:"refund,omitempty"`
	VoidInfo      *VoidInfo `json:"voidInfo,omitempty"`
}

type Refund struct {
	RefundAmount    Money  `json:"refundAmount"`
	TipRefundAmount Money  `json:"tipRefundAmount,omitempty"`
	RefundDate      string `json:"refundDate,omitempty"`
}

type VoidInfo struct {
	VoidDate         string `json:"voidDate,omitempty"`
	VoidBusinessDate int    `json:"voidBusinessDate,omitempty"`
	VoidReason       string `json:"voidReason,omitempty"`
}

type AppliedDiscount struct {
	GUID           string `json:"guid,omitempty"`
	DiscountGUID   string `json:"discountGuid"`
	Name           string `json:"name"`
	DiscountAmount Money  `json:"discountAmount"`
}

type AppliedLoyaltyInfo struct {
	LoyaltyIdentifier string `json:"loyaltyIdentifier"`
	Vendor            string `json:"vendor,omitempty"`
}

type Customer struct {
	GUID      string `json:"guid,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
