package report

import (
	"sort"

	"posbridge/internal/model"
)

const unknownPaymentType = "UNKNOWN"

type PaymentTypeTotal struct {
	Type      string      `json:"type"`
	Amount    model.Money `json:"amount"`
	TipAmount model.Money `json:"tipAmount"`
	Count     int         `json:"count"`
}

type PaymentTypeReport struct {
	BusinessDate int                `json:"businessDate"`
	PaymentTypes []PaymentTypeTotal `json:"paymentTypes"`
}

// PaymentTypes groups every payment of every order by payment type. Types are
// returned in name order.
func PaymentTypes(businessDate int, orders []model.Order) PaymentTypeReport {
	byType := make(map[string]*PaymentTypeTotal)
	for _, o := range orders {
		for _, c := range o.Checks {
			for _, p := range c.Payments {
				typ := p.Type
				if typ == "" {
					typ = unknownPaymentType
				}
				t, ok := byType[typ]
				if !ok {
					t = &PaymentTypeTotal{Type: typ}
					byType[typ] = t
				}
				t.Amount += p.Amount
				t.TipAmount += p.TipAmount
				t.Count++
			}
		}
	}

	out := make([]PaymentTypeTotal, 0, len(byType))
	for _, t := range byType {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })

	return PaymentTypeReport{BusinessDate: businessDate, PaymentTypes: out}
}

// PaymentsTotal sums payment amounts, tips excluded.
func PaymentsTotal(payments []model.Payment) model.Money {
	var sum model.Money
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

type DiscountTotal struct {
	DiscountGUID string      `json:"discountGuid"`
	Name         string      `json:"name"`
	Amount       model.Money `json:"amount"`
	Count        int         `json:"count"`
}

type DiscountReport struct {
	BusinessDate        int             `json:"businessDate"`
	Discounts           []DiscountTotal `json:"discounts"`
	TotalDiscountAmount model.Money     `json:"totalDiscountAmount"`
}

// Discounts groups check-level discounts by discount GUID, largest amount
// first. The first name seen for a GUID is kept.
func Discounts(businessDate int, orders []model.Order) DiscountReport {
	byGUID := make(map[string]*DiscountTotal)
	for _, o := range orders {
		for _, c := range o.Checks {
			for _, d := range c.AppliedDiscounts {
				t, ok := byGUID[d.DiscountGUID]
				if !ok {
					t = &DiscountTotal{DiscountGUID: d.DiscountGUID, Name: d.Name}
					byGUID[d.DiscountGUID] = t
				}
				t.Amount += d.DiscountAmount
				t.Count++
			}
		}
	}

	r := DiscountReport{BusinessDate: businessDate, Discounts: make([]DiscountTotal, 0, len(byGUID))}
	for _, t := range byGUID {
		r.Discounts = append(r.Discounts, *t)
		r.TotalDiscountAmount += t.Amount
	}
	sort.Slice(r.Discounts, func(i, j int) bool {
		if r.Discounts[i].Amount != r.Discounts[j].Amount {
			return r.Discounts[i].Amount > r.Discounts[j].Amount
		}
		return r.Discounts[i].DiscountGUID < r.Discounts[j].DiscountGUID
	})
	return r
}

type VoidedOrder struct {
	OrderGUID string      `json:"orderGuid"`
	VoidDate  string      `json:"voidDate,omitempty"`
	Amount    model.Money `json:"amount"`
}

type VoidedSelection struct {
	OrderGUID string      `json:"orderGuid"`
	ItemName  string      `json:"itemName"`
	Quantity  float64     `json:"quantity"`
	Amount    model.Money `json:"amount"`
	VoidDate  string      `json:"voidDate,omitempty"`
}

type VoidReport struct {
	BusinessDate         int               `json:"businessDate"`
	VoidedOrderCount     int               `json:"voidedOrderCount"`
	VoidedSelectionCount int               `json:"voidedSelectionCount"`
	TotalVoidedAmount    model.Money       `json:"totalVoidedAmount"`
	VoidedOrders         []VoidedOrder     `json:"voidedOrders"`
	VoidedSelections     []VoidedSelection `json:"voidedSelections"`
}

// Voids lists voided orders and voided selections. Voided selections are
// reported whether or not their order was voided as well.
func Voids(businessDate int, orders []model.Order) VoidReport {
	r := VoidReport{
		BusinessDate:     businessDate,
		VoidedOrders:     []VoidedOrder{},
		VoidedSelections: []VoidedSelection{},
	}

	for _, o := range orders {
		if o.Voided {
			v := VoidedOrder{OrderGUID: o.GUID, VoidDate: o.VoidDate, Amount: o.CheckTotal()}
			r.VoidedOrders = append(r.VoidedOrders, v)
			r.TotalVoidedAmount += v.Amount
		}
		for _, c := range o.Checks {
			for _, sel := range c.Selections {
				if !sel.Voided {
					continue
				}
				r.VoidedSelections = append(r.VoidedSelections, VoidedSelection{
					OrderGUID: o.GUID,
					ItemName:  sel.DisplayName,
					Quantity:  sel.Quantity,
					Amount:    sel.Price,
					VoidDate:  sel.VoidDate,
				})
				r.TotalVoidedAmount += sel.Price
			}
		}
	}

	r.VoidedOrderCount = len(r.VoidedOrders)
	r.VoidedSelectionCount = len(r.VoidedSelections)
	return r
}

type DrawerSummary struct {
	DrawerGUID string      `json:"drawerGuid"`
	PaidIn     model.Money `json:"paidIn"`
	PaidOut    model.Money `json:"paidOut"`
	NetCash    model.Money `json:"netCash"`
	EntryCount int         `json:"entryCount"`
}

// Drawer totals paid-in and paid-out cash entries, ignoring deleted ones.
// Paid-out amounts count by magnitude whatever their sign.
func Drawer(drawerGUID string, entries []model.CashEntry) DrawerSummary {
	s := DrawerSummary{DrawerGUID: drawerGUID, EntryCount: len(entries)}
	for _, e := range entries {
		if e.Deleted {
			continue
		}
		switch e.Type {
		case model.CashPaidIn:
			s.PaidIn += e.Amount
		case model.CashPaidOut:
			amount := e.Amount
			if amount < 0 {
				amount = -amount
			}
			s.PaidOut += amount
		}
	}
	s.NetCash = s.PaidIn - s.PaidOut
	return s
}
