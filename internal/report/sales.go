// Package report folds raw POS records into the summaries the API does not
// expose directly. All money stays in integer cents; decimals appear only in
// display ratios and labor math.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"posbridge/internal/model"
)

type SalesSummary struct {
	BusinessDate      int             `json:"businessDate"`
	TotalSales        model.Money     `json:"totalSales"`
	GrossSales        model.Money     `json:"grossSales"`
	NetSales          model.Money     `json:"netSales"`
	TaxAmount         model.Money     `json:"taxAmount"`
	TipAmount         model.Money     `json:"tipAmount"`
	DiscountAmount    model.Money     `json:"discountAmount"`
	VoidAmount        model.Money     `json:"voidAmount"`
	RefundAmount      model.Money     `json:"refundAmount"`
	GuestCount        int             `json:"guestCount"`
	CheckCount        int             `json:"checkCount"`
	AverageCheck      decimal.Decimal `json:"averageCheck"`
	AverageGuestSpend decimal.Decimal `json:"averageGuestSpend"`
}

// Sales computes the daily summary. Voided orders only contribute their
// check totals to VoidAmount.
func Sales(businessDate int, orders []model.Order) SalesSummary {
	s := SalesSummary{BusinessDate: businessDate}

	for _, o := range orders {
		if o.Voided {
			s.VoidAmount += o.CheckTotal()
			continue
		}

		s.GuestCount += o.NumberOfGuests
		s.CheckCount += len(o.Checks)

		for _, c := range o.Checks {
			s.GrossSales += c.Amount
			s.TaxAmount += c.TaxAmount
			s.TotalSales += c.TotalAmount

			for _, p := range c.Payments {
				s.TipAmount += p.TipAmount
				if p.Refund != nil {
					s.RefundAmount += p.Refund.RefundAmount
				}
			}
			for _, d := range c.AppliedDiscounts {
				s.DiscountAmount += d.DiscountAmount
			}
		}
	}

	s.NetSales = s.GrossSales - s.DiscountAmount
	s.AverageCheck = ratio(s.NetSales, s.CheckCount)
	s.AverageGuestSpend = ratio(s.NetSales, s.GuestCount)
	return s
}

// ratio divides cents by a count for display, 0 when the count is 0.
func ratio(amount model.Money, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(amount)).
		Div(decimal.NewFromInt(int64(count))).
		Round(2)
}

type HourBucket struct {
	Hour   int         `json:"hour"`
	Sales  model.Money `json:"sales"`
	Orders int         `json:"orders"`
	Guests int         `json:"guests"`
}

type HourlySales struct {
	BusinessDate    int          `json:"businessDate"`
	HourlyBreakdown []HourBucket `json:"hourlyBreakdown"`
}

// Hourly buckets non-voided orders by the hour of their opened timestamp, in
// whatever offset the timestamp carries. Orders with an unparseable
// timestamp are skipped.
func Hourly(businessDate int, orders []model.Order) HourlySales {
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}

	for _, o := range orders {
		if o.Voided {
			continue
		}
		opened, ok := o.Opened()
		if !ok {
			continue
		}
		b := &buckets[opened.Hour()]
		b.Orders++
		b.Guests += o.NumberOfGuests
		b.Sales += o.CheckTotal()
	}

	return HourlySales{BusinessDate: businessDate, HourlyBreakdown: buckets}
}

type ItemSale struct {
	ItemGUID   string      `json:"itemGuid"`
	ItemName   string      `json:"itemName"`
	Quantity   float64     `json:"quantity"`
	GrossSales model.Money `json:"grossSales"`
	NetSales   model.Money `json:"netSales"`
}

type ItemSalesReport struct {
	Items         []ItemSale  `json:"items"`
	TotalItems    int         `json:"totalItems"`
	TotalQuantity float64     `json:"totalQuantity"`
	TotalSales    model.Money `json:"totalSales"`
}

// ItemSales ranks menu items by net sales, highest first, with ties broken by
// item GUID so that the ranking never depends on map order. limit <= 0 keeps
// every item.
func ItemSales(orders []model.Order, limit int) ItemSalesReport {
	byItem := make(map[string]*ItemSale)

	for _, o := range orders {
		if o.Voided {
			continue
		}
		for _, c := range o.Checks {
			for _, sel := range c.Selections {
				if sel.Voided {
					continue
				}
				item, ok := byItem[sel.ItemGUID]
				if !ok {
					item = &ItemSale{ItemGUID: sel.ItemGUID, ItemName: sel.DisplayName}
					byItem[sel.ItemGUID] = item
				}
				item.Quantity += sel.Quantity
				item.GrossSales += sel.Price
				item.NetSales += sel.Price - sel.DiscountTotal()
			}
		}
	}

	items := make([]ItemSale, 0, len(byItem))
	for _, item := range byItem {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].NetSales != items[j].NetSales {
			return items[i].NetSales > items[j].NetSales
		}
		return items[i].ItemGUID < items[j].ItemGUID
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	r := ItemSalesReport{Items: items, TotalItems: len(items)}
	for _, item := range items {
		r.TotalQuantity += item.Quantity
		r.TotalSales += item.NetSales
	}
	return r
}
