package tool

import (
	"context"

	"posbridge/internal/service"
)

type reportArgs struct {
	Scope
	businessDay
}

type itemSalesArgs struct {
	Scope
	dateRange
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1" desc:"Return only the top N items"`
}

func reportTools(s *service.ReportService) []Tool {
	return []Tool{
		New("toast_get_sales_summary", "Get gross, net, tax, tip, refund and void totals for a business date",
			func(ctx context.Context, a reportArgs) (any, error) {
				return s.Sales(ctx, a.RestaurantGUID, a.BusinessDate)
			}),

		New("toast_get_hourly_sales", "Get sales broken down by hour of day for a business date",
			func(ctx context.Context, a reportArgs) (any, error) {
				return s.Hourly(ctx, a.RestaurantGUID, a.BusinessDate)
			}),

		New("toast_get_item_sales_report", "Rank menu items by net sales",
			func(ctx context.Context, a itemSalesArgs) (any, error) {
				return s.ItemSales(ctx, a.RestaurantGUID, a.orderFilter(), a.Limit)
			}),

		New("toast_get_payment_type_report", "Break down payments by payment type for a business date",
			func(ctx context.Context, a reportArgs) (any, error) {
				return s.PaymentTypes(ctx, a.RestaurantGUID, a.BusinessDate)
			}),

		New("toast_get_discount_report", "Report the discounts applied on a business date",
			func(ctx context.Context, a reportArgs) (any, error) {
				return s.Discounts(ctx, a.RestaurantGUID, a.BusinessDate)
			}),

		New("toast_get_void_report", "Report voided orders and items for a business date",
			func(ctx context.Context, a reportArgs) (any, error) {
				return s.Voids(ctx, a.RestaurantGUID, a.BusinessDate)
			}),
	}
}
