package tool

import (
	"context"

	"posbridge/internal/report"
	"posbridge/internal/service"
)

type searchCustomersArgs struct {
	Scope
	Phone string `json:"phone,omitempty" desc:"Exact phone number"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Name  string `json:"name,omitempty" desc:"Part of the first or last name"`
}

type customerHistoryArgs struct {
	Scope
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1" desc:"Max number of orders to return"`
}

type loyaltyArgs struct {
	Scope
	LoyaltyIdentifier string `json:"loyaltyIdentifier" validate:"required" desc:"Phone number or loyalty card number"`
}

type topCustomersArgs struct {
	Scope
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1" desc:"Number of customers (default: 25)"`
	SortBy string `json:"sortBy,omitempty" validate:"omitempty,oneof=frequency totalSpent" desc:"Ranking key (default: totalSpent)"`
}

func customerTools(s *service.CustomerService) []Tool {
	return []Tool{
		New("toast_search_customers", "Search customers seen in the last 90 days by phone, email or name",
			func(ctx context.Context, a searchCustomersArgs) (any, error) {
				customers, err := s.Search(ctx, a.RestaurantGUID, report.CustomerFilter{
					Phone: a.Phone,
					Email: a.Email,
					Name:  a.Name,
				})
				if err != nil {
					return nil, err
				}
				return list("customers", customers), nil
			}),

		New("toast_get_customer_order_history", "Get a customer's orders from the last year by phone or email",
			func(ctx context.Context, a customerHistoryArgs) (any, error) {
				return s.History(ctx, a.RestaurantGUID, a.Phone, a.Email, a.Limit)
			}),

		New("toast_get_customer_loyalty_status", "Get loyalty points and recent orders for a loyalty identifier",
			func(ctx context.Context, a loyaltyArgs) (any, error) {
				return s.Loyalty(ctx, a.RestaurantGUID, a.LoyaltyIdentifier)
			}),

		New("toast_get_top_customers", "Rank the customers of the last 90 days by order count or total spent",
			func(ctx context.Context, a topCustomersArgs) (any, error) {
				return s.Top(ctx, a.RestaurantGUID, a.SortBy, a.Limit)
			}),
	}
}
