package tool

import (
	"context"

	"posbridge/internal/service"
)

type orderRef struct {
	Scope
	OrderGUID string `json:"orderGuid" validate:"required" desc:"The unique GUID of the order"`
}

type checkRef struct {
	Scope
	CheckGUID string `json:"checkGuid" validate:"required"`
}

type listOrdersArgs struct {
	Scope
	dateRange
	Page     int `json:"page,omitempty" validate:"omitempty,min=1" desc:"Page number (default: 1)"`
	PageSize int `json:"pageSize,omitempty" validate:"omitempty,min=1,max=100" desc:"Page size (default: 100, max: 100)"`
}

type createOrderArgs struct {
	Scope
	Source         string                   `json:"source,omitempty" desc:"Order source (default: ONLINE)"`
	ChannelGUID    string                   `json:"channelGuid,omitempty"`
	DiningOption   string                   `json:"diningOption,omitempty"`
	PromisedDate   string                   `json:"promisedDate,omitempty" validate:"omitempty,timestamp"`
	NumberOfGuests int                      `json:"numberOfGuests,omitempty" validate:"omitempty,min=0"`
	Selections     []service.SelectionInput `json:"selections" validate:"required,min=1,dive"`
	Customer       *service.CustomerInput   `json:"customer,omitempty"`
	DeliveryInfo   *service.DeliveryInput   `json:"deliveryInfo,omitempty"`
}

type voidOrderArgs struct {
	orderRef
	VoidReason string `json:"voidReason,omitempty"`
}

type listChecksArgs struct {
	Scope
	dateRange
	VoidStatus string `json:"voidStatus,omitempty" desc:"Only return checks with this void status, e.g. VOID"`
	PageToken  string `json:"pageToken,omitempty" desc:"Continuation token from a previous call"`
}

type voidCheckArgs struct {
	Scope
	OrderGUID  string `json:"orderGuid" validate:"required"`
	CheckGUID  string `json:"checkGuid" validate:"required"`
	VoidReason string `json:"voidReason,omitempty" desc:"Defaults to \"Voided via API\""`
}

type addSelectionsArgs struct {
	checkRef
	Selections []service.SelectionInput `json:"selections" validate:"required,min=1,dive"`
}

type voidSelectionArgs struct {
	Scope
	SelectionGUID string `json:"selectionGuid" validate:"required"`
	VoidReason    string `json:"voidReason,omitempty"`
}

type applyDiscountArgs struct {
	checkRef
	DiscountGUID  string `json:"discountGuid" validate:"required"`
	SelectionGUID string `json:"selectionGuid,omitempty" desc:"Apply to one selection instead of the whole check"`
}

type promisedTimeArgs struct {
	orderRef
	PromisedDate string `json:"promisedDate" validate:"required,timestamp" desc:"ISO 8601 timestamp"`
}

type ordersByDateArgs struct {
	Scope
	businessDay
}

type searchByCustomerArgs struct {
	Scope
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	StartDate string `json:"startDate,omitempty" validate:"omitempty,timestamp"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,timestamp"`
}

func orderTools(s *service.OrderService) []Tool {
	return []Tool{
		New("toast_get_order", "Get detailed information about a specific order by GUID",
			func(ctx context.Context, a orderRef) (any, error) {
				order, err := s.Get(ctx, a.RestaurantGUID, a.OrderGUID)
				if err != nil {
					return nil, err
				}
				return one("order", order), nil
			}),

		New("toast_list_orders", "List orders filtered by business date or date range. Returns one page of results.",
			func(ctx context.Context, a listOrdersArgs) (any, error) {
				page, err := s.List(ctx, a.RestaurantGUID, a.orderFilter(), a.Page, a.PageSize)
				if err != nil {
					return nil, err
				}
				return map[string]any{
					"orders": page.Items,
					"pagination": map[string]any{
						"page":     page.Page,
						"pageSize": page.PageSize,
						"hasMore":  page.HasMore,
					},
				}, nil
			}),

		New("toast_create_order", "Create a new online, delivery or takeout order with one check",
			func(ctx context.Context, a createOrderArgs) (any, error) {
				order, err := s.Create(ctx, a.RestaurantGUID, service.NewOrder{
					Source:         a.Source,
					ChannelGUID:    a.ChannelGUID,
					DiningOption:   a.DiningOption,
					PromisedDate:   a.PromisedDate,
					NumberOfGuests: a.NumberOfGuests,
					Selections:     a.Selections,
					Customer:       a.Customer,
					DeliveryInfo:   a.DeliveryInfo,
				})
				if err != nil {
					return nil, err
				}
				return one("order", order), nil
			}),

		New("toast_void_order", "Void an entire order",
			func(ctx context.Context, a voidOrderArgs) (any, error) {
				res, err := s.Void(ctx, a.RestaurantGUID, a.OrderGUID, a.VoidReason)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_get_check", "Get detailed information about a specific check",
			func(ctx context.Context, a checkRef) (any, error) {
				check, err := s.GetCheck(ctx, a.RestaurantGUID, a.CheckGUID)
				if err != nil {
					return nil, err
				}
				return one("check", check), nil
			}),

		New("toast_list_checks", "List the checks of one page of orders, optionally filtered by void status",
			func(ctx context.Context, a listChecksArgs) (any, error) {
				return s.ListChecks(ctx, a.RestaurantGUID, a.orderFilter(), a.VoidStatus, a.PageToken)
			}),

		New("toast_void_check", "Void a single check of an order",
			func(ctx context.Context, a voidCheckArgs) (any, error) {
				res, err := s.VoidCheck(ctx, a.RestaurantGUID, a.OrderGUID, a.CheckGUID, a.VoidReason)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_add_selections", "Add items to an existing check",
			func(ctx context.Context, a addSelectionsArgs) (any, error) {
				res, err := s.AddSelections(ctx, a.RestaurantGUID, a.CheckGUID, a.Selections)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_void_selection", "Void a single selection on a check",
			func(ctx context.Context, a voidSelectionArgs) (any, error) {
				res, err := s.VoidSelection(ctx, a.RestaurantGUID, a.SelectionGUID, a.VoidReason)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_apply_discount", "Apply a discount to a check or one of its selections",
			func(ctx context.Context, a applyDiscountArgs) (any, error) {
				res, err := s.ApplyDiscount(ctx, a.RestaurantGUID, a.CheckGUID, a.DiscountGUID, a.SelectionGUID)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_get_order_status", "Get the fulfillment status of an order and its selections",
			func(ctx context.Context, a orderRef) (any, error) {
				return s.Status(ctx, a.RestaurantGUID, a.OrderGUID)
			}),

		New("toast_update_order_promised_time", "Update the promised fulfillment time of an order",
			func(ctx context.Context, a promisedTimeArgs) (any, error) {
				res, err := s.UpdatePromisedTime(ctx, a.RestaurantGUID, a.OrderGUID, a.PromisedDate)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_get_orders_by_business_date", "Get every order of a business date",
			func(ctx context.Context, a ordersByDateArgs) (any, error) {
				orders, err := s.All(ctx, a.RestaurantGUID, service.OrderFilter{BusinessDate: a.BusinessDate})
				if err != nil {
					return nil, err
				}
				return list("orders", orders), nil
			}),

		New("toast_search_orders_by_customer", "Search orders by customer phone or email",
			func(ctx context.Context, a searchByCustomerArgs) (any, error) {
				f := service.OrderFilter{StartDate: a.StartDate, EndDate: a.EndDate}
				orders, err := s.SearchByCustomer(ctx, a.RestaurantGUID, a.Phone, a.Email, f)
				if err != nil {
					return nil, err
				}
				return list("orders", orders), nil
			}),
	}
}
