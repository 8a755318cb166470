package tool

import (
	"context"

	"posbridge/internal/service"
)

type tableRef struct {
	Scope
	TableGUID string `json:"tableGuid" validate:"required"`
}

type noArgs struct{}

func restaurantTools(s *service.RestaurantService) []Tool {
	return []Tool{
		New("toast_get_restaurant_info", "Get the configuration of a restaurant",
			func(ctx context.Context, a Scope) (any, error) {
				r, err := s.Info(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return one("restaurant", r), nil
			}),

		New("toast_list_accessible_restaurants", "List the restaurants the configured credentials can reach",
			func(ctx context.Context, _ noArgs) (any, error) {
				restaurants, err := s.Accessible(ctx)
				if err != nil {
					return nil, err
				}
				return list("restaurants", restaurants), nil
			}),

		New("toast_list_tables", "List the tables of a restaurant",
			func(ctx context.Context, a Scope) (any, error) {
				tables, err := s.Tables(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("tables", tables), nil
			}),

		New("toast_get_table", "Get information about a table",
			func(ctx context.Context, a tableRef) (any, error) {
				table, err := s.Table(ctx, a.RestaurantGUID, a.TableGUID)
				if err != nil {
					return nil, err
				}
				return one("table", table), nil
			}),

		New("toast_list_service_areas", "List the service areas (dining sections) of a restaurant",
			func(ctx context.Context, a Scope) (any, error) {
				areas, err := s.ServiceAreas(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("serviceAreas", areas), nil
			}),

		New("toast_list_dining_options", "List dining options such as dine-in, takeout and delivery",
			func(ctx context.Context, a Scope) (any, error) {
				options, err := s.DiningOptions(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("diningOptions", options), nil
			}),

		New("toast_list_revenue_centers", "List revenue centers such as bars and POS stations",
			func(ctx context.Context, a Scope) (any, error) {
				centers, err := s.RevenueCenters(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("revenueCenters", centers), nil
			}),

		New("toast_get_online_ordering_status", "Check whether online ordering is enabled and get its schedules",
			func(ctx context.Context, a Scope) (any, error) {
				info, err := s.OnlineOrdering(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return map[string]any{"enabled": info.Enabled, "schedules": info.Schedules}, nil
			}),

		New("toast_get_delivery_settings", "Get delivery settings such as radius and minimum amount",
			func(ctx context.Context, a Scope) (any, error) {
				return s.Delivery(ctx, a.RestaurantGUID)
			}),
	}
}
