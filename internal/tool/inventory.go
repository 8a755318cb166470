package tool

import (
	"context"

	"posbridge/internal/service"
)

type stockRef struct {
	itemRef
	LocationGUID string `json:"locationGuid,omitempty" desc:"Stock location (defaults to the restaurant GUID)"`
}

type updateQuantityArgs struct {
	stockRef
	Quantity *float64 `json:"quantity" validate:"required" desc:"New quantity"`
}

type setInfiniteArgs struct {
	stockRef
	Infinite *bool `json:"infinite" validate:"required"`
}

type lowStockArgs struct {
	Scope
	Threshold float64 `json:"threshold,omitempty" desc:"Quantity threshold (default: 0, out of stock only)"`
}

type bulkStockArgs struct {
	Scope
	Updates      []service.StockUpdate `json:"updates" validate:"required,min=1,dive"`
	LocationGUID string                `json:"locationGuid,omitempty"`
}

func inventoryTools(s *service.InventoryService) []Tool {
	return []Tool{
		New("toast_get_stock_item", "Get the stock of an item at a location",
			func(ctx context.Context, a stockRef) (any, error) {
				item, err := s.StockItem(ctx, a.RestaurantGUID, a.ItemGUID, a.LocationGUID)
				if err != nil {
					return nil, err
				}
				return one("stockItem", item), nil
			}),

		New("toast_update_stock_quantity", "Set the stock quantity of an item",
			func(ctx context.Context, a updateQuantityArgs) (any, error) {
				if err := s.UpdateQuantity(ctx, a.RestaurantGUID, a.ItemGUID, a.LocationGUID, *a.Quantity); err != nil {
					return nil, err
				}
				return done("itemGuid", a.ItemGUID, "newQuantity", *a.Quantity), nil
			}),

		New("toast_set_infinite_quantity", "Mark an item as always in stock, or stop doing so",
			func(ctx context.Context, a setInfiniteArgs) (any, error) {
				if err := s.SetInfinite(ctx, a.RestaurantGUID, a.ItemGUID, a.LocationGUID, *a.Infinite); err != nil {
					return nil, err
				}
				return done("itemGuid", a.ItemGUID, "infiniteQuantity", *a.Infinite), nil
			}),

		New("toast_list_low_stock_items", "List menu items that are low on stock or out of stock",
			func(ctx context.Context, a lowStockArgs) (any, error) {
				items, err := s.LowStock(ctx, a.RestaurantGUID, a.Threshold)
				if err != nil {
					return nil, err
				}
				return list("items", items), nil
			}),

		New("toast_bulk_update_stock", "Update the stock quantities of many items at once",
			func(ctx context.Context, a bulkStockArgs) (any, error) {
				return s.BulkUpdate(ctx, a.RestaurantGUID, a.LocationGUID, a.Updates)
			}),
	}
}
