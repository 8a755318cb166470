package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"posbridge/internal/model"
	"posbridge/internal/toast"
)

const (
	stockPath = "/stock/v1/items"

	// lowStockScanLimit bounds how many menu items a low stock scan inspects.
	lowStockScanLimit = 50
)

type StockUpdate struct {
	ItemGUID string  `json:"itemGuid" validate:"required"`
	Quantity float64 `json:"quantity"`
}

type LowStockItem struct {
	ItemGUID   string   `json:"itemGuid"`
	Quantity   *float64 `json:"quantity"`
	OutOfStock bool     `json:"outOfStock"`
}

type InventoryService struct {
	client    *toast.Client
	menus     *MenuService
	bulkLimit int
}

func NewInventoryService(client *toast.Client, menus *MenuService, bulkLimit int) *InventoryService {
	return &InventoryService{client: client, menus: menus, bulkLimit: bulkLimit}
}

// location defaults the stock location to the restaurant itself.
func (s *InventoryService) location(tenant, locationGUID string) (string, string, error) {
	resolved, err := s.client.Tenant(tenant)
	if err != nil {
		return "", "", err
	}
	if locationGUID == "" {
		locationGUID = resolved
	}
	return resolved, locationGUID, nil
}

func (s *InventoryService) StockItem(ctx context.Context, tenant, itemGUID, locationGUID string) (json.RawMessage, error) {
	resolved, loc, err := s.location(tenant, locationGUID)
	if err != nil {
		return nil, err
	}
	return getRaw(ctx, s.client, resolved, stockPath+"/"+itemGUID, "locationGuid", loc)
}

func (s *InventoryService) UpdateQuantity(ctx context.Context, tenant, itemGUID, locationGUID string, quantity float64) error {
	resolved, loc, err := s.location(tenant, locationGUID)
	if err != nil {
		return err
	}
	body := struct {
		Quantity float64 `json:"quantity"`
	}{quantity}
	_, err = send(ctx, s.client, resolved, http.MethodPatch, stockPath+"/"+itemGUID, body, "locationGuid", loc)
	return err
}

func (s *InventoryService) SetInfinite(ctx context.Context, tenant, itemGUID, locationGUID string, infinite bool) error {
	resolved, loc, err := s.location(tenant, locationGUID)
	if err != nil {
		return err
	}
	body := struct {
		InfiniteQuantity bool `json:"infiniteQuantity"`
	}{infinite}
	_, err = send(ctx, s.client, resolved, http.MethodPatch, stockPath+"/"+itemGUID, body, "locationGuid", loc)
	return err
}

// LowStock checks the stock of the first menu items one by one and reports
// those with finite stock at or below threshold. Items without stock
// tracking answer with an error status and are skipped; any other failure
// fails the scan.
func (s *InventoryService) LowStock(ctx context.Context, tenant string, threshold float64) ([]LowStockItem, error) {
	resolved, q, err := scope(s.client, tenant)
	if err != nil {
		return nil, err
	}
	menus, err := s.menus.Menus(ctx, resolved)
	if err != nil {
		return nil, err
	}

	items := model.Items(menus)
	if len(items) > lowStockScanLimit {
		items = items[:lowStockScanLimit]
	}

	low := make([]LowStockItem, 0)
	for _, it := range items {
		stock, err := toast.Get[model.StockItem](ctx, s.client, resolved, stockPath+"/"+it.GUID, q)
		if err != nil {
			var httpErr *toast.HTTPError
			if !errors.As(err, &httpErr) {
				return nil, fmt.Errorf("stock of %s: %w", it.GUID, err)
			}
			slog.Debug("stock lookup skipped", "item", it.GUID, "status", httpErr.Status)
			continue
		}
		var qty float64
		if stock.Quantity != nil {
			qty = *stock.Quantity
		}
		if !stock.InfiniteQuantity && qty <= threshold {
			low = append(low, LowStockItem{ItemGUID: it.GUID, Quantity: stock.Quantity, OutOfStock: stock.OutOfStock})
		}
	}
	return low, nil
}

// BulkUpdate applies the quantity updates concurrently at one location.
func (s *InventoryService) BulkUpdate(ctx context.Context, tenant, locationGUID string, updates []StockUpdate) (BulkResult, error) {
	resolved, loc, err := s.location(tenant, locationGUID)
	if err != nil {
		return BulkResult{}, err
	}
	keys := make([]string, len(updates))
	for i, u := range updates {
		keys[i] = u.ItemGUID
	}
	return runBulk(ctx, s.bulkLimit, keys, func(ctx context.Context, i int) error {
		return s.UpdateQuantity(ctx, resolved, updates[i].ItemGUID, loc, updates[i].Quantity)
	}), nil
}
