package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"posbridge/internal/model"
	"posbridge/internal/toast"
)

const (
	menusPath          = "/menus/v2/menus"
	menuItemsPath      = "/menus/v2/items"
	modifierGroupsPath = "/menus/v2/modifierGroups"
)

type MenuService struct {
	client    *toast.Client
	bulkLimit int
}

func NewMenuService(client *toast.Client, bulkLimit int) *MenuService {
	return &MenuService{client: client, bulkLimit: bulkLimit}
}

func (s *MenuService) List(ctx context.Context, tenant string) ([]json.RawMessage, error) {
	return getList(ctx, s.client, tenant, menusPath)
}

// Menus decodes every menu of the restaurant.
func (s *MenuService) Menus(ctx context.Context, tenant string) ([]model.Menu, error) {
	resolved, q, err := scope(s.client, tenant)
	if err != nil {
		return nil, err
	}
	return toast.Get[[]model.Menu](ctx, s.client, resolved, menusPath, q)
}

func (s *MenuService) Get(ctx context.Context, tenant, menuGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, menusPath+"/"+menuGUID)
}

func (s *MenuService) GetItem(ctx context.Context, tenant, itemGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, menuItemsPath+"/"+itemGUID)
}

func (s *MenuService) GetModifierGroup(ctx context.Context, tenant, groupGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, modifierGroupsPath+"/"+groupGUID)
}

// SearchItems matches a case-insensitive substring of name, SKU or PLU.
func (s *MenuService) SearchItems(ctx context.Context, tenant, q string) ([]model.MenuItem, error) {
	menus, err := s.Menus(ctx, tenant)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(q)
	out := make([]model.MenuItem, 0)
	for _, it := range model.Items(menus) {
		if strings.Contains(strings.ToLower(it.Name), needle) ||
			(it.SKU != "" && strings.Contains(strings.ToLower(it.SKU), needle)) ||
			(it.PLU != "" && strings.Contains(strings.ToLower(it.PLU), needle)) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *MenuService) UpdatePrice(ctx context.Context, tenant, itemGUID string, price model.Money) (json.RawMessage, error) {
	body := struct {
		Price model.Money `json:"price"`
	}{price}
	return send(ctx, s.client, tenant, http.MethodPatch, menuItemsPath+"/"+itemGUID, body)
}

// Set86 marks the item out of stock, or back in stock when outOfStock is false.
func (s *MenuService) Set86(ctx context.Context, tenant, itemGUID string, outOfStock bool) error {
	body := struct {
		OutOfStock86 bool `json:"outOfStock86"`
	}{outOfStock}
	_, err := send(ctx, s.client, tenant, http.MethodPatch, menuItemsPath+"/"+itemGUID, body)
	return err
}

// Groups lists the groups of one menu, or of every menu when menuGUID is empty.
func (s *MenuService) Groups(ctx context.Context, tenant, menuGUID string) ([]model.MenuGroup, error) {
	var menus []model.Menu
	if menuGUID != "" {
		resolved, q, err := scope(s.client, tenant)
		if err != nil {
			return nil, err
		}
		m, err := toast.Get[model.Menu](ctx, s.client, resolved, menusPath+"/"+menuGUID, q)
		if err != nil {
			return nil, err
		}
		menus = []model.Menu{m}
	} else {
		var err error
		if menus, err = s.Menus(ctx, tenant); err != nil {
			return nil, err
		}
	}

	groups := make([]model.MenuGroup, 0)
	for _, m := range menus {
		groups = append(groups, m.Groups...)
	}
	return groups, nil
}

// Group finds a menu group across all menus.
func (s *MenuService) Group(ctx context.Context, tenant, groupGUID string) (model.MenuGroup, error) {
	menus, err := s.Menus(ctx, tenant)
	if err != nil {
		return model.MenuGroup{}, err
	}
	for _, m := range menus {
		for _, g := range m.Groups {
			if g.GUID == groupGUID {
				if g.Items == nil {
					g.Items = []model.MenuItem{}
				}
				return g, nil
			}
		}
	}
	return model.MenuGroup{}, toast.Errorf("menu group %s not found", groupGUID)
}

// OutOfStock lists items 86'd directly or through their group.
func (s *MenuService) OutOfStock(ctx context.Context, tenant string) ([]model.MenuItem, error) {
	menus, err := s.Menus(ctx, tenant)
	if err != nil {
		return nil, err
	}
	out := make([]model.MenuItem, 0)
	for _, it := range model.Items(menus) {
		if it.OutOfStock86 || it.InheritedOutOfStock86 {
			out = append(out, it)
		}
	}
	return out, nil
}

// Bulk86 sets the 86 flag on every item concurrently. Item failures are
// reported in the result; only an unresolvable tenant fails the call.
func (s *MenuService) Bulk86(ctx context.Context, tenant string, itemGUIDs []string, outOfStock bool) (BulkResult, error) {
	resolved, err := s.client.Tenant(tenant)
	if err != nil {
		return BulkResult{}, err
	}
	return runBulk(ctx, s.bulkLimit, itemGUIDs, func(ctx context.Context, i int) error {
		return s.Set86(ctx, resolved, itemGUIDs[i], outOfStock)
	}), nil
}
