package tool

import (
	"context"

	"posbridge/internal/model"
	"posbridge/internal/service"
)

type itemRef struct {
	Scope
	ItemGUID string `json:"itemGuid" validate:"required"`
}

type menuRef struct {
	Scope
	MenuGUID string `json:"menuGuid" validate:"required"`
}

type searchArgs struct {
	Scope
	Query string `json:"query" validate:"required" desc:"Case-insensitive search text"`
}

type updatePriceArgs struct {
	itemRef
	Price *model.Money `json:"price" validate:"required,min=0" desc:"New price in cents (e.g. 1250 for $12.50)"`
}

type set86Args struct {
	itemRef
	OutOfStock *bool `json:"outOfStock" validate:"required" desc:"true to mark 86'd, false to mark available"`
}

type modifierGroupArgs struct {
	Scope
	ModifierGroupGUID string `json:"modifierGroupGuid" validate:"required"`
}

type menuGroupsArgs struct {
	Scope
	MenuGUID string `json:"menuGuid,omitempty" desc:"Only list the groups of this menu"`
}

type groupArgs struct {
	Scope
	GroupGUID string `json:"groupGuid" validate:"required" desc:"Menu group GUID"`
}

type bulk86Args struct {
	Scope
	ItemGUIDs  []string `json:"itemGuids" validate:"required,min=1,dive,required"`
	OutOfStock *bool    `json:"outOfStock" validate:"required"`
}

func menuTools(s *service.MenuService) []Tool {
	return []Tool{
		New("toast_list_menus", "List all menus of a restaurant",
			func(ctx context.Context, a Scope) (any, error) {
				menus, err := s.List(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("menus", menus), nil
			}),

		New("toast_get_menu", "Get a menu with all of its groups and items",
			func(ctx context.Context, a menuRef) (any, error) {
				menu, err := s.Get(ctx, a.RestaurantGUID, a.MenuGUID)
				if err != nil {
					return nil, err
				}
				return one("menu", menu), nil
			}),

		New("toast_get_menu_item", "Get detailed information about a menu item",
			func(ctx context.Context, a itemRef) (any, error) {
				item, err := s.GetItem(ctx, a.RestaurantGUID, a.ItemGUID)
				if err != nil {
					return nil, err
				}
				return one("item", item), nil
			}),

		New("toast_search_menu_items", "Search menu items by name, SKU or PLU",
			func(ctx context.Context, a searchArgs) (any, error) {
				items, err := s.SearchItems(ctx, a.RestaurantGUID, a.Query)
				if err != nil {
					return nil, err
				}
				return list("items", items), nil
			}),

		New("toast_update_item_price", "Update the price of a menu item",
			func(ctx context.Context, a updatePriceArgs) (any, error) {
				res, err := s.UpdatePrice(ctx, a.RestaurantGUID, a.ItemGUID, *a.Price)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_set_item_86", "Mark an item out of stock (86'd) or back in stock",
			func(ctx context.Context, a set86Args) (any, error) {
				if err := s.Set86(ctx, a.RestaurantGUID, a.ItemGUID, *a.OutOfStock); err != nil {
					return nil, err
				}
				return done("itemGuid", a.ItemGUID, "outOfStock", *a.OutOfStock), nil
			}),

		New("toast_get_modifier_group", "Get a modifier group such as toppings or sides",
			func(ctx context.Context, a modifierGroupArgs) (any, error) {
				group, err := s.GetModifierGroup(ctx, a.RestaurantGUID, a.ModifierGroupGUID)
				if err != nil {
					return nil, err
				}
				return one("modifierGroup", group), nil
			}),

		New("toast_list_menu_groups", "List menu groups (categories) across all menus or of one menu",
			func(ctx context.Context, a menuGroupsArgs) (any, error) {
				groups, err := s.Groups(ctx, a.RestaurantGUID, a.MenuGUID)
				if err != nil {
					return nil, err
				}
				return list("groups", groups), nil
			}),

		New("toast_get_items_by_category", "Get all menu items of a menu group",
			func(ctx context.Context, a groupArgs) (any, error) {
				g, err := s.Group(ctx, a.RestaurantGUID, a.GroupGUID)
				if err != nil {
					return nil, err
				}
				return map[string]any{"items": g.Items, "groupName": g.Name, "count": len(g.Items)}, nil
			}),

		New("toast_get_86d_items", "Get all items currently marked out of stock",
			func(ctx context.Context, a Scope) (any, error) {
				items, err := s.OutOfStock(ctx, a.RestaurantGUID)
				if err != nil {
					return nil, err
				}
				return list("items", items), nil
			}),

		New("toast_bulk_86_items", "Mark many items out of stock, or back in stock, at once",
			func(ctx context.Context, a bulk86Args) (any, error) {
				return s.Bulk86(ctx, a.RestaurantGUID, a.ItemGUIDs, *a.OutOfStock)
			}),
	}
}
