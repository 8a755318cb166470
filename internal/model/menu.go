package model

import "encoding/json"

type Menu struct {
	GUID         string      `json:"guid"`
	Name         string      `json:"name"`
	Visibility   []string    `json:"visibility,omitempty"`
	Groups       []MenuGroup `json:"groups"`
	ModifiedDate string      `json:"modifiedDate,omitempty"`
}

type MenuGroup struct {
	GUID  string     `json:"guid"`
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

type MenuItem struct {
	GUID                  string          `json:"guid"`
	Name                  string          `json:"name"`
	Description           string          `json:"description,omitempty"`
	SKU                   string          `json:"sku,omitempty"`
	PLU                   string          `json:"plu,omitempty"`
	Price                 Money           `json:"price"`
	UnitOfMeasure         string          `json:"unitOfMeasure,omitempty"`
	ModifierGroups        json.RawMessage `json:"modifierGroups,omitempty"`
	OutOfStock86          bool            `json:"outOfStock86,omitempty"`
	InheritedOutOfStock86 bool            `json:"inheritedOutOfStock86,omitempty"`
}

// Items flattens every item of every group of every menu, in menu order.
func Items(menus []Menu) []MenuItem {
	var items []MenuItem
	for _, m := range menus {
		for _, g := range m.Groups {
			items = append(items, g.Items...)
		}
	}
	return items
}

type StockItem struct {
	GUID             string   `json:"guid,omitempty"`
	ItemGUID         string   `json:"itemGuid"`
	LocationGUID     string   `json:"locationGuid,omitempty"`
	Quantity         *float64 `json:"quantity,omitempty"`
	OutOfStock       bool     `json:"outOfStock"`
	InfiniteQuantity bool     `json:"infiniteQuantity"`
}
