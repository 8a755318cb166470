package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"posbridge/internal/model"
	"posbridge/internal/report"
	"posbridge/internal/toast"
)

const (
	ordersPath     = "/orders/v2/orders"
	checksPath     = "/orders/v2/checks"
	selectionsPath = "/orders/v2/selections"

	defaultVoidReason = "Voided via API"
	defaultSource     = "ONLINE"
)

// OrderFilter narrows order listings. Zero fields are not sent.
type OrderFilter struct {
	BusinessDate int
	StartDate    string
	EndDate      string
}

func (f OrderFilter) pairs() []any {
	return []any{"businessDate", f.BusinessDate, "startDate", f.StartDate, "endDate", f.EndDate}
}

type ModifierInput struct {
	ModifierGUID string  `json:"modifierGuid" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
}

type SelectionInput struct {
	ItemGUID  string          `json:"itemGuid" validate:"required"`
	Quantity  float64         `json:"quantity" validate:"gt=0"`
	Modifiers []ModifierInput `json:"modifiers,omitempty" validate:"dive"`
}

type CustomerInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type DeliveryInput struct {
	Address1 string `json:"address1" validate:"required"`
	City     string `json:"city" validate:"required"`
	State    string `json:"state" validate:"required"`
	ZipCode  string `json:"zipCode" validate:"required"`
	Notes    string `json:"notes,omitempty"`
}

type NewOrder struct {
	Source         string
	ChannelGUID    string
	DiningOption   string
	PromisedDate   string
	NumberOfGuests int
	Selections     []SelectionInput
	Customer       *CustomerInput
	DeliveryInfo   *DeliveryInput
}

type newOrderCheck struct {
	Selections []SelectionInput `json:"selections"`
	Customer   *CustomerInput   `json:"customer,omitempty"`
}

type newOrderBody struct {
	RestaurantGUID string          `json:"restaurantGuid"`
	Source         string          `json:"source"`
	ChannelGUID    string          `json:"channelGuid,omitempty"`
	DiningOption   string          `json:"diningOption,omitempty"`
	PromisedDate   string          `json:"promisedDate,omitempty"`
	NumberOfGuests int             `json:"numberOfGuests,omitempty"`
	Checks         []newOrderCheck `json:"checks"`
	DeliveryInfo   *DeliveryInput  `json:"deliveryInfo,omitempty"`
}

type voidBody struct {
	VoidReason string `json:"voidReason,omitempty"`
}

type OrderService struct {
	client *toast.Client
	now    func() time.Time
}

func NewOrderService(client *toast.Client) *OrderService {
	return &OrderService{client: client, now: time.Now}
}

func (s *OrderService) Get(ctx context.Context, tenant, orderGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, ordersPath+"/"+orderGUID)
}

// List returns one page of orders.
func (s *OrderService) List(ctx context.Context, tenant string, f OrderFilter, page, pageSize int) (toast.Page[json.RawMessage], error) {
	resolved, q, err := scope(s.client, tenant, f.pairs()...)
	if err != nil {
		return toast.Page[json.RawMessage]{}, err
	}
	return toast.FetchPage[json.RawMessage](ctx, s.client, toast.Request{Path: ordersPath, Query: q, Tenant: resolved}, page, pageSize)
}

// All walks every page of orders matching f.
func (s *OrderService) All(ctx context.Context, tenant string, f OrderFilter) ([]json.RawMessage, error) {
	return walkOrders[json.RawMessage](ctx, s.client, tenant, f)
}

func (s *OrderService) Create(ctx context.Context, tenant string, o NewOrder) (json.RawMessage, error) {
	resolved, err := s.client.Tenant(tenant)
	if err != nil {
		return nil, err
	}
	if o.Source == "" {
		o.Source = defaultSource
	}
	body := newOrderBody{
		RestaurantGUID: resolved,
		Source:         o.Source,
		ChannelGUID:    o.ChannelGUID,
		DiningOption:   o.DiningOption,
		PromisedDate:   o.PromisedDate,
		NumberOfGuests: o.NumberOfGuests,
		Checks:         []newOrderCheck{{Selections: o.Selections, Customer: o.Customer}},
		DeliveryInfo:   o.DeliveryInfo,
	}
	return send(ctx, s.client, resolved, http.MethodPost, ordersPath, body)
}

func (s *OrderService) Void(ctx context.Context, tenant, orderGUID, reason string) (json.RawMessage, error) {
	return send(ctx, s.client, tenant, http.MethodPost, ordersPath+"/"+orderGUID+"/void", voidBody{VoidReason: reason})
}

func (s *OrderService) GetCheck(ctx context.Context, tenant, checkGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, checksPath+"/"+checkGUID)
}

// CheckPage is one page of orders flattened into their checks.
type CheckPage struct {
	Checks        []map[string]any `json:"checks"`
	Count         int              `json:"count"`
	NextPageToken string           `json:"nextPageToken,omitempty"`
}

type orderChecks struct {
	GUID       string            `json:"guid"`
	OpenedDate string            `json:"openedDate"`
	Checks     []json.RawMessage `json:"checks"`
}

// ListChecks fetches one token page of orders and returns their checks, each
// tagged with its order's GUID and opened date. A non-empty voidStatus keeps
// only checks in that state.
func (s *OrderService) ListChecks(ctx context.Context, tenant string, f OrderFilter, voidStatus, pageToken string) (CheckPage, error) {
	resolved, q, err := scope(s.client, tenant, f.pairs()...)
	if err != nil {
		return CheckPage{}, err
	}
	page, err := toast.FetchTokenPage[orderChecks](ctx, s.client, toast.Request{Path: ordersPath, Query: q, Tenant: resolved}, pageToken, "orders")
	if err != nil {
		return CheckPage{}, err
	}

	out := CheckPage{Checks: []map[string]any{}, NextPageToken: page.NextPageToken}
	for _, o := range page.Items {
		for _, raw := range o.Checks {
			var check map[string]any
			if err := json.Unmarshal(raw, &check); err != nil {
				return CheckPage{}, fmt.Errorf("decode check of order %s: %w", o.GUID, err)
			}
			if voidStatus != "" {
				if status, _ := check["voidStatus"].(string); status != voidStatus {
					continue
				}
			}
			check["orderGuid"] = o.GUID
			check["orderOpenedDate"] = o.OpenedDate
			out.Checks = append(out.Checks, check)
		}
	}
	out.Count = len(out.Checks)
	return out, nil
}

type voidCheckBody struct {
	VoidStatus       string `json:"voidStatus"`
	VoidReason       string `json:"voidReason"`
	VoidBusinessDate int    `json:"voidBusinessDate"`
}

// VoidCheck marks a single check of an order void. The void is booked on
// today's business date.
func (s *OrderService) VoidCheck(ctx context.Context, tenant, orderGUID, checkGUID, reason string) (json.RawMessage, error) {
	if reason == "" {
		reason = defaultVoidReason
	}
	body := voidCheckBody{
		VoidStatus:       "VOID",
		VoidReason:       reason,
		VoidBusinessDate: model.BusinessDate(s.now()),
	}
	return send(ctx, s.client, tenant, http.MethodPatch, ordersPath+"/"+orderGUID+"/checks/"+checkGUID, body)
}

func (s *OrderService) AddSelections(ctx context.Context, tenant, checkGUID string, selections []SelectionInput) (json.RawMessage, error) {
	body := struct {
		Selections []SelectionInput `json:"selections"`
	}{selections}
	return send(ctx, s.client, tenant, http.MethodPost, checksPath+"/"+checkGUID+"/selections", body)
}

func (s *OrderService) VoidSelection(ctx context.Context, tenant, selectionGUID, reason string) (json.RawMessage, error) {
	return send(ctx, s.client, tenant, http.MethodPost, selectionsPath+"/"+selectionGUID+"/void", voidBody{VoidReason: reason})
}

func (s *OrderService) ApplyDiscount(ctx context.Context, tenant, checkGUID, discountGUID, selectionGUID string) (json.RawMessage, error) {
	body := struct {
		DiscountGUID  string `json:"discountGuid"`
		SelectionGUID string `json:"selectionGuid,omitempty"`
	}{discountGUID, selectionGUID}
	return send(ctx, s.client, tenant, http.MethodPost, checksPath+"/"+checkGUID+"/discounts", body)
}

type SelectionStatus struct {
	ItemName          string `json:"itemName"`
	FulfillmentStatus string `json:"fulfillmentStatus,omitempty"`
	Voided            bool   `json:"voided"`
}

type OrderStatus struct {
	OrderGUID         string            `json:"orderGuid"`
	OpenedDate        string            `json:"openedDate"`
	ClosedDate        string            `json:"closedDate,omitempty"`
	Voided            bool              `json:"voided"`
	SelectionStatuses []SelectionStatus `json:"selectionStatuses"`
}

func (s *OrderService) Status(ctx context.Context, tenant, orderGUID string) (OrderStatus, error) {
	resolved, q, err := scope(s.client, tenant)
	if err != nil {
		return OrderStatus{}, err
	}
	o, err := toast.Get[model.Order](ctx, s.client, resolved, ordersPath+"/"+orderGUID, q)
	if err != nil {
		return OrderStatus{}, err
	}

	st := OrderStatus{
		OrderGUID:         o.GUID,
		OpenedDate:        o.OpenedDate,
		ClosedDate:        o.ClosedDate,
		Voided:            o.Voided,
		SelectionStatuses: []SelectionStatus{},
	}
	for _, c := range o.Checks {
		for _, sel := range c.Selections {
			st.SelectionStatuses = append(st.SelectionStatuses, SelectionStatus{
				ItemName:          sel.DisplayName,
				FulfillmentStatus: sel.FulfillmentStatus,
				Voided:            sel.Voided,
			})
		}
	}
	return st, nil
}

func (s *OrderService) UpdatePromisedTime(ctx context.Context, tenant, orderGUID, promisedDate string) (json.RawMessage, error) {
	body := struct {
		PromisedDate string `json:"promisedDate"`
	}{promisedDate}
	return send(ctx, s.client, tenant, http.MethodPatch, ordersPath+"/"+orderGUID, body)
}

// SearchByCustomer walks orders in the window and keeps those with a check
// naming the customer by phone or email. Matches keep every upstream field.
func (s *OrderService) SearchByCustomer(ctx context.Context, tenant, phone, email string, f OrderFilter) ([]json.RawMessage, error) {
	if phone == "" && email == "" {
		return nil, toast.Errorf("either phone or email must be provided")
	}
	all, err := walkOrders[json.RawMessage](ctx, s.client, tenant, f)
	if err != nil {
		return nil, err
	}

	matches := make([]json.RawMessage, 0)
	for _, raw := range all {
		var o model.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		if report.OrderHasCustomer(o, phone, email) {
			matches = append(matches, raw)
		}
	}
	return matches, nil
}

// walkOrders pages through every order matching f.
func walkOrders[T any](ctx context.Context, c *toast.Client, tenant string, f OrderFilter) ([]T, error) {
	resolved, q, err := scope(c, tenant, f.pairs()...)
	if err != nil {
		return nil, err
	}
	return toast.WalkPages[T](ctx, c, toast.Request{Path: ordersPath, Query: q, Tenant: resolved}, toast.DefaultPageSize)
}
