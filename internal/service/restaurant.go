package service

import (
	"context"
	"encoding/json"

	"posbridge/internal/model"
	"posbridge/internal/toast"
)

const (
	restaurantsPath = "/restaurants/v1/restaurants"
	partnersPath    = "/partners/v1/restaurants"
)

// RestaurantService reads restaurant configuration. Every view except
// Accessible is cut from the same restaurant document.
type RestaurantService struct {
	client *toast.Client
}

func NewRestaurantService(client *toast.Client) *RestaurantService {
	return &RestaurantService{client: client}
}

func (s *RestaurantService) Info(ctx context.Context, tenant string) (json.RawMessage, error) {
	resolved, err := s.client.Tenant(tenant)
	if err != nil {
		return nil, err
	}
	return s.client.Do(ctx, toast.Request{Path: restaurantsPath + "/" + resolved, Tenant: resolved})
}

func (s *RestaurantService) restaurant(ctx context.Context, tenant string) (model.Restaurant, error) {
	resolved, err := s.client.Tenant(tenant)
	if err != nil {
		return model.Restaurant{}, err
	}
	return toast.Get[model.Restaurant](ctx, s.client, resolved, restaurantsPath+"/"+resolved, nil)
}

// Accessible lists the restaurants the credentials can reach.
func (s *RestaurantService) Accessible(ctx context.Context) ([]json.RawMessage, error) {
	resolved, err := s.client.Tenant("")
	if err != nil {
		return nil, err
	}
	list, err := toast.Get[[]json.RawMessage](ctx, s.client, resolved, partnersPath, nil)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []json.RawMessage{}
	}
	return list, nil
}

func (s *RestaurantService) Tables(ctx context.Context, tenant string) ([]model.Table, error) {
	r, err := s.restaurant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return orEmpty(r.Tables), nil
}

func (s *RestaurantService) Table(ctx context.Context, tenant, tableGUID string) (model.Table, error) {
	r, err := s.restaurant(ctx, tenant)
	if err != nil {
		return model.Table{}, err
	}
	for _, t := range r.Tables {
		if t.GUID == tableGUID {
			return t, nil
		}
	}
	return model.Table{}, toast.Errorf("table %s not found", tableGUID)
}

func (s *RestaurantService) ServiceAreas(ctx context.Context, tenant string) ([]json.RawMessage, error) {
	r, err := s.restaurant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return orEmpty(r.ServiceAreas), nil
}

func (s *RestaurantService) DiningOptions(ctx context.Context, tenant string) ([]json.RawMessage, error) {
	r, err := s.restaurant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return orEmpty(r.DiningOptions), nil
}

func (s *RestaurantService) RevenueCenters(ctx context.Context, tenant string) ([]json.RawMessage, error) {
	r, err := s.restaurant(ctx, tenant)
	if err != nil {
		return nil, err
	}
	return orEmpty(r.RevenueCenters), nil
}

func (s *RestaurantService) OnlineOrdering(ctx context.Context, tenant string) (model.OnlineOrderingInfo, error) {
	r, err := s.restaurant(ctx, tenant)
	if err != nil {
		return model.OnlineOrderingInfo{}, err
	}
	info := model.OnlineOrderingInfo{Schedules: []json.RawMessage{}}
	if r.OnlineOrderingInfo != nil {
		info.Enabled = r.OnlineOrderingInfo.Enabled
		info.Schedules = orEmpty(r.OnlineOrderingInfo.Schedules)
	}
	return info, nil
}

func (s *RestaurantService) Delivery(ctx context.Context, tenant string) (model.DeliverySettings, error) {
	r, err := s.restaurant(ctx, tenant)
	if err != nil {
		return model.DeliverySettings{}, err
	}
	if r.DeliveryInfo == nil {
		return model.DeliverySettings{}, nil
	}
	return *r.DeliveryInfo, nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
