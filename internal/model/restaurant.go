package model

import "encoding/json"

type Restaurant struct {
	GUID               string              `json:"guid"`
	Name               string              `json:"name"`
	Description        string              `json:"description,omitempty"`
	TimeZone           string              `json:"timeZone,omitempty"`
	CloseoutHour       int                 `json:"closeoutHour,omitempty"`
	Tables             []Table             `json:"tables,omitempty"`
	ServiceAreas       []json.RawMessage   `json:"serviceAreas,omitempty"`
	DiningOptions      []json.RawMessage   `json:"diningOptions,omitempty"`
	RevenueCenters     []json.RawMessage   `json:"revenuecenters,omitempty"`
	DeliveryInfo       *DeliverySettings   `json:"deliveryInfo,omitempty"`
	OnlineOrderingInfo *OnlineOrderingInfo `json:"onlineOrderingInfo,omitempty"`
}

type Table struct {
	GUID        string          `json:"guid"`
	Name        string          `json:"name"`
	Capacity    int             `json:"capacity,omitempty"`
	ServiceArea json.RawMessage `json:"serviceArea,omitempty"`
}

type DeliverySettings struct {
	Enabled       bool    `json:"enabled"`
	Radius        float64 `json:"radius,omitempty"`
	MinimumAmount Money   `json:"minimumAmount,omitempty"`
}

type OnlineOrderingInfo struct {
	Enabled   bool              `json:"enabled"`
	Schedules []json.RawMessage `json:"schedules,omitempty"`
}
