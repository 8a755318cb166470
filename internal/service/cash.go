package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"posbridge/internal/model"
	"posbridge/internal/report"
	"posbridge/internal/toast"
)

const (
	drawersPath  = "/cashmgmt/v1/drawers"
	entriesPath  = "/cashmgmt/v1/entries"
	depositsPath = "/cashmgmt/v1/deposits"
)

type CashEntryFilter struct {
	BusinessDate int
	DrawerGUID   string
	EmployeeGUID string
}

type NewCashEntry struct {
	DrawerGUID string      `json:"drawerGuid"`
	Amount     model.Money `json:"amount"`
	Type       string      `json:"type"`
	Reason     string      `json:"reason,omitempty"`
	Comment    string      `json:"comment,omitempty"`
}

type CashService struct {
	client *toast.Client
	now    func() time.Time
}

func NewCashService(client *toast.Client) *CashService {
	return &CashService{client: client, now: time.Now}
}

func (s *CashService) Drawers(ctx context.Context, tenant string, businessDate int) ([]json.RawMessage, error) {
	return getList(ctx, s.client, tenant, drawersPath, "businessDate", businessDate)
}

func (s *CashService) Drawer(ctx context.Context, tenant, drawerGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, drawersPath+"/"+drawerGUID)
}

func (s *CashService) Entries(ctx context.Context, tenant string, f CashEntryFilter) ([]json.RawMessage, error) {
	return getList(ctx, s.client, tenant, entriesPath,
		"businessDate", f.BusinessDate,
		"drawerGuid", f.DrawerGUID,
		"employeeGuid", f.EmployeeGUID,
	)
}

func (s *CashService) CreateEntry(ctx context.Context, tenant string, e NewCashEntry) (json.RawMessage, error) {
	return send(ctx, s.client, tenant, http.MethodPost, entriesPath, e)
}

// VoidEntry deletes a paid in or paid out entry.
func (s *CashService) VoidEntry(ctx context.Context, tenant, entryGUID string) error {
	_, err := send(ctx, s.client, tenant, http.MethodDelete, entriesPath+"/"+entryGUID, nil)
	return err
}

func (s *CashService) DrawerSummary(ctx context.Context, tenant, drawerGUID string) (report.DrawerSummary, error) {
	resolved, q, err := scope(s.client, tenant, "drawerGuid", drawerGUID)
	if err != nil {
		return report.DrawerSummary{}, err
	}
	entries, err := toast.Get[[]model.CashEntry](ctx, s.client, resolved, entriesPath, q)
	if err != nil {
		return report.DrawerSummary{}, err
	}
	return report.Drawer(drawerGUID, entries), nil
}

func (s *CashService) Deposits(ctx context.Context, tenant string, businessDate int, start, end string) ([]json.RawMessage, error) {
	return getList(ctx, s.client, tenant, depositsPath,
		"businessDate", businessDate,
		"startDate", start,
		"endDate", end,
	)
}

// CreateDeposit records a deposit; an empty date means now.
func (s *CashService) CreateDeposit(ctx context.Context, tenant string, amount model.Money, date string) (json.RawMessage, error) {
	if date == "" {
		date = model.ISOTime(s.now())
	}
	body := struct {
		Amount model.Money `json:"amount"`
		Date   string      `json:"date"`
	}{amount, date}
	return send(ctx, s.client, tenant, http.MethodPost, depositsPath, body)
}
