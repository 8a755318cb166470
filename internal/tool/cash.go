package tool

import (
	"context"

	"posbridge/internal/model"
	"posbridge/internal/service"
)

type drawersArgs struct {
	Scope
	businessDay
}

type drawerRef struct {
	Scope
	DrawerGUID string `json:"drawerGuid" validate:"required"`
}

type cashEntriesArgs struct {
	Scope
	BusinessDate int    `json:"businessDate,omitempty" validate:"omitempty,bizdate"`
	DrawerGUID   string `json:"drawerGuid,omitempty"`
	EmployeeGUID string `json:"employeeGuid,omitempty"`
}

type createCashEntryArgs struct {
	Scope
	DrawerGUID string       `json:"drawerGuid" validate:"required"`
	Amount     *model.Money `json:"amount" validate:"required" desc:"Amount in cents (positive for paid in, negative for paid out)"`
	Type       string       `json:"type" validate:"required,oneof=PAID_IN PAID_OUT"`
	Reason     string       `json:"reason,omitempty"`
	Comment    string       `json:"comment,omitempty"`
}

type entryRef struct {
	Scope
	EntryGUID string `json:"entryGuid" validate:"required"`
}

type depositsArgs struct {
	Scope
	dateRange
}

type createDepositArgs struct {
	Scope
	Amount *model.Money `json:"amount" validate:"required,gt=0" desc:"Deposit amount in cents"`
	Date   string       `json:"date,omitempty" validate:"omitempty,timestamp" desc:"ISO 8601 date (defaults to now)"`
}

func cashTools(s *service.CashService) []Tool {
	return []Tool{
		New("toast_list_cash_drawers", "List the cash drawers of a business date",
			func(ctx context.Context, a drawersArgs) (any, error) {
				drawers, err := s.Drawers(ctx, a.RestaurantGUID, a.BusinessDate)
				if err != nil {
					return nil, err
				}
				return list("drawers", drawers), nil
			}),

		New("toast_get_cash_drawer", "Get detailed information about a cash drawer",
			func(ctx context.Context, a drawerRef) (any, error) {
				drawer, err := s.Drawer(ctx, a.RestaurantGUID, a.DrawerGUID)
				if err != nil {
					return nil, err
				}
				return one("drawer", drawer), nil
			}),

		New("toast_list_cash_entries", "List paid in and paid out entries for a drawer or business date",
			func(ctx context.Context, a cashEntriesArgs) (any, error) {
				entries, err := s.Entries(ctx, a.RestaurantGUID, service.CashEntryFilter{
					BusinessDate: a.BusinessDate,
					DrawerGUID:   a.DrawerGUID,
					EmployeeGUID: a.EmployeeGUID,
				})
				if err != nil {
					return nil, err
				}
				return list("entries", entries), nil
			}),

		New("toast_create_cash_entry", "Record a cash paid in or paid out entry",
			func(ctx context.Context, a createCashEntryArgs) (any, error) {
				entry, err := s.CreateEntry(ctx, a.RestaurantGUID, service.NewCashEntry{
					DrawerGUID: a.DrawerGUID,
					Amount:     *a.Amount,
					Type:       a.Type,
					Reason:     a.Reason,
					Comment:    a.Comment,
				})
				if err != nil {
					return nil, err
				}
				return one("entry", entry), nil
			}),

		New("toast_get_cash_drawer_summary", "Summarize paid in, paid out and net cash of a drawer",
			func(ctx context.Context, a drawerRef) (any, error) {
				return s.DrawerSummary(ctx, a.RestaurantGUID, a.DrawerGUID)
			}),

		New("toast_void_cash_entry", "Void a cash entry",
			func(ctx context.Context, a entryRef) (any, error) {
				if err := s.VoidEntry(ctx, a.RestaurantGUID, a.EntryGUID); err != nil {
					return nil, err
				}
				return done("entryGuid", a.EntryGUID), nil
			}),

		New("toast_list_cash_deposits", "List cash deposits",
			func(ctx context.Context, a depositsArgs) (any, error) {
				deposits, err := s.Deposits(ctx, a.RestaurantGUID, a.BusinessDate, a.StartDate, a.EndDate)
				if err != nil {
					return nil, err
				}
				return list("deposits", deposits), nil
			}),

		New("toast_create_cash_deposit", "Record a cash deposit",
			func(ctx context.Context, a createDepositArgs) (any, error) {
				deposit, err := s.CreateDeposit(ctx, a.RestaurantGUID, *a.Amount, a.Date)
				if err != nil {
					return nil, err
				}
				return one("deposit", deposit), nil
			}),
	}
}
