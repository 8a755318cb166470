package service

import (
	"context"
	"time"

	"posbridge/internal/model"
	"posbridge/internal/report"
	"posbridge/internal/toast"
)

// Lookback windows for customer views.
const (
	recentWindow  = 90 * 24 * time.Hour
	historyWindow = 365 * 24 * time.Hour
)

type CustomerService struct {
	client *toast.Client
	now    func() time.Time
}

func NewCustomerService(client *toast.Client) *CustomerService {
	return &CustomerService{client: client, now: time.Now}
}

func (s *CustomerService) window(ctx context.Context, tenant string, span time.Duration) ([]model.Order, error) {
	end := s.now()
	f := OrderFilter{StartDate: model.ISOTime(end.Add(-span)), EndDate: model.ISOTime(end)}
	return walkOrders[model.Order](ctx, s.client, tenant, f)
}

// Search finds customers seen in the last 90 days.
func (s *CustomerService) Search(ctx context.Context, tenant string, f report.CustomerFilter) ([]report.CustomerStats, error) {
	orders, err := s.window(ctx, tenant, recentWindow)
	if err != nil {
		return nil, err
	}
	return report.Search(report.BuildDirectory(orders), f), nil
}

// History lists a customer's orders from the last year, newest first.
func (s *CustomerService) History(ctx context.Context, tenant, phone, email string, limit int) (report.OrderHistoryReport, error) {
	if phone == "" && email == "" {
		return report.OrderHistoryReport{}, toast.Errorf("either phone or email must be provided")
	}
	orders, err := s.window(ctx, tenant, historyWindow)
	if err != nil {
		return report.OrderHistoryReport{}, err
	}
	return report.OrderHistory(orders, phone, email, limit), nil
}

func (s *CustomerService) Loyalty(ctx context.Context, tenant, identifier string) (report.LoyaltyStatus, error) {
	orders, err := s.window(ctx, tenant, historyWindow)
	if err != nil {
		return report.LoyaltyStatus{}, err
	}
	return report.Loyalty(orders, identifier), nil
}

// Top ranks the customers of the last 90 days.
func (s *CustomerService) Top(ctx context.Context, tenant, sortBy string, limit int) (report.TopCustomersReport, error) {
	orders, err := s.window(ctx, tenant, recentWindow)
	if err != nil {
		return report.TopCustomersReport{}, err
	}
	return report.Top(report.BuildDirectory(orders), sortBy, limit), nil
}
