package service

import (
	"context"

	"posbridge/internal/model"
	"posbridge/internal/report"
	"posbridge/internal/toast"
)

// ReportService fetches the orders of a window and folds them. A failed walk
// fails the report; no partial summary is ever returned.
type ReportService struct {
	client *toast.Client
}

func NewReportService(client *toast.Client) *ReportService {
	return &ReportService{client: client}
}

func (s *ReportService) orders(ctx context.Context, tenant string, f OrderFilter) ([]model.Order, error) {
	return walkOrders[model.Order](ctx, s.client, tenant, f)
}

func (s *ReportService) Sales(ctx context.Context, tenant string, businessDate int) (report.SalesSummary, error) {
	orders, err := s.orders(ctx, tenant, OrderFilter{BusinessDate: businessDate})
	if err != nil {
		return report.SalesSummary{}, err
	}
	return report.Sales(businessDate, orders), nil
}

func (s *ReportService) Hourly(ctx context.Context, tenant string, businessDate int) (report.HourlySales, error) {
	orders, err := s.orders(ctx, tenant, OrderFilter{BusinessDate: businessDate})
	if err != nil {
		return report.HourlySales{}, err
	}
	return report.Hourly(businessDate, orders), nil
}

func (s *ReportService) ItemSales(ctx context.Context, tenant string, f OrderFilter, limit int) (report.ItemSalesReport, error) {
	orders, err := s.orders(ctx, tenant, f)
	if err != nil {
		return report.ItemSalesReport{}, err
	}
	return report.ItemSales(orders, limit), nil
}

func (s *ReportService) PaymentTypes(ctx context.Context, tenant string, businessDate int) (report.PaymentTypeReport, error) {
	orders, err := s.orders(ctx, tenant, OrderFilter{BusinessDate: businessDate})
	if err != nil {
		return report.PaymentTypeReport{}, err
	}
	return report.PaymentTypes(businessDate, orders), nil
}

func (s *ReportService) Discounts(ctx context.Context, tenant string, businessDate int) (report.DiscountReport, error) {
	orders, err := s.orders(ctx, tenant, OrderFilter{BusinessDate: businessDate})
	if err != nil {
		return report.DiscountReport{}, err
	}
	return report.Discounts(businessDate, orders), nil
}

func (s *ReportService) Voids(ctx context.Context, tenant string, businessDate int) (report.VoidReport, error) {
	orders, err := s.orders(ctx, tenant, OrderFilter{BusinessDate: businessDate})
	if err != nil {
		return report.VoidReport{}, err
	}
	return report.Voids(businessDate, orders), nil
}
