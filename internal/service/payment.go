package service

import (
	"context"
	"encoding/json"
	"net/http"

	"posbridge/internal/model"
	"posbridge/internal/report"
	"posbridge/internal/toast"
)

const paymentsPath = "/orders/v2/payments"

type NewPayment struct {
	Amount               model.Money `json:"amount"`
	TipAmount            model.Money `json:"tipAmount,omitempty"`
	Type                 string      `json:"type"`
	OtherPaymentTypeGUID string      `json:"otherPaymentTypeGuid,omitempty"`
}

type PaymentService struct {
	client *toast.Client
}

func NewPaymentService(client *toast.Client) *PaymentService {
	return &PaymentService{client: client}
}

func (s *PaymentService) Get(ctx context.Context, tenant, paymentGUID string) (json.RawMessage, error) {
	return getRaw(ctx, s.client, tenant, paymentsPath+"/"+paymentGUID)
}

func (s *PaymentService) Add(ctx context.Context, tenant, checkGUID string, p NewPayment) (json.RawMessage, error) {
	return send(ctx, s.client, tenant, http.MethodPost, checksPath+"/"+checkGUID+"/payments", p)
}

func (s *PaymentService) Refund(ctx context.Context, tenant, paymentGUID string, amount, tipAmount model.Money) (json.RawMessage, error) {
	body := struct {
		RefundAmount    model.Money `json:"refundAmount"`
		TipRefundAmount model.Money `json:"tipRefundAmount,omitempty"`
	}{amount, tipAmount}
	return send(ctx, s.client, tenant, http.MethodPost, paymentsPath+"/"+paymentGUID+"/refund", body)
}

func (s *PaymentService) Void(ctx context.Context, tenant, paymentGUID, reason string) (json.RawMessage, error) {
	return send(ctx, s.client, tenant, http.MethodPost, paymentsPath+"/"+paymentGUID+"/void", voidBody{VoidReason: reason})
}

type CheckPayments struct {
	Payments  []model.Payment `json:"payments"`
	TotalPaid model.Money     `json:"totalPaid"`
}

func (s *PaymentService) CheckPayments(ctx context.Context, tenant, checkGUID string) (CheckPayments, error) {
	resolved, q, err := scope(s.client, tenant)
	if err != nil {
		return CheckPayments{}, err
	}
	check, err := toast.Get[model.Check](ctx, s.client, resolved, checksPath+"/"+checkGUID, q)
	if err != nil {
		return CheckPayments{}, err
	}
	payments := check.Payments
	if payments == nil {
		payments = []model.Payment{}
	}
	return CheckPayments{Payments: payments, TotalPaid: report.PaymentsTotal(payments)}, nil
}

type PaymentTypeAmounts struct {
	Amount    model.Money `json:"amount"`
	TipAmount model.Money `json:"tipAmount"`
	Count     int         `json:"count"`
}

type PaymentSummary struct {
	BusinessDate   int                           `json:"businessDate"`
	PaymentsByType map[string]PaymentTypeAmounts `json:"paymentsByType"`
}

// Summary totals every payment of the business date by payment type.
func (s *PaymentService) Summary(ctx context.Context, tenant string, businessDate int) (PaymentSummary, error) {
	orders, err := walkOrders[model.Order](ctx, s.client, tenant, OrderFilter{BusinessDate: businessDate})
	if err != nil {
		return PaymentSummary{}, err
	}
	r := report.PaymentTypes(businessDate, orders)

	sum := PaymentSummary{BusinessDate: businessDate, PaymentsByType: make(map[string]PaymentTypeAmounts, len(r.PaymentTypes))}
	for _, t := range r.PaymentTypes {
		sum.PaymentsByType[t.Type] = PaymentTypeAmounts{Amount: t.Amount, TipAmount: t.TipAmount, Count: t.Count}
	}
	return sum, nil
}
