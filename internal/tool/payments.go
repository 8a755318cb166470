package tool

import (
	"context"

	"posbridge/internal/model"
	"posbridge/internal/service"
)

type paymentRef struct {
	Scope
	PaymentGUID string `json:"paymentGuid" validate:"required"`
}

type addPaymentArgs struct {
	checkRef
	Amount               *model.Money `json:"amount" validate:"required,gt=0" desc:"Payment amount in cents"`
	TipAmount            model.Money  `json:"tipAmount,omitempty" validate:"min=0" desc:"Tip amount in cents"`
	PaymentType          string       `json:"paymentType" validate:"required,oneof=CASH CREDIT GIFTCARD HOUSE_ACCOUNT OTHER"`
	OtherPaymentTypeGUID string       `json:"otherPaymentTypeGuid,omitempty" validate:"required_if=PaymentType OTHER" desc:"Required when paymentType is OTHER"`
}

type refundArgs struct {
	paymentRef
	RefundAmount    *model.Money `json:"refundAmount" validate:"required,gt=0" desc:"Refund amount in cents"`
	TipRefundAmount model.Money  `json:"tipRefundAmount,omitempty" validate:"min=0"`
}

type voidPaymentArgs struct {
	paymentRef
	VoidReason string `json:"voidReason,omitempty"`
}

type paymentSummaryArgs struct {
	Scope
	businessDay
}

func paymentTools(s *service.PaymentService) []Tool {
	return []Tool{
		New("toast_get_payment", "Get detailed information about a payment",
			func(ctx context.Context, a paymentRef) (any, error) {
				payment, err := s.Get(ctx, a.RestaurantGUID, a.PaymentGUID)
				if err != nil {
					return nil, err
				}
				return one("payment", payment), nil
			}),

		New("toast_add_payment", "Add a cash, card or other payment to a check",
			func(ctx context.Context, a addPaymentArgs) (any, error) {
				payment, err := s.Add(ctx, a.RestaurantGUID, a.CheckGUID, service.NewPayment{
					Amount:               *a.Amount,
					TipAmount:            a.TipAmount,
					Type:                 a.PaymentType,
					OtherPaymentTypeGUID: a.OtherPaymentTypeGUID,
				})
				if err != nil {
					return nil, err
				}
				return one("payment", payment), nil
			}),

		New("toast_refund_payment", "Refund part or all of a payment",
			func(ctx context.Context, a refundArgs) (any, error) {
				res, err := s.Refund(ctx, a.RestaurantGUID, a.PaymentGUID, *a.RefundAmount, a.TipRefundAmount)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_void_payment", "Void a payment",
			func(ctx context.Context, a voidPaymentArgs) (any, error) {
				res, err := s.Void(ctx, a.RestaurantGUID, a.PaymentGUID, a.VoidReason)
				if err != nil {
					return nil, err
				}
				return success(res), nil
			}),

		New("toast_get_check_payments", "Get the payments of a check and their total",
			func(ctx context.Context, a checkRef) (any, error) {
				return s.CheckPayments(ctx, a.RestaurantGUID, a.CheckGUID)
			}),

		New("toast_get_payment_summary", "Get payment totals by payment type for a business date",
			func(ctx context.Context, a paymentSummaryArgs) (any, error) {
				return s.Summary(ctx, a.RestaurantGUID, a.BusinessDate)
			}),
	}
}
