package test

import (
	"context"

	"github.com/edumart/edumart/internal/adapter/payment"
	"github.com/edumart/edumart/internal/domain/model"
)

// GatewayStub serves canned checkout sessions for tests.
type GatewayStub struct {
	CreateSessionFn func(context.Context, payment.SessionParams) (*model.CheckoutSession, error)
	GetSessionFn    func(context.Context, string) (*model.CheckoutSession, error)
	Session         *model.CheckoutSession
	Err             error
}

// CreateSession returns the configured session or a fresh open one.
func (s *GatewayStub) CreateSession(ctx context.Context, params payment.SessionParams) (*model.CheckoutSession, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, params)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Session != nil {
		return s.Session, nil
	}
	return &model.CheckoutSession{
		ID:          "cs_stub",
		URL:         "https://pay.example/cs_stub",
		Status:      model.SessionStatusOpen,
		AmountTotal: params.Amount,
		Currency:    params.Currency,
		Metadata:    params.Metadata,
	}, nil
}

// GetSession returns the configured session or an open one with the given id.
func (s *GatewayStub) GetSession(ctx context.Context, id string) (*model.CheckoutSession, error) {
	if s.GetSessionFn != nil {
		return s.GetSessionFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Session != nil {
		return s.Session, nil
	}
	return &model.CheckoutSession{ID: id, Status: model.SessionStatusOpen}, nil
}
