package test

import (
	"context"
	"sync"

	domainErrors "github.com/comprae/marketplace/internal/domain/errors"
	"github.com/comprae/marketplace/internal/domain/model"
)

// PublisherStub records published order events.
type PublisherStub struct {
	mu     sync.Mutex
	keys   []string
	events []model.OrderEvent
	Err    error
}

func (p *PublisherStub) Publish(_ context.Context, key string, event model.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (p *PublisherStub) Events() []model.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.OrderEvent(nil), p.events...)
}

func (p *PublisherStub) Keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

// TransitionCall is one applied transition seen by TransitionRecorderStub.
type TransitionCall struct {
	Action model.OrderAction
	From   model.OrderStatus
	To     model.OrderStatus
}

// RejectionCall is one rejected action seen by TransitionRecorderStub.
type RejectionCall struct {
	Action model.OrderAction
	Kind   domainErrors.Kind
}

// TransitionRecorderStub captures order metrics calls.
type TransitionRecorderStub struct {
	mu       sync.Mutex
	applied  []TransitionCall
	rejected []RejectionCall
}

func (r *TransitionRecorderStub) TransitionApplied(_ context.Context, action model.OrderAction, from, to model.OrderStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, TransitionCall{Action: action, From: from, To: to})
}

func (r *TransitionRecorderStub) TransitionRejected(_ context.Context, action model.OrderAction, kind domainErrors.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected = append(r.rejected, RejectionCall{Action: action, Kind: kind})
}

func (r *TransitionRecorderStub) Applied() []TransitionCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TransitionCall(nil), r.applied...)
}

func (r *TransitionRecorderStub) Rejected() []RejectionCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RejectionCall(nil), r.rejected...)
}
