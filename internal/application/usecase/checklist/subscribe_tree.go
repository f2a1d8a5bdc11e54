// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// SubscribeTreeInput represents the input for opening a tree subscription.
type SubscribeTreeInput struct {
	Owner    string
	OnUpdate func(groups []*entity.Group)
}

// SubscribeTreeOutput carries the live subscription handle.
type SubscribeTreeOutput struct {
	Subscription adapter.TreeSubscription
}

// SubscribeTreeUseCase opens a change subscription on the owner's tree when
// the configured backend supports one.
type SubscribeTreeUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewSubscribeTreeUseCase creates a new SubscribeTreeUseCase instance.
func NewSubscribeTreeUseCase(checklistRepo adapter.ChecklistRepository) *SubscribeTreeUseCase {
	return &SubscribeTreeUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute probes the repository for subscription support and opens one. The
// callback receives a full snapshot per notification, starting with the
// current state.
func (uc *SubscribeTreeUseCase) Execute(ctx context.Context, input SubscribeTreeInput) (*SubscribeTreeOutput, error) {
	subscriber, ok := uc.checklistRepo.(adapter.TreeSubscriber)
	if !ok {
		return nil, domainerror.NewChecklistError(
			domainerror.ErrCodeSubscriptionUnsupported,
			"configured storage backend does not support subscriptions",
			domainerror.ErrSubscriptionUnsupported,
		)
	}

	subscription, err := subscriber.SubscribeTree(ctx, normalizeOwner(input.Owner), input.OnUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to tree: %w", err)
	}

	return &SubscribeTreeOutput{Subscription: subscription}, nil
}
