// Package checklist contains checklist-tree use cases.
package checklist

import (
	"context"
	"fmt"
	"strings"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
)

// FetchTreeInput represents the input for a full tree fetch.
type FetchTreeInput struct {
	Owner string
}

// FetchTreeOutput represents the output of a full tree fetch.
type FetchTreeOutput struct {
	Groups []*entity.Group
}

// FetchTreeUseCase reconstructs the owner's full checklist tree.
type FetchTreeUseCase struct {
	checklistRepo adapter.ChecklistRepository
}

// NewFetchTreeUseCase creates a new FetchTreeUseCase instance.
func NewFetchTreeUseCase(checklistRepo adapter.ChecklistRepository) *FetchTreeUseCase {
	return &FetchTreeUseCase{
		checklistRepo: checklistRepo,
	}
}

// Execute performs the fetch. An unknown owner yields an empty tree.
func (uc *FetchTreeUseCase) Execute(ctx context.Context, input FetchTreeInput) (*FetchTreeOutput, error) {
	groups, err := uc.checklistRepo.FetchTree(ctx, normalizeOwner(input.Owner))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tree: %w", err)
	}

	return &FetchTreeOutput{Groups: groups}, nil
}

// normalizeOwner lowercases and trims an owner identifier, mirroring the
// username normalization on the auth side.
func normalizeOwner(owner string) string {
	return strings.ToLower(strings.TrimSpace(owner))
}
