// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/dowry-planner/backend/internal/application/usecase/checklist"
	"github.com/dowry-planner/backend/internal/domain/entity"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/dto"
)

// SyncController streams live tree updates over server-sent events. It only
// works when the configured backend supports subscriptions; otherwise the
// subscribe use case reports the capability gap and the stream never opens.
type SyncController struct {
	subscribeUseCase *checklist.SubscribeTreeUseCase
}

// NewSyncController creates a new sync controller instance.
func NewSyncController(subscribeUseCase *checklist.SubscribeTreeUseCase) *SyncController {
	return &SyncController{
		subscribeUseCase: subscribeUseCase,
	}
}

// StreamTree handles GET /checklist/stream requests. Each event carries a
// full tree snapshot; the first one arrives right after the stream opens.
func (c *SyncController) StreamTree(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}

	// Single-slot channel: a slow client gets the latest snapshot, not a
	// backlog of stale ones.
	updates := make(chan dto.TreeResponse, 1)
	output, err := c.subscribeUseCase.Execute(ctx.Request.Context(), checklist.SubscribeTreeInput{
		Owner: owner,
		OnUpdate: func(groups []*entity.Group) {
			frame := dto.ToTreeResponse(groups)
			for {
				select {
				case updates <- frame:
					return
				default:
					select {
					case <-updates:
					default:
					}
				}
			}
		},
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}
	defer output.Subscription.Unsubscribe()

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case frame := <-updates:
			ctx.SSEvent("tree", frame)
			return true
		}
	})
}
