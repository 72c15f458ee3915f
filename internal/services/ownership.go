package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

// ownedWorkspace loads a workspace and verifies the caller owns it.
// Unknown workspaces and workspaces belonging to another user both
// surface errors the HTTP layer maps directly.
func ownedWorkspace(ctx context.Context, wsRepo repos.WorkspaceRepo, wsID uuid.UUID) (*types.Workspace, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized(fmt.Errorf("not logged in"))
	}
	ws, err := wsRepo.GetByID(ctx, nil, wsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("workspace %s not found", wsID))
		}
		return nil, fmt.Errorf("lookup workspace: %w", err)
	}
	if ws.UserID != rd.UserID {
		return nil, apierr.Forbidden(fmt.Errorf("workspace %s does not belong to caller", wsID))
	}
	return ws, nil
}
