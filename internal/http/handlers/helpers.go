package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidParam parses a path parameter as a uuid.
func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// workspaceIDQuery parses the required workspace_id query parameter.
func workspaceIDQuery(c *gin.Context) (uuid.UUID, error) {
	raw := c.Query("workspace_id")
	if raw == "" {
		return uuid.Nil, fmt.Errorf("workspace_id query parameter required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid workspace_id")
	}
	return id, nil
}
