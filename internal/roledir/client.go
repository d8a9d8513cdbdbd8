package roledir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-service/internal/config"
	"github.com/spec-kit/staff-service/internal/domain"
)

// ErrRoleNotFound signals that the directory has no record of the role.
var ErrRoleNotFound = errors.New("role not found")

// Directory exposes role lookups against the external role service.
type Directory interface {
	FetchRole(ctx context.Context, roleID string) (*domain.RoleInfo, error)
}

// Client is the HTTP implementation of Directory.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates a role directory client.
func NewClient(cfg config.RoleDirectoryConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout()).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(1*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// FetchRole retrieves a role's display name and staff-count limit.
// An unknown role (missing record or empty body) yields ErrRoleNotFound.
func (c *Client) FetchRole(ctx context.Context, roleID string) (*domain.RoleInfo, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get("/api/role/" + roleID)
	if err != nil {
		c.logger.Error("role directory call failed",
			zap.String("role_id", roleID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to call role directory: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrRoleNotFound
	}
	if resp.IsError() {
		return nil, fmt.Errorf("role directory returned status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) == 0 || string(body) == "null" {
		return nil, ErrRoleNotFound
	}

	var role domain.RoleInfo
	if err := json.Unmarshal(body, &role); err != nil {
		return nil, fmt.Errorf("failed to unmarshal role record: %w", err)
	}
	if role.ID == "" {
		return nil, ErrRoleNotFound
	}
	return &role, nil
}
