package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type HealthChecker struct {
	client *Client
}

func NewHealthChecker(client *Client) *HealthChecker {
	return &HealthChecker{
		client: client,
	}
}

func (h *HealthChecker) Check(ctx context.Context) error {
	res, err := h.client.client.Ping(
		h.client.client.Ping.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to ping opensearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch ping failed with status: %s", res.Status())
	}

	return nil
}

func (h *HealthChecker) WaitForHealthy(ctx context.Context, maxRetries int, retryInterval time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled while waiting for OpenSearch: %w", ctx.Err())
		default:
		}

		if err := h.Check(ctx); err == nil {
			return nil
		}

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	return fmt.Errorf("opensearch not healthy after %d retries", maxRetries)
}

// InstanceInfo - ответ корневого эндпоинта OpenSearch
type InstanceInfo struct {
	ClusterName string `json:"cluster_name"`
	Version     struct {
		Number string `json:"number"`
	} `json:"version"`
}

// Info запрашивает корневой эндпоинт кластера (версия и имя кластера)
func (h *HealthChecker) Info(ctx context.Context) (*InstanceInfo, error) {
	res, err := h.client.client.Info(
		h.client.client.Info.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get opensearch info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("opensearch info request failed: %s", res.Status())
	}

	var info InstanceInfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode info response: %w", err)
	}

	return &info, nil
}
