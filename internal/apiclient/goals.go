package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"petiscaria/internal/domain"
)

func (c *Client) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	data, err := c.send(ctx, request{method: http.MethodGet, path: "goals"})
	if err != nil {
		return nil, err
	}

	page, err := DecodeList[domain.Goal](data)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return page.Results, nil
}

func (c *Client) CreateGoal(ctx context.Context, goal domain.Goal) (*domain.Goal, error) {
	goal.ID = 0
	var created domain.Goal
	if err := c.do(ctx, request{method: http.MethodPost, path: "goals", body: goal}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateGoal(ctx context.Context, id int, goal domain.Goal) (*domain.Goal, error) {
	goal.ID = 0
	var updated domain.Goal
	if err := c.do(ctx, request{method: http.MethodPatch, path: goalPath(id), body: goal}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteGoal(ctx context.Context, id int) error {
	_, err := c.send(ctx, request{method: http.MethodDelete, path: goalPath(id)})
	return err
}

func goalPath(id int) string {
	return "goals/" + strconv.Itoa(id)
}
