package client

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avolkov/tinycrm/internal/client"
)

type tagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type clientResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Notes        string          `json:"notes"`
	Status       client.Status   `json:"status"`
	Birthday     *string         `json:"birthday"`
	Tags         []tagResponse   `json:"tags"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func toResponse(c *client.Client) clientResponse {
	resp := clientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Notes:        c.Notes,
		Status:       c.Status,
		Tags:         make([]tagResponse, 0, len(c.Tags)),
		TotalIncome:  c.TotalIncome,
		TotalExpense: c.TotalExpense,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}

	if c.Birthday != nil {
		birthday := c.Birthday.Format(time.DateOnly)
		resp.Birthday = &birthday
	}

	for _, t := range c.Tags {
		resp.Tags = append(resp.Tags, tagResponse{ID: t.ID, Name: t.Name})
	}

	return resp
}

func toResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		resp = append(resp, toResponse(c))
	}

	return resp
}
