package dto

import "time"

type CreateTaskRequest struct {
	Description string `json:"description" binding:"required,min=1,max=500"`
	Completed   bool   `json:"completed"`
}

type TaskResponse struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
