package customer

import "time"

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Phone    string
	Address  string
}

type CustomerDTO struct {
	CustomerID string    `json:"customer_id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
}
