package entity

import "time"

// Client representa al cliente al que se le factura.
type Client struct {
	ID        string
	UserID    string // dueño (quien factura)
	Name      string
	Email     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
