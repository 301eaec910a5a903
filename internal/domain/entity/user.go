package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles de usuario.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User representa a un trabajador que registra tiempo y emite facturas.
// HourlyRate es la tarifa usada al facturar su trabajo.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // "owner" | "admin"
	HourlyRate   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
