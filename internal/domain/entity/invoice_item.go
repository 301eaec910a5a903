package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de una factura. Amount = Quantity × UnitRate,
// redondeado a 2 decimales y persistido de forma independiente (no se recalcula
// en lecturas).
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int // orden de la línea en la factura, desde 1
	Description string
	Quantity    decimal.Decimal // hasta 2 decimales
	UnitRate    decimal.Decimal
	Amount      decimal.Decimal
}
