package entity

// InvoiceCounter última secuencia emitida por año. Existe solo para hacer
// atómica la asignación de números; lo posee en exclusiva el asignador.
type InvoiceCounter struct {
	Year    int
	LastSeq int
}
