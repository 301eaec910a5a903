package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tempo-api/internal/domain/entity"
)

// Servicio de dominio: construcción de líneas y totales de factura.
// Toda la aritmética monetaria usa decimal de punto fijo, nunca float binario.
//
// Política de redondeo ("round-then-sum", igual que la factura impresa):
//  1. cada línea se redondea a 2 decimales (Amount = round2(Quantity × UnitRate))
//  2. el subtotal suma las líneas ya redondeadas y se redondea a 2 decimales
//  3. impuesto y total se redondean a 2 decimales de forma independiente
// Invertir el orden (sumar y luego redondear) produce totales que difieren
// en un centavo para algunas entradas; el orden es parte del contrato.

var secondsPerHour = decimal.NewFromInt(3600)

// TaskWork trabajo agregado de una tarea: suma de segundos crudos de todas
// sus entradas. Los segundos se suman ANTES de convertir a horas; redondear
// por entrada cambiaría los totales.
type TaskWork struct {
	TaskID  string
	Title   string
	Seconds int64
}

// TaskLine genera la línea de factura de una tarea: cantidad en horas
// (segundos/3600, redondeado a 2 decimales) por la tarifa horaria.
func TaskLine(w TaskWork, hourlyRate decimal.Decimal) entity.InvoiceItem {
	hours := decimal.NewFromInt(w.Seconds).Div(secondsPerHour).Round(2)
	return entity.InvoiceItem{
		Description: "work on task: " + w.Title,
		Quantity:    hours,
		UnitRate:    hourlyRate,
		Amount:      hours.Mul(hourlyRate).Round(2),
	}
}

// ExpenseLine genera la línea de factura de un gasto: cantidad 1, tarifa =
// importe del gasto.
func ExpenseLine(e *entity.Expense) entity.InvoiceItem {
	return entity.InvoiceItem{
		Description: e.Category + ": " + e.Description,
		Quantity:    decimal.NewFromInt(1),
		UnitRate:    e.Amount,
		Amount:      e.Amount.Round(2),
	}
}

// Totals calcula subtotal, impuesto y total sobre líneas ya redondeadas.
func Totals(items []entity.InvoiceItem, taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
	}
	subtotal = subtotal.Round(2)
	tax = subtotal.Mul(taxRate).Round(2)
	total = subtotal.Add(tax).Round(2)
	return subtotal, tax, total
}

// FormatNumber formatea un número de factura: <año>-<secuencia de 4 dígitos>.
func FormatNumber(year, seq int) string {
	return fmt.Sprintf("%d-%04d", year, seq)
}

// GroupByTask agrupa entradas de tiempo por tarea sumando segundos crudos.
// El orden de salida sigue el orden del slice de entrada (primera aparición
// de cada tarea), para que las líneas de la factura sean deterministas.
func GroupByTask(entries []*entity.TimeEntry) []TaskWork {
	index := make(map[string]int)
	var groups []TaskWork
	for _, e := range entries {
		i, ok := index[e.TaskID]
		if !ok {
			i = len(groups)
			index[e.TaskID] = i
			groups = append(groups, TaskWork{TaskID: e.TaskID})
		}
		groups[i].Seconds += e.DurationSeconds
	}
	return groups
}
