// Package report renders filtered audit record sets as tabular PDF
// documents for export.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/catastro/minero-backend/models"
	"github.com/catastro/minero-backend/structval"
)

var columnHeaders = []string{"ID", "Fecha", "Acción", "Entidad", "Usuario", "Detalle"}
var columnWidths = []float64{12, 30, 24, 32, 32, 60}

const (
	lineHeight = 4.0
	pageBottom = 282.0
)

// RenderAuditoriasPDF produces the audit report: a title, a summary line of
// the active filters and the total count, then one table row per record with
// the flattened description in the detail column.
func RenderAuditoriasPDF(items []models.Auditoria, filter models.AuditoriaFilter) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(false, 12)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("Reporte de Auditorías"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 4.5, tr(buildResumen(len(items), filter)), "", "L", false)
	pdf.Ln(3)

	drawHeader(pdf, tr)

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range items {
		drawRow(pdf, tr, item)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// buildResumen produces the human-readable summary line under the title.
func buildResumen(total int, filter models.AuditoriaFilter) string {
	resumen := fmt.Sprintf("Total de registros: %d", total)
	if !filter.Active() {
		return resumen
	}

	var parts []string
	if usuario := normalize(filter.Usuario); usuario != "" {
		parts = append(parts, "Usuario: "+usuario)
	}
	if len(filter.Entidades) > 0 {
		parts = append(parts, "Entidades: "+strings.ToLower(strings.Join(filter.Entidades, ", ")))
	}
	if len(filter.Acciones) > 0 {
		parts = append(parts, "Acciones: "+strings.ToLower(strings.Join(filter.Acciones, ", ")))
	}
	if idTransaccion := normalize(filter.IDTransaccion); idTransaccion != "" {
		parts = append(parts, "ID Transacción: "+idTransaccion)
	}
	if filter.FechaDesde != nil {
		parts = append(parts, "Desde: "+models.FormatFecha(*filter.FechaDesde))
	}
	if filter.FechaHasta != nil {
		parts = append(parts, "Hasta: "+models.FormatFecha(*filter.FechaHasta))
	}

	if len(parts) > 0 {
		resumen += " | Filtros: " + strings.Join(parts, " - ")
	}
	return resumen
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func drawHeader(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(65, 103, 89)
	pdf.SetTextColor(255, 255, 255)

	for i, header := range columnHeaders {
		pdf.CellFormat(columnWidths[i], 6, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 8)
}

func drawRow(pdf *fpdf.Fpdf, tr func(string) string, item models.Auditoria) {
	cells := []string{
		strconv.FormatInt(item.ID, 10),
		formatFecha(item),
		item.Accion,
		item.Entidad,
		usuarioLabel(item),
		DetalleText(item.Descripcion),
	}

	// Row height follows the tallest wrapped cell
	maxLines := 1
	for i, cell := range cells {
		lines := pdf.SplitText(tr(cell), columnWidths[i]-1)
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	rowHeight := float64(maxLines) * lineHeight

	if pdf.GetY()+rowHeight > pageBottom {
		pdf.AddPage()
		drawHeader(pdf, tr)
	}

	x := 10.0
	y := pdf.GetY()
	for i, cell := range cells {
		pdf.Rect(x, y, columnWidths[i], rowHeight, "D")
		pdf.SetXY(x+0.5, y)
		pdf.MultiCell(columnWidths[i]-1, lineHeight, tr(cell), "", "L", false)
		x += columnWidths[i]
	}
	pdf.SetXY(10, y+rowHeight)
}

func formatFecha(item models.Auditoria) string {
	if item.AudFecha.IsZero() {
		return ""
	}
	return models.FormatFechaHora(item.AudFecha)
}

// usuarioLabel prefers the resolved display name, then the raw actor id,
// then blank for an unresolved actor.
func usuarioLabel(item models.Auditoria) string {
	if item.UsuarioNombre != nil && *item.UsuarioNombre != "" {
		return *item.UsuarioNombre
	}
	if item.AudUsuario != 0 {
		return strconv.FormatInt(item.AudUsuario, 10)
	}
	return ""
}

// DetalleText flattens a description payload into "label: value" lines for
// the detail column. Unparseable descriptions render verbatim and an empty
// one renders a placeholder.
func DetalleText(descripcion string) string {
	if descripcion == "" {
		return "Sin detalle disponible"
	}

	v, ok := structval.Parse(descripcion)
	if !ok {
		return descripcion
	}

	entries := structval.Flatten(v, "")
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = entry.Label + ": " + entry.Value
	}
	return strings.Join(parts, "\n")
}
