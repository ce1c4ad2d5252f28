// Package receipts renders deposit receipts as PDF files.
package receipts

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ahorros.backend/internal/domain/entities"
	"github.com/go-pdf/fpdf"
)

const (
	title    = "SISTEMA DE AHORROS ENERGY"
	subtitle = "RECIBO DE DEPÓSITO"
	footer   = "Este es un recibo automático generado por el sistema de ahorros ENERGY. Por favor conserve este comprobante."
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var (
	mkdirAll   = os.MkdirAll
	createFile = func(name string) (io.WriteCloser, error) { return os.Create(name) }
)

// PDFRenderer writes receipts under dir and serves them from baseURL+publicPath
type PDFRenderer struct {
	dir        string
	baseURL    string
	publicPath string
	now        func() time.Time
}

// NewPDFRenderer creates a renderer
func NewPDFRenderer(dir, baseURL, publicPath string) *PDFRenderer {
	return &PDFRenderer{
		dir:        dir,
		baseURL:    strings.TrimRight(baseURL, "/"),
		publicPath: "/" + strings.Trim(publicPath, "/"),
		now:        time.Now,
	}
}

// Render writes recibo_<deposit>_<unix millis>.pdf and returns where it can be fetched
func (r *PDFRenderer) Render(ctx context.Context, data entities.ReceiptData) (*entities.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := mkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipts dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s_%d.pdf", data.DepositID, r.now().UnixMilli())
	filePath := filepath.Join(r.dir, fileName)

	f, err := createFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create receipt file: %w", err)
	}
	if err := r.Write(f, data); err != nil {
		_ = f.Close()
		_ = os.Remove(filePath)
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close receipt file: %w", err)
	}

	return &entities.Receipt{
		FileName: fileName,
		FilePath: filePath,
		URL:      r.baseURL + r.publicPath + "/" + fileName,
	}, nil
}

// Write renders the receipt PDF into w
func (r *PDFRenderer) Write(w io.Writer, data entities.ReceiptData) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(false, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	contentW := pageW - 36

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(contentW, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, tr(subtitle), "", 1, "C", false, 0, "")
	pdf.SetTextColor(102, 102, 102)
	pdf.SetFontSize(9)
	pdf.CellFormat(contentW, 5, tr("Plan de Ahorro Comunitario"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	section := func(name string) {
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(name), "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	row := func(label, value string, bold bool) {
		pdf.SetTextColor(51, 51, 51)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(50, 6, tr(label), "", 0, "L", false, 0, "")
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW-50, 6, tr(value), "", 1, "L", false, 0, "")
	}
	divider := func() {
		pdf.Ln(2)
		pdf.SetDrawColor(238, 238, 238)
		pdf.Line(18, pdf.GetY(), pageW-18, pdf.GetY())
		pdf.Ln(4)
	}

	section("INFORMACIÓN DEL RECIBO")
	row("ID Recibo:", ShortID(data.DepositID.String()), false)
	row("Fecha:", FormatDate(data.RecordedAt), false)
	if data.EventName != "" {
		row("Evento:", data.EventName, false)
	}
	divider()

	section("INFORMACIÓN DEL PARTICIPANTE")
	row("Nombre:", data.UserName, false)
	row("Teléfono:", data.UserPhone, false)
	row("Plan:", data.PlanType, false)
	row("Rol:", string(data.UserRole), false)
	divider()

	section("DETALLE DEL DEPÓSITO")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW-50, 6, "Concepto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(50, 6, "Monto", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW-50, 7, tr("Depósito Registrado"), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(45, 80, 22)
	pdf.CellFormat(50, 7, FormatAmount(data.Amount.StringFixed(2)), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	section("RESUMEN DE AHORRO")
	row("Monto de este Depósito:", FormatAmount(data.Amount.StringFixed(2)), true)
	row("Total Ahorrado:", FormatAmount(data.TotalSaved.StringFixed(2)), true)
	pdf.Ln(4)

	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, tr("Registrado por: "+data.RecordedBy), "", 1, "L", false, 0, "")

	bottom := pageH - 30
	pdf.SetDrawColor(204, 204, 204)
	pdf.Line(18, bottom-4, pageW-18, bottom-4)
	pdf.SetY(bottom)
	pdf.SetTextColor(153, 153, 153)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(contentW, 4, tr(footer), "", "C", false)
	pdf.CellFormat(contentW, 4, tr("Generado el: "+FormatDate(r.now())), "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}
	return nil
}

// ShortID is the last eight characters of id, upper-cased
func ShortID(id string) string {
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// FormatAmount renders a fixed-point amount in bolivianos
func FormatAmount(fixed string) string {
	return "Bs. " + fixed
}

// FormatDate renders t as "2 de marzo de 2026, 14:05"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d, %02d:%02d", t.Day(), spanishMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
