package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

const (
	defaultTitle      = "Rental contract"
	noServicesText    = "Not specified."
	noRulesText       = "No additional rules have been defined."
	noConditionsText  = "No additional conditions."
	signatureLine     = "______________________________"
	ownerSignature    = "Owner / Representative"
	studentSignature  = "Student"
	documentCreator   = "SMC-RentalService"
	lineHeight        = 6.0
	headingHeight     = 8.0
	titleHeight       = 12.0
	pageMarginMM      = 20.0
	bodyFontSize      = 11.0
	headingFontSize   = 13.0
	titleFontSize     = 18.0
	bodyFontFamily    = "Helvetica"
	sectionSpacing    = 5.0
	subsectionSpacing = 2.0
	signatureSpacing  = 8.0
)

// Options настройки отрисовки документа
type Options struct {
	// Currency префикс денежных сумм, например "S/"
	Currency string
	// Compress сжимает потоки страниц PDF
	Compress bool
}

// PDFRenderer отрисовывает условия договора в PDF документ формата A4
type PDFRenderer struct {
	opts Options
}

// NewPDFRenderer создает новый экземпляр PDFRenderer
func NewPDFRenderer(opts Options) *PDFRenderer {
	return &PDFRenderer{opts: opts}
}

// Render строит PDF из текущего состояния условий договора
// generatedAt печатается в подвале документа ("Document generated on dd/mm/yyyy HH:MM")
func (r *PDFRenderer) Render(ctx context.Context, details *domain.ContractDetails, generatedAt time.Time) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if details == nil {
		return nil, ErrNilDetails
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.opts.Compress)
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(true, pageMarginMM)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)

	// Встроенные шрифты fpdf работают в cp1252
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := details.Title
	if title == "" {
		title = defaultTitle
	}
	pdf.SetTitle(title, true)
	pdf.SetCreator(documentCreator, true)

	pdf.AddPage()

	// Заголовок
	pdf.SetFont(bodyFontFamily, "B", titleFontSize)
	pdf.MultiCell(0, titleHeight, tr(title), "", "C", false)
	pdf.Ln(sectionSpacing)

	// Описание
	pdf.SetFont(bodyFontFamily, "", bodyFontSize)
	r.labeled(pdf, tr, "Description:", derefOr(details.Description, ""))
	pdf.Ln(subsectionSpacing)

	// Сроки и суммы
	if !details.StartDate.IsZero() && !details.EndDate.IsZero() {
		r.labeled(pdf, tr, "Contract duration:", fmt.Sprintf("from %s to %s",
			details.StartDate.Format(domain.DocumentDateFormat),
			details.EndDate.Format(domain.DocumentDateFormat)))
	}
	r.labeled(pdf, tr, "Monthly price:", r.money(details.MonthlyPrice))
	if details.DepositAmount != nil {
		r.labeled(pdf, tr, "Deposit / guarantee:", r.money(*details.DepositAmount))
	}
	if details.PaymentDay != nil {
		r.labeled(pdf, tr, "Payment day each month:", fmt.Sprintf("%d", *details.PaymentDay))
	}
	pdf.Ln(sectionSpacing)

	r.section(pdf, tr, "INCLUDED SERVICES", derefOr(details.IncludedServices, noServicesText))
	r.section(pdf, tr, "RESIDENCE RULES", derefOr(details.Rules, noRulesText))
	r.section(pdf, tr, "ADDITIONAL CONDITIONS", derefOr(details.ExtraConditions, noConditionsText))
	pdf.Ln(signatureSpacing)

	// Подписи сторон
	for _, party := range []string{ownerSignature, studentSignature} {
		pdf.MultiCell(0, lineHeight, signatureLine, "", "L", false)
		pdf.MultiCell(0, lineHeight, party, "", "L", false)
		pdf.Ln(signatureSpacing)
	}

	pdf.SetFont(bodyFontFamily, "I", bodyFontSize-1)
	pdf.MultiCell(0, lineHeight,
		"Document generated on "+generatedAt.Format(domain.DocumentTimeFormat), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return buf.Bytes(), nil
}

// labeled печатает строку "Метка: значение" с жирной меткой
func (r *PDFRenderer) labeled(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(bodyFontFamily, "B", bodyFontSize)
	labelWidth := pdf.GetStringWidth(label + " ")
	pdf.CellFormat(labelWidth, lineHeight, label, "", 0, "L", false, 0, "")
	pdf.SetFont(bodyFontFamily, "", bodyFontSize)
	pdf.MultiCell(0, lineHeight, tr(value), "", "L", false)
}

// section печатает заголовок раздела и его текст
func (r *PDFRenderer) section(pdf *fpdf.Fpdf, tr func(string) string, heading, body string) {
	pdf.SetFont(bodyFontFamily, "B", headingFontSize)
	pdf.MultiCell(0, headingHeight, heading, "", "L", false)
	pdf.Ln(subsectionSpacing)
	pdf.SetFont(bodyFontFamily, "", bodyFontSize)
	pdf.MultiCell(0, lineHeight, tr(body), "", "L", false)
	pdf.Ln(sectionSpacing)
}

func (r *PDFRenderer) money(amount float64) string {
	if r.opts.Currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%s %.2f", r.opts.Currency, amount)
}

func derefOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
