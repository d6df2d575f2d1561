package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"aaaquest/internal/domain"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/webp"
)

const (
	pageMargin     = 15.0
	maxImageHeight = 140.0
	fontFamily     = "DejaVu"
)

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// newPDF creates a document with a UTF-8 font so names in any script survive
func newPDF(orientation string) *fpdf.Fpdf {
	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.AddUTF8FontFromBytes(fontFamily, "", fontRegular)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", fontBold)
	return pdf
}

type rgb struct{ r, g, b int }

var severityColors = map[domain.Severity]rgb{
	domain.SeverityHigh:   {220, 38, 38},
	domain.SeverityMedium: {234, 138, 0},
	domain.SeverityLow:    {37, 99, 235},
}

// embeddable returns the image in a format fpdf can embed. webp is converted to PNG.
func embeddable(mime string, data []byte) ([]byte, string, error) {
	switch mime {
	case "image/png":
		return data, "PNG", nil
	case "image/jpeg":
		return data, "JPG", nil
	case "image/webp":
		img, err := webp.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode webp: %w", err)
		}
		// Flatten onto white so the PNG has no alpha channel
		flat := image.NewRGBA(img.Bounds())
		draw.Draw(flat, flat.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)

		var buf bytes.Buffer
		if err := png.Encode(&buf, flat); err != nil {
			return nil, "", fmt.Errorf("failed to encode png: %w", err)
		}
		return buf.Bytes(), "PNG", nil
	}
	return nil, "", fmt.Errorf("unsupported image type %s", mime)
}

// CheckerPDF renders an analysis as a PDF: the screenshot with numbered boxes, then the findings
func CheckerPDF(analysis *domain.Analysis, screenshot []byte) ([]byte, error) {
	pdf := newPDF("P")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetFont(fontFamily, "B", 18)
	pdf.CellFormat(contentW, 10, "Accessibility report", "", 1, "L", false, 0, "")
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Generated %s  |  Score %d/100", analysis.CreatedAt.Format("2 Jan 2006 15:04"), analysis.Score), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(2)
	pdf.SetFont(fontFamily, "", 11)
	pdf.MultiCell(contentW, 5.5, analysis.Summary, "", "L", false)
	pdf.Ln(4)

	if len(screenshot) > 0 {
		data, kind, err := embeddable(analysis.ImageMIME, screenshot)
		if err == nil {
			drawScreenshot(pdf, analysis, data, kind, contentW)
		}
	}

	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(contentW, 8, fmt.Sprintf("Findings (%d)", len(analysis.Annotations)), "", 1, "L", false, 0, "")
	pdf.Ln(1)

	if len(analysis.Annotations) == 0 {
		pdf.SetFont(fontFamily, "", 11)
		pdf.MultiCell(contentW, 5.5, "No visible accessibility problems were found.", "", "L", false)
	}

	for i, a := range analysis.Annotations {
		c := severityColors[a.Severity]
		pdf.SetFont(fontFamily, "B", 11)
		pdf.SetTextColor(c.r, c.g, c.b)
		pdf.CellFormat(10, 6, fmt.Sprintf("%d.", i+1), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		title := a.Issue
		if a.Criterion != "" {
			title = fmt.Sprintf("%s (WCAG %s, %s)", a.Issue, a.Criterion, a.Severity)
		}
		pdf.MultiCell(contentW-10, 6, title, "", "L", false)
		pdf.SetFont(fontFamily, "", 10)
		pdf.SetX(pageMargin + 10)
		pdf.MultiCell(contentW-10, 5, a.Suggestion, "", "L", false)
		pdf.Ln(2)
	}

	return output(pdf)
}

func drawScreenshot(pdf *fpdf.Fpdf, analysis *domain.Analysis, data []byte, kind string, contentW float64) {
	opts := fpdf.ImageOptions{ImageType: kind}
	info := pdf.RegisterImageOptionsReader("screenshot", opts, bytes.NewReader(data))
	if pdf.Err() || info == nil || info.Width() == 0 {
		// Render the findings without the screenshot
		pdf.ClearError()
		return
	}

	w := contentW
	h := w * info.Height() / info.Width()
	if h > maxImageHeight {
		h = maxImageHeight
		w = h * info.Width() / info.Height()
	}

	x := pageMargin + (contentW-w)/2
	y := pdf.GetY()
	pdf.ImageOptions("screenshot", x, y, w, h, false, opts, 0, "")

	pdf.SetLineWidth(0.6)
	pdf.SetFont(fontFamily, "B", 8)
	for i, a := range analysis.Annotations {
		c := severityColors[a.Severity]
		b := a.Box.Clamp()
		bx, by := x+b.X*w, y+b.Y*h
		pdf.SetDrawColor(c.r, c.g, c.b)
		pdf.Rect(bx, by, b.Width*w, b.Height*h, "D")

		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(bx, by)
		pdf.CellFormat(5, 4, fmt.Sprint(i+1), "", 0, "C", true, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetXY(pageMargin, y+h+6)
}

// CertificatePDF renders a landscape completion certificate
func CertificatePDF(cert *domain.Certificate) ([]byte, error) {
	pdf := newPDF("L")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	pdf.SetDrawColor(30, 64, 175)
	pdf.SetLineWidth(2)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")
	pdf.SetLineWidth(0.5)
	pdf.Rect(14, 14, pageW-28, pageH-28, "D")

	pdf.SetY(45)
	pdf.SetFont(fontFamily, "B", 32)
	pdf.SetTextColor(30, 64, 175)
	pdf.CellFormat(pageW, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont(fontFamily, "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(pageW, 8, "This certifies that", "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "B", 28)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(pageW, 14, cert.FullName, "", 1, "C", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont(fontFamily, "", 14)
	pdf.SetTextColor(60, 60, 60)
	levels := domain.Levels()
	pdf.CellFormat(pageW, 8, fmt.Sprintf("has completed all %d levels of the AAA Quest accessibility course", len(levels)), "", 1, "C", false, 0, "")
	pdf.CellFormat(pageW, 8, fmt.Sprintf("covering WCAG conformance levels %s to %s.", levels[0].Code, levels[len(levels)-1].Code), "", 1, "C", false, 0, "")

	pdf.SetY(pageH - 45)
	pdf.SetFont(fontFamily, "", 11)
	pdf.CellFormat(pageW, 6, "Issued "+cert.IssuedAt.Format("2 January 2006"), "", 1, "C", false, 0, "")
	pdf.SetFont(fontFamily, "", 9)
	pdf.CellFormat(pageW, 6, "Certificate ID "+cert.ID, "", 1, "C", false, 0, "")

	return output(pdf)
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
