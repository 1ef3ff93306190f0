package products

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"strconv"
	"strings"
	"time"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/jung-kurt/gofpdf"

	"opname/models"
)

// renderProductLabelPDF builds a single-page A4 shelf label with the
// product code as a Code 128 barcode.
func renderProductLabelPDF(product models.Product) ([]byte, error) {
	barcodePNG, err := renderCode128PNG(product.Code, 1200, 260)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Product Label", false)
	pdf.AddPage()

	name := strings.TrimSpace(product.Name)
	if name == "" {
		name = "Unnamed Product"
	}
	category := strings.TrimSpace(product.Category)
	if category == "" {
		category = "-"
	}

	pdf.SetFont("Helvetica", "B", 44)
	pdf.CellFormat(0, 20, name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 9, "Category: "+category, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 9, "Initial stock: "+strconv.FormatInt(product.InitialBalance, 10), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 9, "Printed: "+time.Now().Format("02/01/2006"), "", 1, "C", false, 0, "")

	opt := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	imageName := "product-barcode-" + product.Code
	pdf.RegisterImageOptionsReader(imageName, opt, bytes.NewReader(barcodePNG))
	pageW, _ := pdf.GetPageSize()
	imgW := 240.0
	imgH := 56.0
	x := (pageW - imgW) / 2
	y := 100.0
	pdf.ImageOptions(imageName, x, y, imgW, imgH, false, opt, 0, "")

	pdf.SetY(y + imgH + 6)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, product.Code, "", 1, "C", false, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func renderCode128PNG(value string, width, height int) ([]byte, error) {
	code, err := code128.Encode(value)
	if err != nil {
		return nil, err
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}
	normalized := toNRGBA(scaled)
	var barcodePNG bytes.Buffer
	if err := png.Encode(&barcodePNG, normalized); err != nil {
		return nil, err
	}
	return barcodePNG.Bytes(), nil
}

// gofpdf reads PNG palettes strictly, so barcode images are normalized to
// NRGBA before embedding.
func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)
	return dst
}
