package report

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// QRCode encodes content as a size x size PNG.
func QRCode(content string, size int) ([]byte, error) {
	b, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}
	return b, nil
}

type Badge struct {
	ID         string
	Name       string
	Role       string
	Department string
}

const (
	badgeCols   = 2
	badgeRows   = 4
	badgeWidth  = 90.0
	badgeHeight = 60.0
	badgeMargin = 10.0
	badgeQRmm   = 36.0
	badgeQRpx   = 288
)

// BadgeSheet lays badges out on A4 pages, eight per page, each with the
// holder's name, role, department and a QR code of their id.
func BadgeSheet(badges []Badge) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 11)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	perPage := badgeCols * badgeRows
	if len(badges) == 0 {
		pdf.AddPage()
	}

	for i, b := range badges {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		slot := i % perPage
		x := badgeMargin + float64(slot%badgeCols)*(badgeWidth+badgeMargin/2)
		y := badgeMargin + float64(slot/badgeCols)*(badgeHeight+badgeMargin/2)

		pdf.Rect(x, y, badgeWidth, badgeHeight, "D")

		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(x+4, y+6)
		pdf.CellFormat(badgeWidth-badgeQRmm-10, 6, tr(b.Name), "", 2, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(badgeWidth-badgeQRmm-10, 6, tr(b.ID), "", 2, "L", false, 0, "")
		pdf.CellFormat(badgeWidth-badgeQRmm-10, 6, tr(b.Role), "", 2, "L", false, 0, "")
		if b.Department != "" {
			pdf.MultiCell(badgeWidth-badgeQRmm-10, 5, tr(b.Department), "", "L", false)
		}

		qr, err := scaledQR(b.ID, badgeQRpx)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("qr-%d", i)
		opt := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(qr))
		pdf.ImageOptions(name, x+badgeWidth-badgeQRmm-4, y+(badgeHeight-badgeQRmm)/2, badgeQRmm, badgeQRmm, false, opt, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "building badge sheet")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing badge sheet")
	}
	return buf.Bytes(), nil
}

// scaledQR renders content at one pixel per module and scales it to px with
// nearest neighbour so module edges stay sharp whatever the QR version.
func scaledQR(content string, px int) ([]byte, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr code")
	}
	src := q.Image(-1)

	dst := image.NewRGBA(image.Rect(0, 0, px, px))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err = png.Encode(&buf, dst); err != nil {
		return nil, errors.Wrap(err, "encoding png")
	}
	return buf.Bytes(), nil
}
