// Package receipt renders order receipts as PDF with a signed QR payload for
// verification at pickup.
package receipt

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"

	"vitrina/models"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

var hmacSecret = []byte(secretFromEnv())

func secretFromEnv() string {
	if s := os.Getenv("RECEIPT_SECRET"); s != "" {
		return s
	}
	return "vitrina_receipt_secret"
}

// QRPayload returns orderID|email|timestamp|signature.
func QRPayload(order *models.Order) string {
	data := fmt.Sprintf("%s|%s|%d", order.OrderID, order.CustomerEmail, order.CreatedAt.Unix())

	h := hmac.New(sha256.New, hmacSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// Generate renders the order as a single-page PDF receipt.
func Generate(order *models.Order) ([]byte, error) {
	qrPNG, err := qrcode.Encode(QRPayload(order), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("generate QR code: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Order Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", order.CreatedAt.Format("Jan 2, 2006")))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Customer: %s %s (%s)",
		order.ShippingAddress.FirstName, order.ShippingAddress.LastName, order.CustomerEmail))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Ship to: %s, %s, %s %s",
		order.ShippingAddress.Street, order.ShippingAddress.City,
		order.ShippingAddress.State, order.ShippingAddress.ZipCode))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, "Items")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, line := range order.Items {
		pdf.Cell(0, 8, fmt.Sprintf("%s  x%d  $%.2f", line.Name, line.Quantity, line.Price))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Subtotal: $%.2f", order.Subtotal))
	pdf.Ln(6)
	if order.Shipping == 0 {
		pdf.Cell(0, 8, "Shipping: Free")
	} else {
		pdf.Cell(0, 8, fmt.Sprintf("Shipping: $%.2f", order.Shipping))
	}
	pdf.Ln(6)
	pdf.Cell(0, 8, fmt.Sprintf("Tax: $%.2f", order.Tax))
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: $%.2f %s", order.Amount, order.Currency))

	imageOpts := gofpdf.ImageOptions{
		ImageType: "PNG",
	}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 20, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
