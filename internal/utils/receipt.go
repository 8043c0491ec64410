package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"strings"

	"ndiougueshop_back_end/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

// FormatFCFA formate un montant entier à la française : 33500 → "33 500 FCFA"
func FormatFCFA(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(' ')
		}
		b.WriteRune(d)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return out + " FCFA"
}

// VerifyBaseURL retourne la base des URLs de vérification encodées dans les QR codes.
func VerifyBaseURL() string {
	u := os.Getenv("VERIFY_BASE_URL")
	if u == "" {
		return "https://ndiougueshop.com"
	}
	return u
}

// GenerateVerificationQR encode l'URL de vérification d'une commande en QR code,
// retourné en base64 prêt à mettre dans <img src="...">
func GenerateVerificationQR(orderID string) (string, error) {
	qrData := fmt.Sprintf("%s/verify-order/%s", VerifyBaseURL(), orderID)
	png, err := qrcode.Encode(qrData, qrcode.Medium, 150)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

type receiptLine struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type receiptData struct {
	OrderID      string
	Date         string
	CustomerName string
	PaymentLabel string
	StatusLabel  string
	Lines        []receiptLine
	Total        string
	QRCode       template.URL
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Reçu de commande - NdiougueShop</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; background: #fff; }
        .receipt { max-width: 600px; margin: 0 auto; border: 2px solid #eee; padding: 30px; }
        .header { text-align: center; border-bottom: 2px solid #333; padding-bottom: 20px; margin-bottom: 30px; }
        .logo { font-size: 28px; font-weight: bold; color: #d4af37; margin-bottom: 10px; }
        .company-info { color: #666; font-size: 14px; }
        .order-info { margin-bottom: 30px; }
        .info-row { display: flex; justify-content: space-between; margin-bottom: 10px; }
        .info-label { font-weight: bold; }
        .items-table { width: 100%; border-collapse: collapse; margin-bottom: 30px; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px; text-align: left; }
        .items-table th { background: #f5f5f5; font-weight: bold; }
        .total-section { border-top: 2px solid #333; padding-top: 20px; }
        .total-row { display: flex; justify-content: space-between; margin-bottom: 10px; }
        .total-final { font-size: 18px; font-weight: bold; color: #d4af37; }
        .qr-section { text-align: center; margin-top: 30px; border-top: 1px solid #eee; padding-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="receipt">
        <div class="header">
            <div class="logo">NdiougueShop</div>
            <div class="company-info">
                Keur Massar, Dakar - Sénégal<br>
                Tél: +221 77 857 72 06<br>
                Email: contact@ndiougueshop.com
            </div>
        </div>

        <div class="order-info">
            <div class="info-row">
                <span class="info-label">N° de commande:</span>
                <span>{{.OrderID}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Date:</span>
                <span>{{.Date}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Client:</span>
                <span>{{.CustomerName}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Méthode de paiement:</span>
                <span>{{.PaymentLabel}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Statut:</span>
                <span>{{.StatusLabel}}</span>
            </div>
        </div>

        <table class="items-table">
            <thead>
                <tr>
                    <th>Article</th>
                    <th>Quantité</th>
                    <th>Prix unitaire</th>
                    <th>Total</th>
                </tr>
            </thead>
            <tbody>
                {{range .Lines}}
                <tr>
                    <td>{{.Name}}</td>
                    <td>{{.Quantity}}</td>
                    <td>{{.UnitPrice}}</td>
                    <td>{{.LineTotal}}</td>
                </tr>
                {{end}}
            </tbody>
        </table>

        <div class="total-section">
            <div class="total-row total-final">
                <span>TOTAL:</span>
                <span>{{.Total}}</span>
            </div>
        </div>

        <div class="qr-section">
            <p><strong>Code QR de vérification:</strong></p>
            <img src="{{.QRCode}}" alt="QR Code" />
            <p style="font-size: 12px; color: #666;">Scannez ce code pour vérifier l'authenticité de ce reçu</p>
        </div>

        <div class="footer">
            <p>Merci de votre confiance !</p>
            <p>NdiougueShop - Votre boutique sénégalaise de confiance</p>
        </div>
    </div>
</body>
</html>`))

// RenderReceiptHTML génère le reçu HTML français d'une commande.
// Pure et déterministe : mêmes entrées, même document.
func RenderReceiptHTML(order models.Order, items []models.OrderItem, profile models.Profile) (string, error) {
	qr, err := GenerateVerificationQR(order.ID.String())
	if err != nil {
		return "", fmt.Errorf("génération QR impossible: %v", err)
	}

	customer := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	if customer == "" {
		customer = strings.TrimSpace(order.ShippingAddress.FirstName + " " + order.ShippingAddress.LastName)
	}

	data := receiptData{
		OrderID:      order.ID.String(),
		Date:         order.CreatedAt.Format("02/01/2006"),
		CustomerName: customer,
		PaymentLabel: models.PaymentMethodLabel(order.PaymentMethod),
		StatusLabel:  models.OrderStatusLabel(order.Status),
		Total:        FormatFCFA(order.Total),
		QRCode:       template.URL(qr),
	}

	for _, item := range items {
		data.Lines = append(data.Lines, receiptLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: FormatFCFA(item.Price),
			LineTotal: FormatFCFA(item.Price * int64(item.Quantity)),
		})
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
