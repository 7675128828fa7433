package utils

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/skip2/go-qrcode"

	"velora_back_end/internal/models"
	"velora_back_end/internal/pricing"
)

func frontendBaseURL() string {
	base := os.Getenv("FRONTEND_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return base
}

// GenerateTrackingQR encode l'URL de suivi de commande en QR base64, prêt
// à être inliné dans un <img src="data:image/png;base64,...">.
func GenerateTrackingQR(orderID string) (string, error) {
	url := fmt.Sprintf("%s/#/track-order?id=%s", frontendBaseURL(), orderID)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande :
// récapitulatif des lignes, totaux, et QR de suivi.
func GenerateOrderConfirmationHTML(order models.Order, totals pricing.Totals) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 10px; border-bottom: 1px solid #eee;">
					<img src="%s" alt="%s" width="50" height="50" style="border-radius: 4px; object-fit: cover;">
				</td>
				<td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 10px; border-bottom: 1px solid #eee;">x%d</td>
				<td style="padding: 10px; border-bottom: 1px solid #eee;">$%.2f</td>
			</tr>`, item.Image, item.Name, item.Name, item.Quantity, item.Price)
	}

	qrHTML := ""
	if qr, err := GenerateTrackingQR(order.ID); err == nil {
		qrHTML = fmt.Sprintf(`
				<div style="margin-top: 20px; text-align: center;">
					<p style="color: #555;">Scannez pour suivre votre commande :</p>
					<img src="data:image/png;base64,%s" alt="QR de suivi" width="128" height="128">
				</div>`, qr)
	}

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h1 style="color: #333;">Order Confirmed!</h1>
	<p>Thank you for your order. Here are the details:</p>

	<div style="background: #f9f9f9; padding: 15px; border-radius: 8px; margin-bottom: 20px;">
		<p><strong>Order ID:</strong> %s</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Status:</strong> %s</p>
	</div>

	<h3>Items Ordered</h3>
	<table style="width: 100%%; border-collapse: collapse;">
		<thead>
			<tr style="background: #eee;">
				<th style="padding: 10px; text-align: left;">Image</th>
				<th style="padding: 10px; text-align: left;">Product</th>
				<th style="padding: 10px; text-align: left;">Qty</th>
				<th style="padding: 10px; text-align: left;">Price</th>
			</tr>
		</thead>
		<tbody>
			%s
		</tbody>
	</table>

	<div style="margin-top: 20px; text-align: right;">
		<p>Subtotal: $%.2f</p>
		<p>Shipping: $%.2f</p>
		<p>Tax: $%.2f</p>
		<h3 style="color: #2563eb;">Total: $%.2f</h3>
	</div>

	<div style="margin-top: 30px; text-align: center;">
		<a href="%s/#/track-order?id=%s" style="background: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Track Your Order</a>
	</div>
	%s
</div>`,
		order.ID, order.Date.Format("01/02/2006"), order.Status,
		itemsHTML,
		totals.Subtotal, totals.Shipping, totals.Tax, totals.Total,
		frontendBaseURL(), order.ID, qrHTML)
}

// GenerateOrderConfirmationText est le fallback texte du même email.
func GenerateOrderConfirmationText(order models.Order) string {
	return fmt.Sprintf("Order Confirmed! Order ID: %s. Total: $%.2f. Check your email for details.",
		order.ID, order.Total)
}

// GenerateContactHTML met en forme un message du formulaire de contact.
func GenerateContactHTML(name, email, message string) string {
	return fmt.Sprintf(`
<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<div style="background: #f5f5f5; padding: 15px; border-radius: 5px; margin-top: 10px;">
	<p><strong>Message:</strong></p>
	<p>%s</p>
</div>`, name, email, strings.ReplaceAll(message, "\n", "<br>"))
}
