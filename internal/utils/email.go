package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"ndiougueshop_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func sendMail(to, subject, htmlBody string) error {
	msg := mail.NewMsg()

	if err := msg.From("noreply@ndiougueshop.com"); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendOrderConfirmationEmail envoie la confirmation de commande au client.
// Appelée en goroutine depuis le handler : un échec est loggé, jamais remonté.
func SendOrderConfirmationEmail(order models.Order, items []models.OrderItem, to string) error {
	if to == "" {
		return nil
	}

	itemsHTML := ""
	for _, item := range items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%s</td>
				<td>%s</td>
			</tr>`, item.ProductName, item.Quantity, FormatFCFA(item.Price), FormatFCFA(item.Price*int64(item.Quantity)))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2 style="color: #d4af37;">Merci pour votre commande !</h2>
	<p>Votre commande <strong>%s</strong> a bien été enregistrée.</p>
	<p>Méthode de paiement : <strong>%s</strong></p>
	<table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse;">
		<tr><th>Article</th><th>Quantité</th><th>Prix unitaire</th><th>Total</th></tr>
		%s
	</table>
	<p style="font-size: 16px;"><strong>TOTAL : %s</strong></p>
	<p>NdiougueShop - Votre boutique sénégalaise de confiance</p>
</body>
</html>`, order.ID.String(), models.PaymentMethodLabel(order.PaymentMethod), itemsHTML, FormatFCFA(order.Total))

	return sendMail(to, "Confirmation de votre commande NdiougueShop", body)
}
