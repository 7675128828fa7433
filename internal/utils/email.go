package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"
)

func smtpFrom() string {
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@velora.shop"
	}
	return from
}

func newSMTPClient() (*mail.Client, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}

	return mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

// SendMail livre un email via le SMTP configuré. Corps texte + HTML,
// comme attendu par le contrat du relais.
func SendMail(to, subject, text, html string) error {
	msg := mail.NewMsg()

	if err := msg.From(smtpFrom()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	if text != "" {
		msg.SetBodyString(mail.TypeTextPlain, text)
	}
	if html != "" {
		msg.AddAlternativeString(mail.TypeTextHTML, html)
	}

	client, err := newSMTPClient()
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendContactMail fait suivre un message du formulaire de contact vers la
// boîte admin, avec reply-to l'expéditeur pour pouvoir répondre directement.
func SendContactMail(name, email, subject, text, html string) error {
	inbox := os.Getenv("CONTACT_INBOX")
	if inbox == "" {
		inbox = smtpFrom()
	}

	msg := mail.NewMsg()
	if err := msg.From(smtpFrom()); err != nil {
		return err
	}
	if err := msg.To(inbox); err != nil {
		return err
	}
	if err := msg.ReplyTo(email); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, html)

	client, err := newSMTPClient()
	if err != nil {
		return err
	}

	log.Printf("📤 Message de contact relayé pour %s <%s>", name, email)
	return client.DialAndSend(msg)
}
