package mailer

import (
	"log"

	"presensi-magang-backend/config"

	"gopkg.in/gomail.v2"
)

// Mailer membungkus koneksi SMTP untuk notifikasi email. Pengiriman selalu
// best effort: kegagalan cukup dicatat dan tidak menggagalkan request.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewFromEnv membaca SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD, dan
// SMTP_FROM. Tanpa SMTP_HOST mailer berjalan dalam mode nonaktif.
func NewFromEnv() *Mailer {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		log.Println("[MAILER] SMTP_HOST kosong, notifikasi email nonaktif")
		return &Mailer{}
	}

	port := config.GetEnvAsInt("SMTP_PORT", 587)
	user := config.GetEnv("SMTP_USER", "")
	pass := config.GetEnv("SMTP_PASSWORD", "")

	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   config.GetEnv("SMTP_FROM", user),
	}
}

// Enabled melaporkan apakah mailer siap mengirim.
func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

// Send mengirim satu email HTML ke satu penerima.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
