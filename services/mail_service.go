package services

import (
	"fmt"
	"net/smtp"
	"time"

	"roomstay/config"
	"roomstay/constants"
)

// MailService gửi email xác nhận đặt phòng qua SMTP
type MailService struct{}

func NewMailService() *MailService {
	return &MailService{}
}

// SendReservationEmail gửi email xác nhận sau khi đặt phòng thành công
func (s *MailService) SendReservationEmail(to, guestName, reference string, totalPrice float64, checkIn, checkOut time.Time) error {
	from := config.GetEnv("SMTP_FROM")
	password := config.GetEnv("SMTP_PASSWORD")

	host := "smtp.gmail.com"
	port := "587"
	recipients := []string{to}
	subject := "Subject: Xác nhận đặt phòng " + reference + "\n"
	body := fmt.Sprintf(`
		<!DOCTYPE html>
		<html>
		<head>
			<meta charset="UTF-8">
			<title>Xác nhận đặt phòng</title>
		</head>
		<body>
			<p>Xin chào %s,</p>
			<p>Chúng tôi đã nhận đặt phòng của bạn.</p>
			<p>Mã đặt phòng: <strong>%s</strong></p>
			<p>Nhận phòng: <strong>%s</strong></p>
			<p>Trả phòng: <strong>%s</strong></p>
			<p>Tổng tiền: <strong>%.0f</strong></p>
			<p>Vui lòng giữ mã đặt phòng để tra cứu hoặc hủy đơn.</p>
			<p>Xin cám ơn,<br>Nhóm đặt phòng</p>
		</body>
		</html>
	`, guestName, reference, checkIn.Format(constants.DateLayout), checkOut.Format(constants.DateLayout), totalPrice)

	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" + subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, host)

	return smtp.SendMail(host+":"+port, auth, from, recipients, msg)
}
