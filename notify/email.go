package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends notifications over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, user, pass, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

func (m *Mailer) send(to, from, subject, body string) error {
	if from == "" {
		from = m.from
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	// Replies go to the hotel when the notification is sent on its behalf
	if from != m.from {
		msg.SetHeader("Reply-To", from)
	}
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) OrderConfirmation(to string, info OrderInfo, fromAddr string) error {
	subject := fmt.Sprintf("Order %s confirmed - FoodieGo", info.OrderNumber)
	body := fmt.Sprintf(
		`<h2>Thanks for your order, %s!</h2>
<p>%s received your order <b>%s</b>.</p>
<p>Total: <b>%.2f ETB</b></p>
<p>Delivery to: %s</p>`,
		info.CustomerName, info.HotelName, info.OrderNumber, info.TotalPrice, info.Address)
	return m.send(to, fromAddr, subject, body)
}

func (m *Mailer) OrderStatusChange(to string, info OrderInfo, status string, fromAddr string) error {
	subject := fmt.Sprintf("Order %s update - FoodieGo", info.OrderNumber)
	body := fmt.Sprintf(
		`<h2>Your order is now: %s</h2>
<p>Order <b>%s</b> from %s.</p>`,
		status, info.OrderNumber, info.HotelName)
	if info.DriverName != "" {
		body += fmt.Sprintf(`<p>Driver: %s (%s)</p>`, info.DriverName, info.DriverPhone)
	}
	return m.send(to, fromAddr, subject, body)
}

func (m *Mailer) DriverAssignment(to string, info OrderInfo) error {
	subject := fmt.Sprintf("New delivery %s - FoodieGo", info.OrderNumber)
	body := fmt.Sprintf(
		`<h2>New delivery assignment</h2>
<p>Order <b>%s</b></p>
<p>Pickup: %s</p>
<p>Drop-off: %s</p>
<p>Payout total: <b>%.2f ETB</b></p>`,
		info.OrderNumber, info.PickupAddress, info.DropoffAddress, info.Payout)
	return m.send(to, "", subject, body)
}
