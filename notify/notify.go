package notify

import "log"

// OrderInfo is the template data passed with every order notification.
type OrderInfo struct {
	OrderNumber    string
	CustomerName   string
	HotelName      string
	TotalPrice     float64
	Address        string
	DriverName     string
	DriverPhone    string
	PickupAddress  string
	DropoffAddress string
	Payout         float64
}

// Notifier sends outbound notifications. Every call is best-effort: the
// order flow never fails because a notification did.
type Notifier interface {
	// OrderConfirmation tells the customer their order was received.
	// fromAddr, when non-empty, attributes the message to the hotel.
	OrderConfirmation(to string, info OrderInfo, fromAddr string) error
	// OrderStatusChange tells the customer the order moved to status.
	OrderStatusChange(to string, info OrderInfo, status string, fromAddr string) error
	// DriverAssignment tells the driver about a new assignment.
	DriverAssignment(to string, info OrderInfo) error
}

// Async fires fn in a goroutine and only logs a failure. Used for every
// notification so user-facing responses never block on SMTP.
func Async(kind string, fn func() error) {
	go func() {
		if err := fn(); err != nil {
			log.Printf("notify: %s failed: %v", kind, err)
		}
	}()
}

// Noop discards all notifications. Used in tests and when SMTP is not
// configured.
type Noop struct{}

func (Noop) OrderConfirmation(string, OrderInfo, string) error         { return nil }
func (Noop) OrderStatusChange(string, OrderInfo, string, string) error { return nil }
func (Noop) DriverAssignment(string, OrderInfo) error                  { return nil }
