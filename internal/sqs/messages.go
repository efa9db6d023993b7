package sqs

// AuthEmailMessage is the payload carried on the auth-email channel.
type AuthEmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	OTP     string `json:"otp"`
}

// OrderEmailMessage is the payload carried on the order-email channel.
// The order itself is referenced by identifier only; the consumer resolves it.
type OrderEmailMessage struct {
	OrderID     string `json:"order_id"`
	To          string `json:"to"`
	Subject     string `json:"subject"`
	ConfirmLink string `json:"confirm_link"`
}
