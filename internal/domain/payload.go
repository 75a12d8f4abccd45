package domain

// BookingPayload is the payment-initiation request built from a validated checkout.
type BookingPayload struct {
	// TotalAmount is a decimal string with two fraction digits
	TotalAmount string `json:"total_amount"`

	Currency     string      `json:"currency"`
	OfferID      string      `json:"offer_id"`
	PassengerIDs []string    `json:"passenger_ids"`
	Passengers   []Passenger `json:"passengers"`

	// Primary contact, always taken from passenger 0
	CustomerName  string `json:"cus_name"`
	CustomerEmail string `json:"email"`
	CustomerPhone string `json:"cus_phone"`

	// Fixed billing placeholders
	CustomerAddress  string `json:"cus_add1"`
	CustomerCity     string `json:"cus_city"`
	CustomerPostcode string `json:"cus_postcode"`
	CustomerCountry  string `json:"cus_country"`
}

// BillingAddress holds the placeholder billing fields sent with every payment.
type BillingAddress struct {
	Address  string
	City     string
	Postcode string
	Country  string
}

// PaymentInitiation is the payment backend's answer to a booking payload.
type PaymentInitiation struct {
	Status     string `json:"status"`
	GatewayURL string `json:"gateway_url"`
	Message    string `json:"message,omitempty"`
}

// PaymentStatusSuccess is the status the payment backend reports on success.
const PaymentStatusSuccess = "success"

// Succeeded reports whether the backend accepted the payment request.
func (p PaymentInitiation) Succeeded() bool {
	return p.Status == PaymentStatusSuccess
}
