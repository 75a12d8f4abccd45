package http

// Swagger types mirror domain types with examples for the generated API documentation.

// SwaggerSubmitResponse represents the submit API response for swagger documentation.
// @Description Payment initiation result with the payload that was sent
type SwaggerSubmitResponse struct {
	// SubmissionID identifies the attempt in the submission ledger
	SubmissionID string `json:"submission_id" example:"6f1c2a4e-7d0b-4c53-9f3e-2b8a9d1e5c70"`

	// GatewayURL is where the customer is redirected to pay
	GatewayURL string `json:"gateway_url" example:"https://sandbox.sslcommerz.com/EasyCheckOut/testcde1"`

	// Payload is the booking payload sent to the payment backend
	Payload SwaggerBookingPayload `json:"payload"`
}

// SwaggerBookingPayload represents the payment-initiation payload.
// @Description Booking payload assembled from a validated checkout
type SwaggerBookingPayload struct {
	// TotalAmount is always BDT with two fraction digits
	TotalAmount string `json:"total_amount" example:"15075.00"`

	Currency     string   `json:"currency" example:"BDT"`
	OfferID      string   `json:"offer_id" example:"off_0000AEdGRhtp5AUUdJqMxo"`
	PassengerIDs []string `json:"passenger_ids" example:"pas_0000AEdGRhtp5AUUdJqMxp"`

	Passengers []SwaggerPassenger `json:"passengers"`

	CustomerName  string `json:"cus_name" example:"Rahim Uddin"`
	CustomerEmail string `json:"email" example:"rahim@example.com"`
	CustomerPhone string `json:"cus_phone" example:"+880 1712345678"`

	CustomerAddress  string `json:"cus_add1" example:"Dhaka"`
	CustomerCity     string `json:"cus_city" example:"Dhaka"`
	CustomerPostcode string `json:"cus_postcode" example:"1000"`
	CustomerCountry  string `json:"cus_country" example:"Bangladesh"`
}

// SwaggerPassenger represents one traveler as submitted.
// @Description Traveler record with its identity document
type SwaggerPassenger struct {
	ID         string `json:"id" example:"pas_0000AEdGRhtp5AUUdJqMxp"`
	Type       string `json:"type" example:"adult" enums:"adult,child,infant"`
	Title      string `json:"title" example:"mr" enums:"mr,ms,mrs,miss,mstr"`
	GivenName  string `json:"given_name" example:"Rahim"`
	FamilyName string `json:"family_name" example:"Uddin"`
	Gender     string `json:"gender" example:"m" enums:"m,f"`

	// BornOn is YYYY-MM-DD
	BornOn string `json:"born_on" example:"1990-05-12"`

	Email       string `json:"email" example:"rahim@example.com"`
	PhoneNumber string `json:"phone_number" example:"+880 1712345678"`

	IdentityDocuments []SwaggerIdentityDocument `json:"identity_documents"`
}

// SwaggerIdentityDocument represents a passport attached to a traveler.
// @Description Passport details
type SwaggerIdentityDocument struct {
	Type               string `json:"type" example:"passport"`
	Number             string `json:"number" example:"BX1234567"`
	IssuingCountryCode string `json:"issuing_country_code" example:"BD"`

	// ExpiresOn is YYYY-MM-DD and must be after today
	ExpiresOn string `json:"expires_on" example:"2030-01-01"`

	UniqueIdentifier string `json:"unique_identifier" example:"passport_BX1234567_1792297800000_0"`
}

// SwaggerPassengersInvalid represents the 422 body of a rejected submission.
// @Description Per-passenger field errors keyed by passenger index
type SwaggerPassengersInvalid struct {
	Code    string `json:"code" example:"passengers_invalid"`
	Message string `json:"message" example:"Some passenger details are missing or invalid"`

	Passengers map[string]map[string]string `json:"passengers"`
}
