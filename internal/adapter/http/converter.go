package http

import (
	"strings"
	"time"

	"github.com/flight-booking/passenger-checkout/internal/domain"
	"github.com/flight-booking/passenger-checkout/internal/usecase"
)

// ToStartInput converts a StartSessionRequest to usecase.StartInput.
// token is the caller's bearer token, empty for guests.
func ToStartInput(req *StartSessionRequest, token string) usecase.StartInput {
	ids := make([]string, 0, len(req.PassengerIDs))
	for _, id := range req.PassengerIDs {
		ids = append(ids, strings.TrimSpace(id))
	}

	return usecase.StartInput{
		Counts: domain.TravelerCounts{
			Adults:   req.Adults,
			Children: req.Children,
			Infants:  req.Infants,
		},
		PassengerIDs: ids,
		Flight:       ToFlightDetails(req.Flight),
		Token:        token,
	}
}

// ToFlightDetails converts a FlightDTO to domain.FlightDetails.
func ToFlightDetails(dto FlightDTO) domain.FlightDetails {
	return domain.FlightDetails{
		OfferID:       strings.TrimSpace(dto.OfferID),
		Price:         dto.Price,
		Fare:          dto.Fare,
		Airline:       dto.Airline,
		FlightNumber:  dto.FlightNumber,
		Origin:        strings.ToUpper(strings.TrimSpace(dto.Origin)),
		Destination:   strings.ToUpper(strings.TrimSpace(dto.Destination)),
		DepartureTime: dto.DepartureTime,
		ArrivalTime:   dto.ArrivalTime,
	}
}

// ToPriceResponseDTO normalizes a raw price string.
func ToPriceResponseDTO(input string, gbpToBDT float64) PriceResponseDTO {
	m, err := domain.ParsePriceStrict(input, gbpToBDT)
	if err != nil {
		m = domain.ZeroMoney()
	}
	return PriceResponseDTO{
		Input:       input,
		Amount:      m.Amount,
		Currency:    m.Currency,
		TotalAmount: m.String(),
		Parsed:      err == nil,
	}
}

// formatTimestamp formats t as RFC 3339, or "" for the zero time.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
