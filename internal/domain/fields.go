package domain

// Field names a traveler-data field the checkout tracks.
// Values match the JSON keys of Passenger and IdentityDocument.
type Field string

// Passenger fields.
const (
	FieldTitle       Field = "title"
	FieldGivenName   Field = "given_name"
	FieldFamilyName  Field = "family_name"
	FieldGender      Field = "gender"
	FieldBornOn      Field = "born_on"
	FieldEmail       Field = "email"
	FieldPhoneNumber Field = "phone_number"
)

// Identity document fields.
const (
	FieldDocumentNumber         Field = "number"
	FieldDocumentIssuingCountry Field = "issuing_country_code"
	FieldDocumentExpiresOn      Field = "expires_on"
)

// Error keys that differ from the field they report on. Display code keys off these names.
const (
	ErrorKeyPassportNumber = "passport_number"
	ErrorKeyPassportExpiry = "passport_expiry"
)

// PassengerFields lists the required passenger-level fields in validation order.
var PassengerFields = []Field{
	FieldTitle,
	FieldGivenName,
	FieldFamilyName,
	FieldBornOn,
	FieldGender,
	FieldEmail,
	FieldPhoneNumber,
}

// DocumentFields lists the required identity-document fields in validation order.
var DocumentFields = []Field{
	FieldDocumentNumber,
	FieldDocumentIssuingCountry,
	FieldDocumentExpiresOn,
}

// errorKeys maps fields to the key their error is stored under.
var errorKeys = map[Field]string{
	FieldTitle:                  string(FieldTitle),
	FieldGivenName:              string(FieldGivenName),
	FieldFamilyName:             string(FieldFamilyName),
	FieldGender:                 string(FieldGender),
	FieldBornOn:                 string(FieldBornOn),
	FieldEmail:                  string(FieldEmail),
	FieldPhoneNumber:            string(FieldPhoneNumber),
	FieldDocumentNumber:         ErrorKeyPassportNumber,
	FieldDocumentIssuingCountry: string(FieldDocumentIssuingCountry),
	FieldDocumentExpiresOn:      ErrorKeyPassportExpiry,
}

// ErrorKey returns the error-map key for a field.
// The second return value is false for fields the engine does not track.
func (f Field) ErrorKey() (string, bool) {
	key, ok := errorKeys[f]
	return key, ok
}

// IsDocumentField reports whether the field belongs to the identity document.
func (f Field) IsDocumentField() bool {
	switch f {
	case FieldDocumentNumber, FieldDocumentIssuingCountry, FieldDocumentExpiresOn:
		return true
	default:
		return false
	}
}

// IsPassengerField reports whether the field belongs to the passenger record itself.
func (f Field) IsPassengerField() bool {
	_, ok := errorKeys[f]
	return ok && !f.IsDocumentField()
}

// ParseField converts a raw field name into a tracked Field.
func ParseField(s string) (Field, bool) {
	f := Field(s)
	if _, ok := errorKeys[f]; !ok {
		return "", false
	}
	return f, true
}
