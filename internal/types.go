package internal

const (
	FieldFirstName         = "firstName"
	FieldLastName          = "lastName"
	FieldEmail             = "email"
	FieldPhoneNumber       = "phoneNumber"
	FieldMobileNumber      = "mobileNumber"
	FieldGuestNotes        = "guestNotes"
	FieldEmailMarketingOk  = "emailMarketingOk"
	FieldCompanyName       = "companyName"
	FieldAddress1          = "address1"
	FieldAddress2          = "address2"
	FieldCity              = "city"
	FieldState             = "state"
	FieldCountry           = "country"
	FieldZipCode           = "zipCode"
	FieldDateOfBirth       = "dateOfBirth"
	FieldDateOfAnniversary = "dateOfAnniversary"
	FieldOriginalGuestID   = "originalGuestId"
)

// StandardColumns is the target guest schema in export order.
var StandardColumns = []string{
	FieldFirstName, FieldLastName, FieldEmail, FieldPhoneNumber, FieldMobileNumber,
	FieldGuestNotes, FieldEmailMarketingOk, FieldCompanyName, FieldAddress1, FieldAddress2,
	FieldCity, FieldState, FieldCountry, FieldZipCode, FieldDateOfBirth,
	FieldDateOfAnniversary, FieldOriginalGuestID,
}

// ContactColumns are the fields that can carry a reachable contact method,
// in dedup-key priority order.
var ContactColumns = []string{FieldEmail, FieldPhoneNumber, FieldMobileNumber}

// CountryCodes maps a country hint to its dialing code for phone formatting.
var CountryCodes = map[string]string{
	"United Kingdom": "44",
	"United States":  "1",
	"France":         "33",
}

func IsStandardColumn(name string) bool {
	for _, col := range StandardColumns {
		if col == name {
			return true
		}
	}
	return false
}

// ManualMappingTargets lists the fields a raw column may be mapped to by
// hand. guestNotes is excluded: notes are only ever filled by combining
// selected columns, never by direct rename.
func ManualMappingTargets() []string {
	out := make([]string, 0, len(StandardColumns)-1)
	for _, col := range StandardColumns {
		if col == FieldGuestNotes {
			continue
		}
		out = append(out, col)
	}
	return out
}

type RunRow struct {
	ID         int
	TraceID    string
	InputFile  string
	RID        string
	CountsJSON string
	CreatedAt  string
}
