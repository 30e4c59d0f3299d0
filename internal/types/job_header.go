package types

// Placeholder values used when a job posting does not name the employer or the position
const (
	PlaceholderCompany  = "Unternehmen"
	PlaceholderPosition = "Position"
	PlaceholderStreet   = "Straße"
	PlaceholderPLZOrt   = "PLZ Ort"
	DefaultCountry      = "Deutschland"
)

// JobHeader holds the addressee and position data of a job posting
type JobHeader struct {
	CompanyName     string `json:"company_name"`
	PositionTitle   string `json:"position_title"`
	AdressatFirma   string `json:"adressat_firma"`
	AdressatStrasse string `json:"adressat_strasse"`
	AdressatPLZOrt  string `json:"adressat_plz_ort"`
	AdressatLand    string `json:"adressat_land"`
	Stelle          string `json:"stelle"`
	StellenID       string `json:"stellen_id"`

	// HasStelle is true when the posting carried an explicit Stelle line
	HasStelle bool `json:"-"`
}

// DefaultJobHeader returns a header filled with placeholders
func DefaultJobHeader() JobHeader {
	return JobHeader{
		CompanyName:     PlaceholderCompany,
		PositionTitle:   PlaceholderPosition,
		AdressatFirma:   PlaceholderCompany,
		AdressatStrasse: PlaceholderStreet,
		AdressatPLZOrt:  PlaceholderPLZOrt,
		AdressatLand:    DefaultCountry,
		Stelle:          PlaceholderPosition,
	}
}

// HasCompany reports whether a real company name was found
func (h JobHeader) HasCompany() bool {
	return h.CompanyName != "" && h.CompanyName != PlaceholderCompany
}

// SetCompany updates both company fields
func (h *JobHeader) SetCompany(name string) {
	h.CompanyName = name
	h.AdressatFirma = name
}

// SetPosition updates both position fields
func (h *JobHeader) SetPosition(title string) {
	h.PositionTitle = title
	h.Stelle = title
}
