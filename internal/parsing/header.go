// Package parsing reads the structured addressee header of a job description
// and the replies of providers asked to extract it from free text.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/bewerbung-generator/internal/types"
)

// Header line prefixes
const (
	prefixAdressat  = "Adressat:"
	prefixStelle    = "Stelle:"
	prefixStellenID = "Stellen-ID:"
)

// companySuffixes end the company name inside an Adressat line
var companySuffixes = map[string]bool{
	"gmbh": true,
	"ag":   true,
	"kg":   true,
	"co.":  true,
	"co":   true,
	"ohg":  true,
	"mbh":  true,
}

var plzPattern = regexp.MustCompile(`^\d{5}$`)

// ParseJobHeader reads the optional Adressat, Stelle and Stellen-ID lines of a job description.
// Fields that are absent keep their placeholder values.
func ParseJobHeader(text string) types.JobHeader {
	header := types.DefaultJobHeader()

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, prefixAdressat):
			parseAdressat(strings.TrimSpace(strings.TrimPrefix(line, prefixAdressat)), &header)
		case strings.HasPrefix(line, prefixStellenID):
			header.StellenID = strings.TrimSpace(strings.TrimPrefix(line, prefixStellenID))
		case strings.HasPrefix(line, prefixStelle):
			if title := strings.TrimSpace(strings.TrimPrefix(line, prefixStelle)); title != "" {
				header.SetPosition(title)
				header.HasStelle = true
			}
		}
	}

	return header
}

// parseAdressat splits "<company> <street> <PLZ> <city> [country]".
// The company ends at the first legal-form suffix before the street, otherwise after the first token.
// Lines without a postal code after the first token are ignored.
func parseAdressat(value string, header *types.JobHeader) {
	parts := strings.Fields(value)
	if len(parts) < 4 {
		return
	}

	plz := -1
	for i, part := range parts {
		if plzPattern.MatchString(part) {
			plz = i
			break
		}
	}
	if plz <= 0 {
		return
	}

	companyEnd := 1
	for i := 0; i < plz-1; i++ {
		if companySuffixes[strings.ToLower(parts[i])] {
			companyEnd = i + 1
			break
		}
	}

	header.SetCompany(strings.Join(parts[:companyEnd], " "))
	header.AdressatStrasse = strings.Join(parts[companyEnd:plz], " ")

	city := ""
	switch {
	case len(parts) > plz+2:
		city = strings.Join(parts[plz+1:len(parts)-1], " ")
		header.AdressatLand = parts[len(parts)-1]
	case len(parts) == plz+2:
		city = parts[plz+1]
	}
	header.AdressatPLZOrt = strings.TrimSpace(parts[plz] + " " + city)
}
