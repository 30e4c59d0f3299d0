package rendering

import (
	"time"

	"github.com/jonathan/bewerbung-generator/internal/config"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

// dateLayout is the German date format used for DATUM
const dateLayout = "02.01.2006"

// variableMapping maps lower-case dynamic keys to the upper-case placeholders of the templates
var variableMapping = map[string]string{
	"adressat_unternehmen":     "ADRESSAT_FIRMA",
	"adressat_firma":           "ADRESSAT_FIRMA",
	"adressat_abteilung":       "ADRESSAT_ABTEILUNG",
	"adressat_ansprechpartner": "ADRESSAT_ANSPRECHPARTNER",
	"adressat_strasse":         "ADRESSAT_STRASSE",
	"adressat_hausnummer":      "ADRESSAT_HAUSNUMMER",
	"adressat_plz":             "ADRESSAT_PLZ",
	"adressat_ort":             "ADRESSAT_ORT",
	"adressat_plz_ort":         "ADRESSAT_PLZ_ORT",
	"adressat_land":            "ADRESSAT_LAND",
	"position":                 "STELLE",
	"referenz_nummer":          "STELLEN_ID",
}

// filledKeys are upper-case placeholders that Vars always sets, whatever the static fields hold
var filledKeys = map[string]bool{
	"ADRESSAT_FIRMA":   true,
	"ADRESSAT_STRASSE": true,
	"ADRESSAT_PLZ_ORT": true,
	"ADRESSAT_LAND":    true,
	"STELLE":           true,
	"STELLEN_ID":       true,
	"DATUM":            true,
}

// RenderContext carries everything the templates of one provider folder need.
// It is built once per provider and never shared.
type RenderContext struct {
	Static  config.StaticFields
	Header  types.JobHeader
	Content map[types.ContentType]string

	ProfileFile string
	JobFile     string
	Provider    string
	Model       string
	Date        time.Time

	// Extra holds lower-case dynamic fields; keys in the mapping table are renamed
	Extra map[string]string
}

// Vars flattens the context into template variables. Later layers win:
// static fields, then the job header, then Extra, then generated content.
func (c RenderContext) Vars() map[string]string {
	vars := make(map[string]string, len(c.Static)+len(c.Content)+16)
	for k, v := range c.Static {
		vars[k] = v
	}

	if _, ok := vars["DATUM"]; !ok || vars["DATUM"] == "" {
		date := c.Date
		if date.IsZero() {
			date = time.Now()
		}
		vars["DATUM"] = date.Format(dateLayout)
	}

	h := c.Header
	setHeader := func(key, value, placeholder string) {
		if value == "" || (value == placeholder && vars[key] != "") {
			return
		}
		vars[key] = value
	}
	setHeader("ADRESSAT_FIRMA", h.AdressatFirma, types.PlaceholderCompany)
	setHeader("ADRESSAT_STRASSE", h.AdressatStrasse, types.PlaceholderStreet)
	setHeader("ADRESSAT_PLZ_ORT", h.AdressatPLZOrt, types.PlaceholderPLZOrt)
	setHeader("ADRESSAT_LAND", h.AdressatLand, types.DefaultCountry)
	setHeader("STELLE", h.Stelle, types.PlaceholderPosition)
	setHeader("STELLEN_ID", h.StellenID, "")

	vars["company_name"] = h.CompanyName
	vars["position_title"] = h.PositionTitle
	vars["profil_datei"] = c.ProfileFile
	vars["stellen_datei"] = c.JobFile
	vars["provider"] = c.Provider
	vars["model"] = c.Model

	for k, v := range c.Extra {
		if upper, ok := variableMapping[k]; ok {
			vars[upper] = v
			continue
		}
		vars[k] = v
	}
	plz, hasPLZ := c.Extra["adressat_plz"]
	ort, hasOrt := c.Extra["adressat_ort"]
	if hasPLZ && hasOrt {
		vars["ADRESSAT_PLZ_ORT"] = plz + " " + ort
	}

	for ct, text := range c.Content {
		vars[string(ct)] = text
	}
	return vars
}
