package rendering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/bewerbung-generator/internal/config"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

func TestVars_Layers(t *testing.T) {
	ctx := testContext()
	ctx.Static = ctx.Static.With(map[string]string{"ADRESSAT_FIRMA": "Aus der .env"})

	vars := ctx.Vars()

	assert.Equal(t, "Max", vars["ABSENDER_VORNAME"])
	assert.Equal(t, "TechCorp GmbH", vars["ADRESSAT_FIRMA"], "parsed header wins over static field")
	assert.Equal(t, "Senior DevOps Engineer", vars["STELLE"])
	assert.Equal(t, "REF-2025-001", vars["STELLEN_ID"])
	assert.Equal(t, "24.06.2025", vars["DATUM"])
	assert.Equal(t, "TechCorp GmbH", vars["company_name"])
	assert.Equal(t, "mit großem Interesse habe ich Ihre Stellenausschreibung gelesen.", vars["einstiegstext"])
	assert.Equal(t, "20250604_dr_setz.pdf", vars["profil_datei"])
}

func TestVars_PlaceholderKeepsStaticValue(t *testing.T) {
	ctx := RenderContext{
		Static: config.StaticFields{"ADRESSAT_FIRMA": "Statische Firma AG", "STELLE": "Architekt"},
		Header: types.DefaultJobHeader(),
	}

	vars := ctx.Vars()
	assert.Equal(t, "Statische Firma AG", vars["ADRESSAT_FIRMA"])
	assert.Equal(t, "Architekt", vars["STELLE"])
	assert.Equal(t, types.PlaceholderStreet, vars["ADRESSAT_STRASSE"])
}

func TestVars_StaticDateWins(t *testing.T) {
	ctx := RenderContext{
		Static: config.StaticFields{"DATUM": "01.01.2030"},
		Date:   time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "01.01.2030", ctx.Vars()["DATUM"])
}

func TestVars_ExtraMapping(t *testing.T) {
	ctx := RenderContext{
		Header: types.DefaultJobHeader(),
		Extra: map[string]string{
			"adressat_unternehmen":     "Beispiel GmbH",
			"adressat_ansprechpartner": "Frau Schmidt",
			"adressat_plz":             "10115",
			"adressat_ort":             "Berlin",
			"position":                 "Cloud Architect",
			"referenz_nummer":          "4711",
			"eigenes_feld":             "bleibt",
		},
	}

	vars := ctx.Vars()
	assert.Equal(t, "Beispiel GmbH", vars["ADRESSAT_FIRMA"])
	assert.Equal(t, "Frau Schmidt", vars["ADRESSAT_ANSPRECHPARTNER"])
	assert.Equal(t, "10115 Berlin", vars["ADRESSAT_PLZ_ORT"])
	assert.Equal(t, "Cloud Architect", vars["STELLE"])
	assert.Equal(t, "4711", vars["STELLEN_ID"])
	assert.Equal(t, "bleibt", vars["eigenes_feld"])
}

func TestVars_DoesNotMutateStatic(t *testing.T) {
	static := config.StaticFields{"ABSENDER_VORNAME": "Max"}
	ctx := RenderContext{Static: static, Header: testContext().Header}

	_ = ctx.Vars()
	assert.Len(t, static, 1)
}
