package api

import "fmt"

// validOperas is the fixed set of carriers the service knows. Requests
// naming any other airline are rejected before reaching the model.
var validOperas = map[string]bool{
	"Aerolineas Argentinas":  true,
	"Aeromexico":             true,
	"Air Canada":             true,
	"Air France":             true,
	"Alitalia":               true,
	"American Airlines":      true,
	"Austral":                true,
	"Avianca":                true,
	"British Airways":        true,
	"Copa Air":               true,
	"Delta Air":              true,
	"Gol Trans":              true,
	"Grupo LATAM":            true,
	"Iberia":                 true,
	"JetSmart SPA":           true,
	"K.L.M.":                 true,
	"Lacsa":                  true,
	"Latin American Wings":   true,
	"Oceanair Linhas Aereas": true,
	"Qantas Airways":         true,
	"Sky Airline":            true,
	"United Airlines":        true,
}

// validateFlight checks a single flight against the fixed categorical
// domains. The model itself tolerates unseen categories; this gate exists
// so clients get a clear 400 instead of a silent all-zero feature row.
func validateFlight(f Flight) error {
	if f.Opera == "" || f.TipoVuelo == "" || f.Mes == 0 {
		return fmt.Errorf("missing required fields")
	}
	if !validOperas[f.Opera] {
		return fmt.Errorf("invalid OPERA: %q", f.Opera)
	}
	if f.TipoVuelo != "I" && f.TipoVuelo != "N" {
		return fmt.Errorf("invalid TIPOVUELO: %q", f.TipoVuelo)
	}
	if f.Mes < 1 || f.Mes > 12 {
		return fmt.Errorf("invalid MES: %d", f.Mes)
	}
	return nil
}
