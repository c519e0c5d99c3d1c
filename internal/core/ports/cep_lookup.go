package ports

import "context"

// CepResult is the canonical record returned by the postal lookup provider.
// NotFound is a normal outcome, not a transport failure: it is set when the
// provider flags the code as unknown.
type CepResult struct {
	Cep          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	IBGE         string `json:"ibge,omitempty"`
	GIA          string `json:"gia,omitempty"`
	DDD          string `json:"ddd,omitempty"`
	SIAFI        string `json:"siafi,omitempty"`
	NotFound     bool   `json:"not_found,omitempty"`
}

// CepLookup resolves a postal code into its canonical address fields.
// Implementations must bound the call with a timeout; callers treat any
// error, nil result, empty canonical code or NotFound flag as a negative
// result, never as an infrastructure failure to retry.
type CepLookup interface {
	Lookup(ctx context.Context, cep string) (*CepResult, error)
}
