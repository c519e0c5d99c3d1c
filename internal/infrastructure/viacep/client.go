// Package viacep implements the postal lookup client against the ViaCEP
// HTTP API (GET /ws/{cep}/json/).
package viacep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/usermgmt/user-address-api/internal/core/ports"
)

const defaultTimeout = 5 * time.Second

// Config captures the settings for the ViaCEP client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client calls the ViaCEP service with a bounded timeout. A malformed code
// (HTTP 400) and the provider's "erro" flag are both reported as NotFound
// results; only transport failures surface as errors, and the service layer
// treats those as negative results too.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://viacep.com.br"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// wireResult mirrors the ViaCEP JSON payload. The service has returned the
// "erro" field both as a bool and as a string over time, so it is decoded
// loosely: any present value means the code was not found.
type wireResult struct {
	Cep         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	GIA         string `json:"gia"`
	DDD         string `json:"ddd"`
	SIAFI       string `json:"siafi"`
	Erro        any    `json:"erro"`
}

func (c *Client) Lookup(ctx context.Context, cep string) (*ports.CepResult, error) {
	endpoint := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, url.PathEscape(cep))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("viacep request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep lookup: %w", err)
	}
	defer resp.Body.Close()

	// ViaCEP answers 400 for structurally invalid codes.
	if resp.StatusCode == http.StatusBadRequest {
		return &ports.CepResult{NotFound: true}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep lookup: unexpected status %d", resp.StatusCode)
	}

	var wire wireResult
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("viacep decode: %w", err)
	}

	return &ports.CepResult{
		Cep:          wire.Cep,
		Street:       wire.Logradouro,
		Complement:   wire.Complemento,
		Neighborhood: wire.Bairro,
		City:         wire.Localidade,
		State:        wire.UF,
		IBGE:         wire.IBGE,
		GIA:          wire.GIA,
		DDD:          wire.DDD,
		SIAFI:        wire.SIAFI,
		NotFound:     wire.Erro != nil,
	}, nil
}
