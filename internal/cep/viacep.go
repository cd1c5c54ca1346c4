// Package cep looks up Brazilian postal codes (CEP) for address autofill
// on the person form.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrInvalidCEP is returned before any network call when the code is
	// not exactly 8 digits.
	ErrInvalidCEP = errors.New("cep must be 8 digits")

	// ErrNotFound is returned when the lookup service does not know the
	// code.
	ErrNotFound = errors.New("cep not found")
)

// Address is the autofillable portion of a postal address.
type Address struct {
	Street   string `json:"street"`
	District string `json:"district"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Client queries the ViaCEP public API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a CEP client against the given base URL
// (e.g. https://viacep.com.br).
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// viaCEPResponse mirrors ViaCEP's JSON body. Unknown codes come back as
// HTTP 200 with {"erro": true}.
type viaCEPResponse struct {
	Street   string `json:"logradouro"`
	District string `json:"bairro"`
	City     string `json:"localidade"`
	State    string `json:"uf"`
	Error    bool   `json:"erro"`
}

// Lookup resolves a CEP into an address. code may contain a dash
// ("01310-100"); everything but digits is stripped before validation.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	digits := make([]byte, 0, 8)
	for i := 0; i < len(code); i++ {
		if code[i] >= '0' && code[i] <= '9' {
			digits = append(digits, code[i])
		}
	}
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build cep request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep lookup failed: status %d", resp.StatusCode)
	}

	var body viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode cep response: %w", err)
	}
	if body.Error {
		return nil, ErrNotFound
	}

	return &Address{
		Street:   body.Street,
		District: body.District,
		City:     body.City,
		State:    body.State,
	}, nil
}
