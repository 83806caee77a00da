package uniprot

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/proteovis/proteovis/internal/data"
)

// Client fetches annotation records from the UniProt REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a REST client against rest.uniprot.org.
func NewClient() *Client {
	return &Client{
		baseURL: "https://rest.uniprot.org",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint
// (used by tests).
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

// Fetch retrieves one record by accession. Any failure (transport,
// non-200, malformed body) is returned as an error; callers treat it
// as "no data available" rather than aborting their pass.
func (c *Client) Fetch(accession string) (Record, error) {
	url := fmt.Sprintf("%s/uniprotkb/%s.json", c.baseURL, accession)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return Record{}, fmt.Errorf("fetch uniprot record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Record{}, fmt.Errorf("uniprot API error %d: %s", resp.StatusCode, string(body))
	}

	var raw any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Record{}, fmt.Errorf("decode uniprot record: %w", err)
	}

	return NewRecord(accession, data.FromAny(raw)), nil
}

// FetchAll retrieves records for a set of accessions into a store,
// skipping failures. The store is usable regardless of how many
// fetches succeeded.
func (c *Client) FetchAll(accessions []string, store *Store) {
	for _, acc := range accessions {
		if _, ok := store.Get(acc); ok {
			continue
		}
		rec, err := c.Fetch(acc)
		if err != nil {
			continue
		}
		store.Put(rec)
	}
}
