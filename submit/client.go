// Package submit sends completed survey records to the remote dashboard
// and document store. Both targets are best-effort: a failure is reported,
// never retried, and never blocks the local export.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds each outbound request.
const DefaultTimeout = 15 * time.Second

// DashboardClient posts survey JSON to the dashboard ingestion endpoint.
type DashboardClient struct {
	url    string
	client *http.Client
}

// NewDashboardClient returns a client for the given ingestion URL.
func NewDashboardClient(url string) *DashboardClient {
	return &DashboardClient{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// Post sends the payload as a JSON POST.
func (c *DashboardClient) Post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal dashboard payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build dashboard request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to dashboard: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("dashboard responded %s", resp.Status)
	}
	return nil
}

// DocStoreClient writes survey documents to a hosted document database
// (CouchDB-style: PUT {base}/{db}/{docID}).
type DocStoreClient struct {
	baseURL string
	db      string
	client  *http.Client
}

// NewDocStoreClient returns a client for the given store base URL and
// database name.
func NewDocStoreClient(baseURL, db string) *DocStoreClient {
	return &DocStoreClient{
		baseURL: baseURL,
		db:      db,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
}

// Put writes the payload as a new document under a generated ID and returns
// that ID.
func (c *DocStoreClient) Put(ctx context.Context, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}

	docID := uuid.NewString()
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, c.db, docID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build document request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("document store responded %s", resp.Status)
	}
	return docID, nil
}
