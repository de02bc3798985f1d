package submit

import (
	"context"
	"os"
	"sync"
)

// Targets.
const (
	TargetDashboard = "dashboard"
	TargetDocStore  = "docstore"
)

// Result is the outcome of one submission target.
type Result struct {
	Target string
	DocID  string // set for successful document-store writes
	Err    error
}

// Submitter fans a survey payload out to the configured targets.
// Unconfigured targets are simply absent from the results.
type Submitter struct {
	dashboard *DashboardClient
	docstore  *DocStoreClient
}

// New builds a submitter; either client may be nil.
func New(dashboard *DashboardClient, docstore *DocStoreClient) *Submitter {
	return &Submitter{dashboard: dashboard, docstore: docstore}
}

// FromEnv wires a submitter from DASHBOARD_URL, DOCSTORE_URL and
// DOCSTORE_DB. Missing variables disable the corresponding target.
func FromEnv() *Submitter {
	var dashboard *DashboardClient
	if url := os.Getenv("DASHBOARD_URL"); url != "" {
		dashboard = NewDashboardClient(url)
	}
	var docstore *DocStoreClient
	if url := os.Getenv("DOCSTORE_URL"); url != "" {
		db := os.Getenv("DOCSTORE_DB")
		if db == "" {
			db = "surveys"
		}
		docstore = NewDocStoreClient(url, db)
	}
	return New(dashboard, docstore)
}

// Enabled reports whether any target is configured.
func (s *Submitter) Enabled() bool {
	return s.dashboard != nil || s.docstore != nil
}

// Submit fires the configured targets concurrently and returns a channel
// that yields one Result per target, then closes. There is no retry and no
// ordering guarantee between targets.
func (s *Submitter) Submit(ctx context.Context, payload any) <-chan Result {
	results := make(chan Result)
	var wg sync.WaitGroup

	if s.dashboard != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- Result{
				Target: TargetDashboard,
				Err:    s.dashboard.Post(ctx, payload),
			}
		}()
	}

	if s.docstore != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			docID, err := s.docstore.Put(ctx, payload)
			results <- Result{Target: TargetDocStore, DocID: docID, Err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}
