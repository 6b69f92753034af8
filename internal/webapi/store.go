package webapi

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/decisionlab/compass/internal/models"
)

// ErrDecisionNotFound is returned when an ID matches no stored decision.
var ErrDecisionNotFound = errors.New("decision not found")

// DecisionStore provides read access to saved decision records.
type DecisionStore interface {
	// ListDecisions returns all decisions, sorted by the given field and order.
	ListDecisions(sortField, order string) ([]DecisionSummary, error)
	// GetDecision returns a single decision with its full record.
	GetDecision(id string) (*DecisionDetail, error)
	// Summary returns aggregate metrics across all decisions.
	Summary() (*SummaryResponse, error)
}

// FileStore reads decision YAML files from a directory.
type FileStore struct {
	dir string

	mu      sync.RWMutex
	records map[string]*models.DecisionRecord
	loaded  bool
}

// NewFileStore creates a FileStore that reads decisions from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:     dir,
		records: make(map[string]*models.DecisionRecord),
	}
}

// load reads all decision files from the configured directory. Files
// that fail to parse are skipped.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.records = make(map[string]*models.DecisionRecord)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		return err
	}

	var (
		g       errgroup.Group
		loadMu  sync.Mutex
		records = make(map[string]*models.DecisionRecord)
	)
	g.SetLimit(8)

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		path := filepath.Join(fs.dir, name)
		g.Go(func() error {
			rec, err := models.LoadDecision(path)
			if err != nil {
				return nil
			}
			if rec.ID == "" {
				rec.ID = strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
			}
			loadMu.Lock()
			records[rec.ID] = rec
			loadMu.Unlock()
			return nil
		})
	}
	g.Wait() //nolint:errcheck

	fs.records = records
	fs.loaded = true
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all decision files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

func recordToSummary(rec *models.DecisionRecord) DecisionSummary {
	top := ""
	if rec.TopChoice != nil {
		top = rec.TopChoice.Name
	}
	return DecisionSummary{
		ID:           rec.ID,
		Statement:    rec.Statement,
		TopChoice:    top,
		Alternatives: len(rec.Alternatives),
		Criteria:     len(rec.Criteria),
		Risks:        len(rec.Risks),
		Threshold:    rec.Meta.Threshold,
		CreatedAt:    rec.CreatedAt,
	}
}

// ListDecisions returns all decisions sorted by the given field and order.
func (fs *FileStore) ListDecisions(sortField, order string) ([]DecisionSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := make([]DecisionSummary, 0, len(fs.records))
	for _, rec := range fs.records {
		out = append(out, recordToSummary(rec))
	}

	sortDecisions(out, sortField, order)
	return out, nil
}

// GetDecision returns a single decision with its full record.
func (fs *FileStore) GetDecision(id string) (*DecisionDetail, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	rec, ok := fs.records[id]
	if !ok {
		return nil, ErrDecisionNotFound
	}
	return &DecisionDetail{
		DecisionSummary: recordToSummary(rec),
		Record:          *rec,
	}, nil
}

// Summary returns aggregate metrics across all decisions.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	resp := &SummaryResponse{TotalDecisions: len(fs.records)}
	probSum := 0.0
	for _, rec := range fs.records {
		resp.TotalRisks += len(rec.Risks)
		if rec.MCResult != nil {
			resp.WithSimulation++
			probSum += rec.MCResult.ProbLoss
		}
	}
	if resp.WithSimulation > 0 {
		resp.AvgProbLoss = probSum / float64(resp.WithSimulation)
	}
	return resp, nil
}

func sortDecisions(list []DecisionSummary, sortField, order string) {
	desc := strings.EqualFold(order, "desc")

	less := func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) }
	switch strings.ToLower(sortField) {
	case "statement":
		less = func(i, j int) bool { return list[i].Statement < list[j].Statement }
	case "threshold":
		less = func(i, j int) bool { return list[i].Threshold < list[j].Threshold }
	case "risks":
		less = func(i, j int) bool { return list[i].Risks < list[j].Risks }
	}

	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
