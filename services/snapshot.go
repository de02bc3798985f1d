package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// SnapshotVersion tags every persisted state snapshot. Version 1 snapshots
// predate recharge support and stored numerics as form strings; they are
// migrated on load. Versions we have never written fail restore instead of
// being guessed at.
const SnapshotVersion = 2

// SnapshotDebounce is the quiet period before a queued snapshot write fires.
const SnapshotDebounce = 300 * time.Millisecond

type snapshotEnvelope struct {
	Version int             `json:"version"`
	Survey  json.RawMessage `json:"survey"`
}

// EncodeSnapshot serializes the survey state with its version tag.
func EncodeSnapshot(s *Survey) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return json.Marshal(snapshotEnvelope{Version: SnapshotVersion, Survey: raw})
}

// DecodeSnapshot restores a survey from a persisted snapshot, migrating
// older versions.
func DecodeSnapshot(data []byte) (*Survey, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	switch env.Version {
	case SnapshotVersion:
		var s Survey
		if err := json.Unmarshal(env.Survey, &s); err != nil {
			return nil, fmt.Errorf("decode snapshot state: %w", err)
		}
		return &s, nil
	case 0, 1:
		return decodeLegacySnapshot(env.Survey)
	default:
		return nil, fmt.Errorf("snapshot version %d is newer than this build supports", env.Version)
	}
}

// legacy (version <= 1) item: numerics were stored as form strings, and
// free-form rows had no recharge or time fields.
type legacyItem struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	UOM          string    `json:"uom"`
	SMV          FlexFloat `json:"smv"`
	Cost         FlexFloat `json:"cost"`
	Quantity     FlexFloat `json:"quantity"`
	Comment      string    `json:"comment"`
	Recharge     bool      `json:"recharge"`
	TimeEstimate FlexFloat `json:"time_estimate"`
	Contractor   string    `json:"contractor"`
}

type legacySection struct {
	Name  string       `json:"name"`
	Items []legacyItem `json:"items"`
}

type legacySurvey struct {
	ID              string          `json:"id"`
	SurveyorName    string          `json:"surveyor_name"`
	PropertyAddress string          `json:"property_address"`
	VoidRating      string          `json:"void_rating"`
	VoidType        string          `json:"void_type"`
	MWRRequired     bool            `json:"mwr_required"`
	OverallComments string          `json:"overall_comments"`
	Notes           FeatureNotes    `json:"notes"`
	Sections        []legacySection `json:"sections"`
}

func decodeLegacySnapshot(raw json.RawMessage) (*Survey, error) {
	var legacy legacySurvey
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("decode legacy snapshot: %w", err)
	}

	s := &Survey{
		ID:              legacy.ID,
		SurveyorName:    legacy.SurveyorName,
		PropertyAddress: legacy.PropertyAddress,
		VoidRating:      legacy.VoidRating,
		VoidType:        legacy.VoidType,
		MWRRequired:     legacy.MWRRequired,
		OverallComments: legacy.OverallComments,
		Notes:           legacy.Notes,
	}
	if s.VoidRating == "" {
		s.VoidRating = "Green"
	}
	if s.VoidType == "" {
		s.VoidType = "Minor"
	}
	for _, sec := range legacy.Sections {
		converted := SectionItems{Name: NormalizeSection(sec.Name)}
		for _, it := range sec.Items {
			kind := it.Kind
			if kind == "" {
				kind = KindPriced
				if IsFreeForm(converted.Name) {
					kind = KindFreeForm
				}
			}
			converted.Items = append(converted.Items, Item{
				ID:           it.ID,
				Kind:         kind,
				Code:         it.Code,
				Description:  it.Description,
				UOM:          it.UOM,
				SMV:          float64(it.SMV),
				Cost:         float64(it.Cost),
				Quantity:     int(it.Quantity),
				Comment:      it.Comment,
				Recharge:     it.Recharge,
				TimeEstimate: float64(it.TimeEstimate),
				Contractor:   it.Contractor,
			})
		}
		s.Sections = append(s.Sections, converted)
	}
	return s, nil
}

// SnapshotSaver debounces snapshot writes per survey: every state change
// queues a write, and only the last one within the quiet period fires.
// Superseded writes are dropped, not queued.
type SnapshotSaver struct {
	mu     sync.Mutex
	delay  time.Duration
	save   func(surveyID string)
	timers map[string]*time.Timer
}

// NewSnapshotSaver wires a debounced saver around the given persist
// function. The function runs on a timer goroutine once the survey has been
// quiet for the configured delay.
func NewSnapshotSaver(delay time.Duration, save func(surveyID string)) *SnapshotSaver {
	return &SnapshotSaver{
		delay:  delay,
		save:   save,
		timers: make(map[string]*time.Timer),
	}
}

// Queue schedules a snapshot write for the survey, replacing any pending one.
func (s *SnapshotSaver) Queue(surveyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[surveyID]; ok {
		t.Stop()
	}
	s.timers[surveyID] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		delete(s.timers, surveyID)
		s.mu.Unlock()
		s.save(surveyID)
	})
}

// Cancel drops any pending write for the survey (used on discard/delete).
func (s *SnapshotSaver) Cancel(surveyID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[surveyID]; ok {
		t.Stop()
		delete(s.timers, surveyID)
	}
}

// Flush fires a pending write immediately instead of waiting out the delay.
func (s *SnapshotSaver) Flush(surveyID string) {
	s.mu.Lock()
	t, ok := s.timers[surveyID]
	if ok {
		t.Stop()
		delete(s.timers, surveyID)
	}
	s.mu.Unlock()
	if ok {
		s.save(surveyID)
	}
}
