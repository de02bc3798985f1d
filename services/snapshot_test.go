package services

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	original := buildTestSurvey()
	data, err := EncodeSnapshot(original)
	if err != nil {
		t.Fatalf("EncodeSnapshot() error = %v", err)
	}

	restored, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}

	if restored.SurveyorName != original.SurveyorName {
		t.Errorf("SurveyorName = %q, want %q", restored.SurveyorName, original.SurveyorName)
	}
	if len(restored.Sections) != len(original.Sections) {
		t.Fatalf("got %d sections, want %d", len(restored.Sections), len(original.Sections))
	}
	kitchen := restored.Section("kitchen").Items
	if len(kitchen) != 2 {
		t.Fatalf("kitchen has %d items, want 2", len(kitchen))
	}
	if kitchen[0].Code != "KIT001" || kitchen[0].Quantity != 4 || !kitchen[0].Recharge {
		t.Errorf("restored item = %+v", kitchen[0])
	}
	contractor := restored.Section(SectionContractor).Items
	if contractor[0].TimeEstimate != 2.5 || contractor[0].Contractor != "Acme Ltd" {
		t.Errorf("restored free-form item = %+v", contractor[0])
	}
}

func TestDecodeSnapshot_LegacyStringNumerics(t *testing.T) {
	legacy := `{
		"version": 1,
		"survey": {
			"surveyor_name": "Old Hand",
			"property_address": "3 Low Rd",
			"sections": [
				{
					"name": "Kitchen",
					"items": [
						{"code": "KIT001", "description": "Replace worktop", "smv": "30", "cost": "5.50", "quantity": "4"}
					]
				},
				{
					"name": "lorry clearance",
					"items": [
						{"description": "Full clearance", "cost": "250"}
					]
				}
			]
		}
	}`

	s, err := DecodeSnapshot([]byte(legacy))
	if err != nil {
		t.Fatalf("DecodeSnapshot() error = %v", err)
	}
	if s.SurveyorName != "Old Hand" {
		t.Errorf("SurveyorName = %q", s.SurveyorName)
	}
	if s.VoidRating != "Green" || s.VoidType != "Minor" {
		t.Errorf("missing defaults = %q/%q, want Green/Minor", s.VoidRating, s.VoidType)
	}

	kitchen := s.Section("kitchen").Items
	if len(kitchen) != 1 {
		t.Fatalf("kitchen has %d items, want 1", len(kitchen))
	}
	it := kitchen[0]
	if it.SMV != 30 || it.Cost != 5.5 || it.Quantity != 4 {
		t.Errorf("string numerics not coerced: %+v", it)
	}
	if it.Kind != KindPriced {
		t.Errorf("Kind = %q, want inferred %q", it.Kind, KindPriced)
	}

	lorry := s.Section(SectionLorry).Items
	if len(lorry) != 1 || lorry[0].Kind != KindFreeForm {
		t.Errorf("lorry item kind not inferred: %+v", lorry)
	}
}

func TestDecodeSnapshot_NewerVersionFails(t *testing.T) {
	data := fmt.Sprintf(`{"version": %d, "survey": {}}`, SnapshotVersion+1)
	if _, err := DecodeSnapshot([]byte(data)); err == nil {
		t.Error("DecodeSnapshot() accepted a snapshot from a newer build")
	}
}

func TestDecodeSnapshot_Garbage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("not json")); err == nil {
		t.Error("DecodeSnapshot() accepted garbage")
	}
}

func TestSnapshotSaver_Debounces(t *testing.T) {
	var mu sync.Mutex
	saves := make(map[string]int)
	saver := NewSnapshotSaver(30*time.Millisecond, func(surveyID string) {
		mu.Lock()
		saves[surveyID]++
		mu.Unlock()
	})

	// Rapid edits collapse into one write.
	saver.Queue("s1")
	saver.Queue("s1")
	saver.Queue("s1")
	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	got := saves["s1"]
	mu.Unlock()
	if got != 1 {
		t.Errorf("save ran %d times, want 1", got)
	}
}

func TestSnapshotSaver_PerSurveyTimers(t *testing.T) {
	var mu sync.Mutex
	saves := make(map[string]int)
	saver := NewSnapshotSaver(30*time.Millisecond, func(surveyID string) {
		mu.Lock()
		saves[surveyID]++
		mu.Unlock()
	})

	saver.Queue("s1")
	saver.Queue("s2")
	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if saves["s1"] != 1 || saves["s2"] != 1 {
		t.Errorf("saves = %v, want one per survey", saves)
	}
}

func TestSnapshotSaver_Cancel(t *testing.T) {
	var mu sync.Mutex
	count := 0
	saver := NewSnapshotSaver(30*time.Millisecond, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	saver.Queue("s1")
	saver.Cancel("s1")
	time.Sleep(120 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("save ran %d times after Cancel, want 0", count)
	}
}

func TestSnapshotSaver_Flush(t *testing.T) {
	var mu sync.Mutex
	count := 0
	saver := NewSnapshotSaver(time.Hour, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	saver.Queue("s1")
	saver.Flush("s1")

	mu.Lock()
	got := count
	mu.Unlock()
	if got != 1 {
		t.Errorf("save ran %d times after Flush, want 1", got)
	}

	// Flushing with nothing pending is a no-op.
	saver.Flush("s1")
	mu.Lock()
	defer mu.Unlock()
	if count != 1 {
		t.Errorf("save ran %d times after second Flush, want 1", count)
	}
}
