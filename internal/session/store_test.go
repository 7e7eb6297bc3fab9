package session

import (
	"testing"
	"time"

	"github.com/tgfetch/tgfetch/internal/model"
)

func TestTakeSelection_ConsumesEntry(t *testing.T) {
	store := NewStore()
	key := "100:200"

	store.PutSelection(key, model.PendingSelection{
		URL:       "https://youtube.com/watch?v=abc",
		Stage:     model.StageAwaitingFormat,
		CreatedAt: time.Now(),
	})

	sel, found := store.TakeSelection(key)
	if !found {
		t.Fatal("Expected selection to be found")
	}
	if sel.URL != "https://youtube.com/watch?v=abc" {
		t.Errorf("Expected stored URL, got %s", sel.URL)
	}
	if sel.Stage != model.StageAwaitingFormat {
		t.Errorf("Expected stage %s, got %s", model.StageAwaitingFormat, sel.Stage)
	}

	// First take consumed it
	if _, found := store.TakeSelection(key); found {
		t.Error("Expected second take to find nothing")
	}
}

func TestTakeSelection_Missing(t *testing.T) {
	store := NewStore()

	if _, found := store.TakeSelection("100:200"); found {
		t.Error("Expected no selection for unknown session")
	}
}

func TestPutSelection_Replaces(t *testing.T) {
	store := NewStore()
	key := "100:200"

	store.PutSelection(key, model.PendingSelection{URL: "https://youtube.com/first"})
	store.PutSelection(key, model.PendingSelection{URL: "https://youtube.com/second"})

	sel, found := store.TakeSelection(key)
	if !found {
		t.Fatal("Expected selection to be found")
	}
	if sel.URL != "https://youtube.com/second" {
		t.Errorf("Expected newest URL to win, got %s", sel.URL)
	}
}

func TestAdvanceSelection(t *testing.T) {
	store := NewStore()
	key := "100:200"

	store.PutSelection(key, model.PendingSelection{
		URL:   "https://youtube.com/watch?v=abc",
		Stage: model.StageAwaitingFormat,
	})

	sel, found := store.AdvanceSelection(key, model.StageAwaitingQuality)
	if !found {
		t.Fatal("Expected selection to advance")
	}
	if sel.Stage != model.StageAwaitingQuality {
		t.Errorf("Expected stage %s, got %s", model.StageAwaitingQuality, sel.Stage)
	}

	// Advancing keeps the entry in place for the follow-up tap
	kept, found := store.TakeSelection(key)
	if !found {
		t.Fatal("Expected advanced selection to remain stored")
	}
	if kept.Stage != model.StageAwaitingQuality {
		t.Errorf("Expected stored stage %s, got %s", model.StageAwaitingQuality, kept.Stage)
	}
	if kept.URL != "https://youtube.com/watch?v=abc" {
		t.Errorf("Expected URL to survive the advance, got %s", kept.URL)
	}
}

func TestAdvanceSelection_Missing(t *testing.T) {
	store := NewStore()

	if _, found := store.AdvanceSelection("100:200", model.StageAwaitingQuality); found {
		t.Error("Expected advance on unknown session to fail")
	}
}

func TestClearSelection(t *testing.T) {
	store := NewStore()
	key := "100:200"

	store.PutSelection(key, model.PendingSelection{URL: "https://youtube.com/watch?v=abc"})
	store.ClearSelection(key)

	if _, found := store.TakeSelection(key); found {
		t.Error("Expected cleared selection to be gone")
	}

	// Clearing an absent selection is a no-op
	store.ClearSelection(key)
}

func TestSelectionExpiry(t *testing.T) {
	store := newStore(20*time.Millisecond, 10*time.Millisecond)
	key := "100:200"

	store.PutSelection(key, model.PendingSelection{URL: "https://youtube.com/watch?v=abc"})
	time.Sleep(50 * time.Millisecond)

	if _, found := store.TakeSelection(key); found {
		t.Error("Expected selection to expire")
	}
}

func TestPhaseLifecycle(t *testing.T) {
	store := NewStore()
	key := "100:200"

	if phase := store.Phase(key); phase != model.PhaseIdle {
		t.Errorf("Expected initial phase %s, got %s", model.PhaseIdle, phase)
	}

	store.SetPhase(key, model.PhaseProcessing)
	if phase := store.Phase(key); phase != model.PhaseProcessing {
		t.Errorf("Expected phase %s, got %s", model.PhaseProcessing, phase)
	}

	store.SetPhase(key, model.PhaseUploading)
	if phase := store.Phase(key); phase != model.PhaseUploading {
		t.Errorf("Expected phase %s, got %s", model.PhaseUploading, phase)
	}

	store.SetPhase(key, model.PhaseIdle)
	if phase := store.Phase(key); phase != model.PhaseIdle {
		t.Errorf("Expected phase to reset to %s, got %s", model.PhaseIdle, phase)
	}
}

func TestPhaseAndSelectionDoNotCollide(t *testing.T) {
	store := NewStore()
	key := "100:200"

	store.PutSelection(key, model.PendingSelection{URL: "https://youtube.com/watch?v=abc"})
	store.SetPhase(key, model.PhaseProcessing)

	store.SetPhase(key, model.PhaseIdle)
	if _, found := store.TakeSelection(key); !found {
		t.Error("Expected selection to survive phase reset")
	}

	store.PutSelection(key, model.PendingSelection{URL: "https://youtube.com/watch?v=abc"})
	store.SetPhase(key, model.PhaseUploading)
	store.ClearSelection(key)
	if phase := store.Phase(key); phase != model.PhaseUploading {
		t.Errorf("Expected phase to survive selection clear, got %s", phase)
	}
}
