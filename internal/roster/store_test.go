package roster

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"caseboard/internal/client"
	"caseboard/internal/roster/snapshot"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.json")
	snap, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	s, err := Open(snap, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, path
}

func newClient(name string) client.Client {
	return client.New(name, "Dr. X", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 100, client.StatusNewlyAssigned)
}

func TestAddAndClients(t *testing.T) {
	s, _ := newTestStore(t)
	a := newClient("A")
	b := newClient("B")
	if err := s.Add(a); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(b); err != nil {
		t.Fatalf("Add: %v", err)
	}

	got := s.Clients()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != b.ID {
		t.Errorf("Clients() = %+v, want insertion order A then B", got)
	}

	// The returned slice is a copy.
	got[0].Name = "mutated"
	if c, _ := s.Get(a.ID); c.Name != "A" {
		t.Error("Clients() exposed internal state")
	}

	if err := s.Add(a); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate Add err = %v, want ErrDuplicateID", err)
	}
}

func TestBulkAdd(t *testing.T) {
	s, _ := newTestStore(t)
	a := newClient("A")
	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}

	t.Run("rejects batch colliding with roster", func(t *testing.T) {
		if err := s.BulkAdd([]client.Client{newClient("B"), a}); !errors.Is(err, ErrDuplicateID) {
			t.Errorf("err = %v, want ErrDuplicateID", err)
		}
		if s.Len() != 1 {
			t.Errorf("Len = %d, want 1 after rejected batch", s.Len())
		}
	})

	t.Run("appends clean batch in order", func(t *testing.T) {
		b, c := newClient("B"), newClient("C")
		if err := s.BulkAdd([]client.Client{b, c}); err != nil {
			t.Fatalf("BulkAdd: %v", err)
		}
		got := s.Clients()
		if len(got) != 3 || got[1].ID != b.ID || got[2].ID != c.ID {
			t.Errorf("Clients() = %+v", got)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	s, _ := newTestStore(t)
	a := newClient("A")
	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}

	time.Sleep(time.Millisecond)
	if err := s.UpdateStatus(a.ID, client.StatusHospitalized); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, _ := s.Get(a.ID)
	if got.Status != client.StatusHospitalized {
		t.Errorf("Status = %q", got.Status)
	}
	if !got.LastUpdated.After(a.LastUpdated) {
		t.Error("LastUpdated not refreshed")
	}

	if err := s.UpdateStatus(a.ID, "Discharged"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestUpdateUnits(t *testing.T) {
	s, _ := newTestStore(t)
	a := newClient("A")
	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateUnits(a.ID, 960); err != nil {
		t.Fatalf("UpdateUnits: %v", err)
	}
	if got, _ := s.Get(a.ID); got.UnitsUsed != 960 {
		t.Errorf("UnitsUsed = %d, want 960", got.UnitsUsed)
	}

	for _, bad := range []int{-1, 961} {
		if err := s.UpdateUnits(a.ID, bad); err == nil {
			t.Errorf("UpdateUnits(%d) accepted out-of-range value", bad)
		}
	}
	if got, _ := s.Get(a.ID); got.UnitsUsed != 960 {
		t.Errorf("rejected update changed UnitsUsed to %d", got.UnitsUsed)
	}
}

// Updates against an unknown id must leave every record untouched, including
// lastUpdated stamps.
func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	s, _ := newTestStore(t)
	for _, name := range []string{"A", "B", "C"} {
		if err := s.Add(newClient(name)); err != nil {
			t.Fatal(err)
		}
	}
	before := s.Clients()

	if err := s.UpdateUnits("no-such-id", 50); err != nil {
		t.Fatalf("UpdateUnits: %v", err)
	}
	if err := s.UpdateStatus("no-such-id", client.StatusHospitalized); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	s.Remove("no-such-id")

	if after := s.Clients(); !reflect.DeepEqual(before, after) {
		t.Errorf("roster changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestRemove(t *testing.T) {
	s, _ := newTestStore(t)
	a, b, c := newClient("A"), newClient("B"), newClient("C")
	for _, cl := range []client.Client{a, b, c} {
		if err := s.Add(cl); err != nil {
			t.Fatal(err)
		}
	}
	s.Remove(b.ID)
	got := s.Clients()
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Errorf("Clients() = %+v, want A then C", got)
	}
}

func TestClear(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Add(newClient("A")); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

// Adding one client then reloading from durable storage must reproduce the
// roster exactly, ids included.
func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	snap, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Open(snap, nil)
	if err != nil {
		t.Fatal(err)
	}
	a := newClient("A")
	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}

	snap2, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := Open(snap2, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got := s2.Clients()
	if len(got) != 1 {
		t.Fatalf("got %d clients, want 1", len(got))
	}
	if got[0].ID != a.ID || got[0].Name != a.Name || got[0].UnitsUsed != a.UnitsUsed ||
		got[0].Status != a.Status || !got[0].AssignedDate.Equal(a.AssignedDate) {
		t.Errorf("reloaded client = %+v, want %+v", got[0], a)
	}
}

func TestOpenRejectsCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := snapshot.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(snap, nil); err == nil {
		t.Error("expected error for corrupt snapshot")
	}
}
