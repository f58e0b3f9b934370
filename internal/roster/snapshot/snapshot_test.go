package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"caseboard/internal/client"
)

func sampleClients() []client.Client {
	return []client.Client{
		{
			ID:           "id-1",
			Name:         "Jane",
			Clinician:    "Dr. X",
			AssignedDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			UnitsUsed:    100,
			Status:       client.StatusNewlyAssigned,
			LastUpdated:  time.Date(2024, 3, 20, 15, 4, 5, 0, time.UTC),
		},
		{
			ID:           "id-2",
			Name:         "John",
			Clinician:    "Dr. Y",
			AssignedDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			UnitsUsed:    0,
			Status:       client.StatusHospitalized,
			LastUpdated:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func assertRoundTrip(t *testing.T, snap Snapshot) {
	t.Helper()

	if _, ok, err := snap.Load(); err != nil || ok {
		t.Fatalf("fresh Load = ok %v, err %v; want no snapshot", ok, err)
	}

	want := sampleClients()
	if err := snap.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := snap.Load()
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d clients, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name ||
			got[i].UnitsUsed != want[i].UnitsUsed || got[i].Status != want[i].Status {
			t.Errorf("client %d = %+v, want %+v", i, got[i], want[i])
		}
		if !got[i].AssignedDate.Equal(want[i].AssignedDate) || !got[i].LastUpdated.Equal(want[i].LastUpdated) {
			t.Errorf("client %d timestamps = %v/%v, want %v/%v",
				i, got[i].AssignedDate, got[i].LastUpdated, want[i].AssignedDate, want[i].LastUpdated)
		}
	}

	// Save replaces, never appends.
	if err := snap.Save(nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	got, ok, err = snap.Load()
	if err != nil || !ok {
		t.Fatalf("Load after empty save = ok %v, err %v", ok, err)
	}
	if len(got) != 0 {
		t.Errorf("got %d clients after empty save, want 0", len(got))
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	snap, err := OpenSQLite(filepath.Join(t.TempDir(), "roster.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer snap.Close()
	assertRoundTrip(t, snap)
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.db")
	snap, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := snap.Save(sampleClients()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	snap.Close()

	snap, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer snap.Close()
	got, ok, err := snap.Load()
	if err != nil || !ok {
		t.Fatalf("Load after reopen = ok %v, err %v", ok, err)
	}
	if len(got) != 2 || got[0].ID != "id-1" {
		t.Errorf("got %+v", got)
	}
}

func TestFileRoundTrip(t *testing.T) {
	snap, err := OpenFile(filepath.Join(t.TempDir(), "roster.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer snap.Close()
	assertRoundTrip(t, snap)
}

func TestFileLegacyBareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	legacy := `[{"id":"id-1","name":"Jane","clinician":"Dr. X",` +
		`"assignedDate":"2024-01-05T00:00:00Z","unitsUsed":100,` +
		`"status":"Newly Assigned","lastUpdated":"2024-03-20T15:04:05Z"}]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	got, ok, err := snap.Load()
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	if len(got) != 1 || got[0].ID != "id-1" || got[0].Status != client.StatusNewlyAssigned {
		t.Errorf("got %+v", got)
	}
}

func TestFileRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte(`{"version":99,"clients":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, _, err := snap.Load(); err == nil {
		t.Error("expected error for newer snapshot version")
	}
}

func TestFileCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if _, _, err := snap.Load(); err == nil {
		t.Error("expected error for corrupt snapshot")
	}
}
