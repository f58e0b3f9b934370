package client

import (
	"testing"
	"time"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"canonical new authorization", "New Authorization", true},
		{"canonical current authorization", "Current Authorization", true},
		{"canonical new lbs", "Current Authorization (New LBS)", true},
		{"canonical newly assigned", "Newly Assigned", true},
		{"canonical hospitalized", "Client Hospitalized", true},
		{"canonical cancellations", "Frequent Caregiver Cancellations", true},
		{"lowercase rejected", "new authorization", false},
		{"uppercase rejected", "NEW AUTHORIZATION", false},
		{"trailing space rejected", "New Authorization ", false},
		{"empty rejected", "", false},
		{"unknown rejected", "Discharged", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidStatus(tt.input); got != tt.want {
				t.Errorf("ValidStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		ok    bool
	}{
		{"iso", "2024-03-20", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), true},
		{"us short", "3/5/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"us padded", "03/05/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), true},
		{"surrounding whitespace", "  2024-03-20  ", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"garbage", "March 20th", time.Time{}, false},
		{"iso with time", "2024-03-20T10:00:00Z", time.Time{}, false},
		{"impossible day", "2024-02-30", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUnits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		ok    bool
	}{
		{"zero", "0", 0, true},
		{"mid range", "120", 120, true},
		{"at cap", "960", 960, true},
		{"over cap", "961", 0, false},
		{"way over cap", "1000", 0, false},
		{"negative", "-1", 0, false},
		{"not a number", "abc", 0, false},
		{"decimal", "12.5", 0, false},
		{"empty", "", 0, false},
		{"whitespace only", "  ", 0, false},
		{"padded", " 42 ", 42, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseUnits(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseUnits(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseUnits(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Candidate{
		Name:         "John Doe",
		Clinician:    "Dr. Smith",
		AssignedDate: "2024-03-20",
		UnitsUsed:    "120",
		Status:       "New Authorization",
	}

	t.Run("valid candidate", func(t *testing.T) {
		c, errs := Validate(valid)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if c.ID == "" {
			t.Error("expected generated id")
		}
		if c.Name != "John Doe" || c.Clinician != "Dr. Smith" {
			t.Errorf("unexpected fields: %+v", c)
		}
		if c.UnitsUsed != 120 {
			t.Errorf("UnitsUsed = %d, want 120", c.UnitsUsed)
		}
		if c.Status != StatusNewAuthorization {
			t.Errorf("Status = %q, want %q", c.Status, StatusNewAuthorization)
		}
		want := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
		if !c.AssignedDate.Equal(want) {
			t.Errorf("AssignedDate = %v, want %v", c.AssignedDate, want)
		}
		if c.LastUpdated.IsZero() {
			t.Error("expected LastUpdated to be set")
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		cand := valid
		cand.Name = "  John Doe  "
		c, errs := Validate(cand)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		if c.Name != "John Doe" {
			t.Errorf("Name = %q, want trimmed", c.Name)
		}
	})

	t.Run("missing fields reported first", func(t *testing.T) {
		_, errs := Validate(Candidate{UnitsUsed: "9999", Status: "bogus"})
		if len(errs) == 0 {
			t.Fatal("expected errors")
		}
		for i := 0; i < 3; i++ {
			if errs[i].Kind != ErrMissingField {
				t.Errorf("errs[%d].Kind = %q, want %q", i, errs[i].Kind, ErrMissingField)
			}
		}
	})

	t.Run("error ordering units then status then date", func(t *testing.T) {
		cand := valid
		cand.UnitsUsed = "1000"
		cand.Status = "new authorization"
		cand.AssignedDate = "someday"
		_, errs := Validate(cand)
		wantKinds := []ErrorKind{ErrInvalidUnits, ErrInvalidStatus, ErrInvalidDate}
		if len(errs) != len(wantKinds) {
			t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(wantKinds))
		}
		for i, k := range wantKinds {
			if errs[i].Kind != k {
				t.Errorf("errs[%d].Kind = %q, want %q", i, errs[i].Kind, k)
			}
		}
	})

	t.Run("units over cap", func(t *testing.T) {
		cand := valid
		cand.UnitsUsed = "1000"
		_, errs := Validate(cand)
		if len(errs) != 1 || errs[0].Kind != ErrInvalidUnits {
			t.Fatalf("got %v, want single invalid_units error", errs)
		}
	})

	t.Run("status is case sensitive", func(t *testing.T) {
		cand := valid
		cand.Status = "new authorization"
		_, errs := Validate(cand)
		if len(errs) != 1 || errs[0].Kind != ErrInvalidStatus {
			t.Fatalf("got %v, want single invalid_status error", errs)
		}
	})
}

func TestTouch(t *testing.T) {
	c := New("A", "B", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 10, StatusNewlyAssigned)
	before := c.LastUpdated
	time.Sleep(time.Millisecond)
	c.Touch()
	if !c.LastUpdated.After(before) {
		t.Errorf("LastUpdated not advanced: %v -> %v", before, c.LastUpdated)
	}
}
