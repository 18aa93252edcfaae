package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vision-tools/cocoviz/internal/report"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *RunDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testRunReport(input string) *report.RunReport {
	r := report.NewRunReport(input, "/out", input+"/coco.json")
	r.Workers = 2
	r.Add(report.ImageResult{
		ImagePath:  input + "/a.png",
		OutputPath: "/out/a.png",
		Status:     report.StatusRendered,
		BoxesDrawn: 2,
	})
	r.Add(report.ImageResult{
		ImagePath: input + "/b.png",
		Status:    report.StatusSkipped,
		Detail:    "no matching annotations",
	})
	r.Finish()
	return r
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, "cocoviz.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false, EnableWAL: true}
		if _, err := Open(filepath.Join(t.TempDir(), "missing"), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})
}

func TestSaveRunAndGetRun(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	id, err := db.SaveRun(ctx, testRunReport("/data/in"))
	if err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected a positive run id, got %d", id)
	}

	got, err := db.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("failed to get run: %v", err)
	}
	if got == nil {
		t.Fatal("expected a stored run")
	}
	if got.InputPath != "/data/in" || got.Rendered != 1 || got.Skipped != 1 {
		t.Errorf("unexpected stored run: %+v", got)
	}
	if len(got.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(got.Results))
	}
	if got.Results[1].Detail != "no matching annotations" {
		t.Errorf("unexpected detail: %q", got.Results[1].Detail)
	}
}

func TestGetRunMissingID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)

	got, err := db.GetRun(context.Background(), 9999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for a missing run, got %+v", got)
	}
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	inputs := []string{"/first", "/second", "/third"}
	for _, in := range inputs {
		if _, err := db.SaveRun(ctx, testRunReport(in)); err != nil {
			t.Fatalf("failed to save run: %v", err)
		}
	}

	t.Run("newest first", func(t *testing.T) {
		runs, err := db.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		if runs[0].InputPath != "/third" || runs[2].InputPath != "/first" {
			t.Errorf("unexpected order: %+v", runs)
		}
		if runs[0].Rendered != 1 || runs[0].Skipped != 1 || runs[0].Failed != 0 {
			t.Errorf("unexpected summary counts: %+v", runs[0])
		}
		if runs[0].Timestamp.IsZero() {
			t.Error("expected a parsed timestamp")
		}
	})

	t.Run("limit caps the listing", func(t *testing.T) {
		runs, err := db.ListRuns(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 2 {
			t.Errorf("expected 2 runs, got %d", len(runs))
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "sqlite default",
			in:   "2026-08-31 10:20:30",
			want: time.Date(2026, 8, 31, 10, 20, 30, 0, time.UTC),
		},
		{
			name: "iso8601 with Z",
			in:   "2026-08-31T10:20:30Z",
			want: time.Date(2026, 8, 31, 10, 20, 30, 0, time.UTC),
		},
		{
			name: "unparseable returns zero",
			in:   "yesterday",
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := parseTimestamp(tt.in); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
