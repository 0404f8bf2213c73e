package entity_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"melodygram/internal/entity"
	"melodygram/pkg/fsname"
)

func TestParseQuality(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  entity.Quality
	}{
		{name: "low", input: "low", want: entity.QualityLow},
		{name: "legacy128", input: "128", want: entity.QualityLow},
		{name: "medium", input: "medium", want: entity.QualityMedium},
		{name: "legacy192", input: "192", want: entity.QualityMedium},
		{name: "high", input: "high", want: entity.QualityHigh},
		{name: "legacy320", input: "320", want: entity.QualityHigh},
		{name: "best", input: "best", want: entity.QualityHigh},
		{name: "garbage", input: "ultra-mega", want: entity.QualityMedium},
		{name: "empty", input: "", want: entity.QualityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entity.ParseQuality(tt.input); got != tt.want {
				t.Fatalf("ParseQuality(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTrackSearchQuery(t *testing.T) {
	track := entity.Track{Name: "Shape of You ", Artist: " Ed Sheeran"}

	if got, want := track.SearchQuery(), "Shape of You Ed Sheeran"; got != want {
		t.Fatalf("SearchQuery() = %q, want %q", got, want)
	}
}

func TestTrackDurationString(t *testing.T) {
	track := entity.Track{DurationMillis: 233712}

	if got, want := track.DurationString(), "3:53"; got != want {
		t.Fatalf("DurationString() = %q, want %q", got, want)
	}
}

func TestNewExtractionJobNaming(t *testing.T) {
	workDir := t.TempDir()
	track := entity.Track{ID: "t1", Name: "Shape of You", Artist: "Ed Sheeran"}

	job := entity.NewExtractionJob(track, entity.QualityMedium, workDir, time.Minute)

	if filepath.Dir(job.OutputBase) != workDir {
		t.Fatalf("output base %q not under workspace %q", job.OutputBase, workDir)
	}

	base := filepath.Base(job.OutputBase)
	if !strings.Contains(base, "Shape of You") || !strings.Contains(base, "Ed Sheeran") {
		t.Errorf("base name %q should embed track name and artist", base)
	}

	if job.OutputTemplate != job.OutputBase+".%(ext)s" {
		t.Errorf("got template %q, want base plus extension placeholder", job.OutputTemplate)
	}

	if !job.Deadline.After(time.Now()) {
		t.Errorf("deadline %v should be in the future", job.Deadline)
	}

	// Naming must be idempotent for the same track.
	again := entity.NewExtractionJob(track, entity.QualityMedium, workDir, time.Minute)
	if again.OutputBase != job.OutputBase {
		t.Errorf("naming not idempotent: %q vs %q", job.OutputBase, again.OutputBase)
	}
}

func TestNewExtractionJobDistinctTracks(t *testing.T) {
	workDir := t.TempDir()

	// Display names collide after sanitization; fingerprints must not.
	a := entity.Track{ID: "a", Name: "AC/DC", Artist: "Band"}
	b := entity.Track{ID: "b", Name: "AC?DC", Artist: "Band"}

	jobA := entity.NewExtractionJob(a, entity.QualityHigh, workDir, time.Minute)
	jobB := entity.NewExtractionJob(b, entity.QualityHigh, workDir, time.Minute)

	if jobA.OutputBase == jobB.OutputBase {
		t.Fatalf("distinct tracks share output base %q", jobA.OutputBase)
	}

	// Names longer than the filename cap and differing only at the tail:
	// capping must never cut the fingerprint off the end.
	long := strings.Repeat("a", 250)
	c := entity.Track{ID: "c", Name: long + "one", Artist: "Band"}
	d := entity.Track{ID: "d", Name: long + "two", Artist: "Band"}

	jobC := entity.NewExtractionJob(c, entity.QualityHigh, workDir, time.Minute)
	jobD := entity.NewExtractionJob(d, entity.QualityHigh, workDir, time.Minute)

	if jobC.OutputBase == jobD.OutputBase {
		t.Fatalf("long-titled distinct tracks share output base %q", jobC.OutputBase)
	}

	for _, job := range []entity.ExtractionJob{jobC, jobD} {
		base := filepath.Base(job.OutputBase)
		if !strings.HasSuffix(base, "]") {
			t.Errorf("base %q lost its fingerprint suffix", base)
		}

		if n := len([]rune(base)); n > fsname.MaxLen {
			t.Errorf("base is %d runes, want at most %d", n, fsname.MaxLen)
		}
	}
}
