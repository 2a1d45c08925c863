package system

import "testing"

func TestCheckBinaries(t *testing.T) {
	statuses := CheckBinaries([]Requirement{
		{Name: "shell", Command: "sh"},
		{Name: "ghost", Command: "definitely-not-a-real-binary-42", Optional: true},
	})

	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	if !statuses[0].Available {
		t.Error("sh should be available")
	}
	if statuses[1].Available {
		t.Error("nonexistent binary reported as available")
	}
	if statuses[1].Detail == "" {
		t.Error("unavailable binary should carry a detail message")
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Requirement: Requirement{Name: "ffmpeg"}, Available: false},
		{Requirement: Requirement{Name: "ffprobe", Optional: true}, Available: false},
		{Requirement: Requirement{Name: "sh"}, Available: true},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "ffmpeg" {
		t.Errorf("got %v, want [ffmpeg]", missing)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Error("worker count must be at least 1")
	}
}

func TestDefaultQuality(t *testing.T) {
	if got := DefaultQuality("libx264"); got != 23 {
		t.Errorf("libx264: got %d, want 23", got)
	}
	if got := DefaultQuality("h264_videotoolbox"); got != 75 {
		t.Errorf("videotoolbox: got %d, want 75", got)
	}
	if got := DefaultQuality("h264_nvenc"); got != 28 {
		t.Errorf("nvenc: got %d, want 28", got)
	}
}
