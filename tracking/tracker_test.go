package tracking

import (
	"testing"

	"github.com/LdDl/iou-go/iou"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker(100, 0.3, iou.MetricGIoU, iou.MatchingAlgorithmGreedy, WithTimeStep(0.04))

	if tracker == nil {
		t.Fatal("NewTracker returned nil")
	}

	if tracker.maxNoMatch != 100 {
		t.Errorf("Expected maxNoMatch 100, got %d", tracker.maxNoMatch)
	}

	if tracker.minScore != 0.3 {
		t.Errorf("Expected minScore 0.3, got %f", tracker.minScore)
	}

	if tracker.metric != iou.MetricGIoU {
		t.Errorf("Expected metric giou, got %s", tracker.metric)
	}

	if tracker.dt != 0.04 {
		t.Errorf("Expected dt 0.04, got %f", tracker.dt)
	}
}

func TestNewDefaultTracker(t *testing.T) {
	tracker := NewDefaultTracker()

	if tracker.maxNoMatch != 75 {
		t.Errorf("Expected default maxNoMatch 75, got %d", tracker.maxNoMatch)
	}

	if tracker.minScore != 0.3 {
		t.Errorf("Expected default minScore 0.3, got %f", tracker.minScore)
	}

	if tracker.metric != iou.MetricDIoU || tracker.algorithm != iou.MatchingAlgorithmHungarian {
		t.Errorf("Expected default DIoU with Hungarian matching, got %s with %s", tracker.metric, tracker.algorithm)
	}
}

func TestTrackerBasicMatching(t *testing.T) {
	for _, metric := range iou.Metrics() {
		for _, algorithm := range []iou.MatchingAlgorithm{iou.MatchingAlgorithmHungarian, iou.MatchingAlgorithmGreedy} {
			tracker := NewTracker(5, 0.3, metric, algorithm)

			// First frame - two detections
			frame1 := []iou.Rectangle{
				iou.NewRectXYWH(10, 20, 30, 40),
				iou.NewRectXYWH(100, 200, 30, 40),
			}
			err := tracker.MatchObjects(frame1)
			if err != nil {
				t.Fatalf("%s/%s: frame 1 failed: %v", metric, algorithm, err)
			}
			if len(tracker.Objects) != 2 {
				t.Errorf("%s/%s: expected 2 objects after frame 1, got %d", metric, algorithm, len(tracker.Objects))
			}
			idsBefore := make(map[uuid.UUID]struct{})
			for id := range tracker.Objects {
				idsBefore[id] = struct{}{}
			}

			// Second frame - slightly moved detections (should match)
			frame2 := []iou.Rectangle{
				iou.NewRectXYWH(102, 202, 30, 40),
				iou.NewRectXYWH(12, 22, 31, 41),
			}
			err = tracker.MatchObjects(frame2)
			if err != nil {
				t.Fatalf("%s/%s: frame 2 failed: %v", metric, algorithm, err)
			}
			if len(tracker.Objects) != 2 {
				t.Errorf("%s/%s: expected 2 objects after frame 2, got %d", metric, algorithm, len(tracker.Objects))
			}
			for _, track := range tracker.GetTracks() {
				if _, ok := idsBefore[track.GetID()]; !ok {
					t.Errorf("%s/%s: unexpected new track %s", metric, algorithm, track.GetID())
				}
				if len(track.GetTrack()) != 2 {
					t.Errorf("%s/%s: object track should have 2 points, got %d", metric, algorithm, len(track.GetTrack()))
				}
			}
		}
	}
}

func TestTrackerRemovesLostTracks(t *testing.T) {
	tracker := NewTracker(2, 0.3, iou.MetricIoU, iou.MatchingAlgorithmHungarian)
	static := iou.NewRectXYWH(10, 20, 30, 40)

	err := tracker.MatchObjects([]iou.Rectangle{static, iou.NewRectXYWH(100, 200, 30, 40)})
	if err != nil {
		t.Fatalf("Frame 1 failed: %v", err)
	}

	expectedCounts := []int{2, 2, 1}
	for i, expected := range expectedCounts {
		err = tracker.MatchObjects([]iou.Rectangle{static})
		if err != nil {
			t.Fatalf("Frame %d failed: %v", i+2, err)
		}
		if len(tracker.Objects) != expected {
			t.Errorf("Expected %d objects after frame %d, got %d", expected, i+2, len(tracker.Objects))
		}
	}
}

func TestTrackerSkipsDegeneratePairs(t *testing.T) {
	tracker := NewTracker(5, 0.3, iou.MetricCIoU, iou.MatchingAlgorithmHungarian)

	err := tracker.MatchObjects([]iou.Rectangle{iou.NewRectXYWH(10, 20, 30, 40)})
	if err != nil {
		t.Fatalf("Frame 1 failed: %v", err)
	}

	// Zero height detection can't be scored by CIoU and becomes a new track
	frame2 := []iou.Rectangle{iou.NewRectXYWH(12, 22, 30, 40), iou.NewRectXYWH(200, 200, 30, 0)}
	err = tracker.MatchObjects(frame2)
	if err != nil {
		t.Fatalf("Frame 2 failed: %v", err)
	}
	if len(tracker.Objects) != 2 {
		t.Errorf("Expected 2 objects after frame 2, got %d", len(tracker.Objects))
	}
}

func TestTrackerCornerValidation(t *testing.T) {
	calculator := iou.NewCalculator(iou.WithCornerValidation(true))
	tracker := NewTracker(5, 0.3, iou.MetricIoU, iou.MatchingAlgorithmHungarian, WithCalculator(calculator))

	err := tracker.MatchObjects([]iou.Rectangle{iou.NewRectXYWH(10, 20, 30, 40)})
	if err != nil {
		t.Fatalf("Frame 1 failed: %v", err)
	}

	err = tracker.MatchObjects([]iou.Rectangle{iou.NewRect(40, 20, 10, 60)})
	if !errors.Is(err, iou.ErrMalformedRectangle) {
		t.Errorf("Expected ErrMalformedRectangle, got %v", err)
	}
}
