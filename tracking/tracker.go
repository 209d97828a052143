package tracking

import (
	"sort"

	"github.com/LdDl/iou-go/iou"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Tracker is Multi-object tracker (MOT) which associates detections with
// Kalman-predicted tracks by any overlap metric of the IoU family.
// It is not safe for concurrent use.
type Tracker struct {
	// Max no match (max number of frames when object could not be found again)
	maxNoMatch int
	// Minimum metric value for a detection to be assigned to a track
	minScore float64
	// Metric used for association
	metric iou.Metric
	// Algorithm to use for matching
	algorithm iou.MatchingAlgorithm
	// Calculator evaluating the metric
	calculator *iou.Calculator
	// Time step for new tracks
	dt float64
	// Storage for tracked objects
	Objects map[uuid.UUID]*Track
}

// TrackerOption configures Tracker
type TrackerOption func(*Tracker)

// WithCalculator sets metric calculator (e.g. with legacy formulas or corner validation)
func WithCalculator(calculator *iou.Calculator) TrackerOption {
	return func(tracker *Tracker) {
		tracker.calculator = calculator
	}
}

// WithTimeStep sets Kalman filter time step for new tracks
func WithTimeStep(dt float64) TrackerOption {
	return func(tracker *Tracker) {
		tracker.dt = dt
	}
}

// NewDefaultTracker creates a default instance of Tracker.
// Default values: maxNoMatch=75, minScore=0.3, DIoU metric, Hungarian matching
func NewDefaultTracker(opts ...TrackerOption) *Tracker {
	return NewTracker(75, 0.3, iou.MetricDIoU, iou.MatchingAlgorithmHungarian, opts...)
}

// NewTracker creates a new instance of Tracker with specified parameters.
func NewTracker(maxNoMatch int, minScore float64, metric iou.Metric, algorithm iou.MatchingAlgorithm, opts ...TrackerOption) *Tracker {
	tracker := &Tracker{
		maxNoMatch: maxNoMatch,
		minScore:   minScore,
		metric:     metric,
		algorithm:  algorithm,
		calculator: iou.NewCalculator(),
		dt:         1.0,
		Objects:    make(map[uuid.UUID]*Track),
	}
	for _, opt := range opts {
		opt(tracker)
	}
	return tracker
}

// MatchObjects matches detections of the current frame with existing tracks.
// Unmatched detections become new tracks. Tracks unmatched for more than maxNoMatch frames are removed.
// Pairs for which the metric is undefined (degenerate boxes) are never matched.
func (tracker *Tracker) MatchObjects(detections []iou.Rectangle) error {
	// Predict next positions for all existing tracks via Kalman filter
	for _, track := range tracker.Objects {
		track.PredictNextPosition()
	}

	// Deterministic row order
	trackIDs := make([]uuid.UUID, 0, len(tracker.Objects))
	for id := range tracker.Objects {
		trackIDs = append(trackIDs, id)
	}
	sort.Slice(trackIDs, func(i, j int) bool {
		return trackIDs[i].String() < trackIDs[j].String()
	})

	scores, err := tracker.scoreMatrix(trackIDs, detections)
	if err != nil {
		return err
	}
	matches := iou.Match(scores, tracker.minScore, tracker.algorithm)

	matchedTracks := make(map[uuid.UUID]struct{}, len(matches))
	matchedDetections := make(map[int]struct{}, len(matches))
	for _, match := range matches {
		trackID := trackIDs[match[0]]
		err := tracker.Objects[trackID].Update(detections[match[1]])
		if err != nil {
			return errors.Wrapf(err, "Can't update track with id %s", trackID.String())
		}
		matchedTracks[trackID] = struct{}{}
		matchedDetections[match[1]] = struct{}{}
	}

	// Handle unmatched tracks and clean up ones not found for a long time
	for _, id := range trackIDs {
		if _, ok := matchedTracks[id]; ok {
			continue
		}
		track := tracker.Objects[id]
		track.incNoMatch()
		if track.GetNoMatchTimes() > tracker.maxNoMatch {
			delete(tracker.Objects, id)
		}
	}

	// Register unmatched detections as new tracks
	for i, detection := range detections {
		if _, ok := matchedDetections[i]; ok {
			continue
		}
		track := NewTrackWithTime(detection, tracker.dt)
		tracker.Objects[track.GetID()] = track
	}
	return nil
}

// scoreMatrix returns tracks x detections matrix of metric values on predicted boxes.
// Degenerate pairs get a score below minScore.
func (tracker *Tracker) scoreMatrix(trackIDs []uuid.UUID, detections []iou.Rectangle) ([][]float64, error) {
	noMatchScore := tracker.minScore - 1.0
	scores := make([][]float64, len(trackIDs))
	for i, id := range trackIDs {
		predicted := tracker.Objects[id].GetPredictedBBox()
		row := make([]float64, len(detections))
		for j, detection := range detections {
			score, err := tracker.calculator.Score(tracker.metric, predicted, detection)
			if errors.Is(err, iou.ErrDegenerateInput) {
				row[j] = noMatchScore
				continue
			}
			if err != nil {
				return nil, errors.Wrapf(err, "Can't score track %s against detection %d", id.String(), j)
			}
			row[j] = score
		}
		scores[i] = row
	}
	return scores, nil
}

// GetTracks returns tracks sorted by identifier
func (tracker *Tracker) GetTracks() []*Track {
	tracks := make([]*Track, 0, len(tracker.Objects))
	for _, track := range tracker.Objects {
		tracks = append(tracks, track)
	}
	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].GetID().String() < tracks[j].GetID().String()
	})
	return tracks
}
