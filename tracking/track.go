package tracking

import (
	"math"

	"github.com/LdDl/iou-go/iou"
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultMaxTrackLen = 150
)

// Track is a tracked box smoothed by 8-D Kalman filter.
// State vector: [cx, cy, w, h, vx, vy, vw, vh] - center position, size, and velocities.
type Track struct {
	id            uuid.UUID
	currentBBox   iou.Rectangle
	predictedBBox iou.Rectangle
	history       []iou.Point
	maxTrackLen   int
	noMatchTimes  int
	filter        *kalman_filter.KalmanBBox
}

// NewTrackWithTime creates a new Track with specified time step.
func NewTrackWithTime(box iou.Rectangle, dt float64) *Track {
	center := box.Center()

	// Kalman filter props
	uCx := 1.0
	uCy := 1.0
	uW := 0.0
	uH := 0.0
	stdDevA := 2.0
	stdDevMCx := 0.1
	stdDevMCy := 0.1
	stdDevMW := 0.1
	stdDevMH := 0.1
	kf := kalman_filter.NewKalmanBBox(
		dt, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(center.X, center.Y, box.Width(), box.Height()),
	)

	track := Track{
		id:            uuid.New(),
		currentBBox:   box,
		predictedBBox: box,
		history:       make([]iou.Point, 0, defaultMaxTrackLen),
		maxTrackLen:   defaultMaxTrackLen,
		noMatchTimes:  0,
		filter:        kf,
	}
	track.history = append(track.history, center)
	return &track
}

// NewTrack creates a new Track with default time step of 1.0.
func NewTrack(box iou.Rectangle) *Track {
	return NewTrackWithTime(box, 1.0)
}

// GetID returns track's identifier
func (track *Track) GetID() uuid.UUID {
	return track.id
}

// GetBBox returns track's current (smoothed) bounding box
func (track *Track) GetBBox() iou.Rectangle {
	return track.currentBBox
}

// GetPredictedBBox returns bounding box predicted by Kalman filter
func (track *Track) GetPredictedBBox() iou.Rectangle {
	return track.predictedBBox
}

// GetDiagonal returns length of current bounding box diagonal
func (track *Track) GetDiagonal() float64 {
	return math.Hypot(track.currentBBox.Width(), track.currentBBox.Height())
}

// GetTrack returns centers history. Be careful: this is not copy of history, but reference to it
func (track *Track) GetTrack() []iou.Point {
	return track.history
}

// GetMaxTrackLen returns max history length
func (track *Track) GetMaxTrackLen() int {
	return track.maxTrackLen
}

// SetMaxTrackLen sets max history length
func (track *Track) SetMaxTrackLen(newMaxTrackLen int) {
	track.maxTrackLen = newMaxTrackLen
}

// GetNoMatchTimes returns number of consecutive frames without match
func (track *Track) GetNoMatchTimes() int {
	return track.noMatchTimes
}

func (track *Track) incNoMatch() {
	track.noMatchTimes++
}

// PredictNextPosition executes Kalman filter prediction step
func (track *Track) PredictNextPosition() {
	track.filter.Predict()
	track.predictedBBox = rectFromState(track.filter.GetState())
}

// Update executes Kalman filter update step with measured box
func (track *Track) Update(box iou.Rectangle) error {
	center := box.Center()
	err := track.filter.Update(center.X, center.Y, box.Width(), box.Height())
	if err != nil {
		return errors.Wrap(err, "Can't update object tracker")
	}
	cx, cy, w, h := track.filter.GetState()
	track.currentBBox = rectFromState(cx, cy, w, h)
	track.noMatchTimes = 0

	track.history = append(track.history, iou.NewPoint(cx, cy))
	if len(track.history) > track.maxTrackLen {
		track.history = track.history[1:]
	}
	return nil
}

// GetVelocity returns current velocity estimates (vx, vy, vw, vh) from Kalman filter
func (track *Track) GetVelocity() (float64, float64, float64, float64) {
	return track.filter.GetVelocity()
}

func rectFromState(cx, cy, w, h float64) iou.Rectangle {
	return iou.NewRect(cx-w/2.0, cy-h/2.0, cx+w/2.0, cy+h/2.0)
}
