package main

import (
	"time"

	"github.com/sirupsen/logrus"
)

// viewportSync keeps the grain set in step with what the camera shows. All of
// its methods run on the update loop; request goroutines only ever reach it
// through the two queues.
type viewportSync struct {
	grainSize float64
	overscan  int

	service  canvasService
	slot     *fetchSlot
	grains   *GrainSet
	batches  *Queue[[]GrainRecord]
	statuses *Queue[FetchStatus]

	log logrus.FieldLogger
}

func newViewportSync(config *Config, service canvasService, log logrus.FieldLogger) *viewportSync {
	return &viewportSync{
		grainSize: config.GrainSize,
		overscan:  config.Overscan,
		service:   service,
		slot:      newFetchSlot(),
		grains:    NewGrainSet(),
		batches:   NewQueue[[]GrainRecord](),
		statuses:  NewQueue[FetchStatus](),
		log:       log,
	}
}

func (s *viewportSync) region(cam Camera) (Region, error) {
	return viewportToRegion(cam, s.grainSize, s.overscan)
}

// pollTick starts a region fetch when the slot allows it. It reports whether
// a request was issued.
func (s *viewportSync) pollTick(cam Camera) bool {
	region, err := s.region(cam)
	if err != nil {
		return false
	}
	if !s.slot.begin(region) {
		return false
	}
	s.log.WithField("region", region.String()).Debug("fetching region")
	s.service.FetchRegion(region, s.batches, s.statuses)
	return true
}

// frameTick applies everything that arrived since the last frame, then prunes
// to the current region. Batches go first so a fresh record inside the new
// region is never pruned against a stale one.
func (s *viewportSync) frameTick(cam Camera, now time.Time) {
	for _, status := range s.statuses.Drain() {
		s.slot.settle(status, now)
	}
	for _, batch := range s.batches.Drain() {
		s.grains.ApplyBatch(batch)
	}

	region, err := s.region(cam)
	if err != nil {
		return
	}
	if removed := s.grains.Prune(region); removed > 0 {
		s.log.WithFields(logrus.Fields{
			"region":  region.String(),
			"removed": removed,
		}).Debug("pruned grains")
	}
}

// paint submits color for the grain under screen point (sx, sy).
func (s *viewportSync) paint(cam Camera, sx, sy float64, color string) (point, error) {
	p, err := screenToGrain(cam, s.grainSize, sx, sy)
	if err != nil {
		return point{}, err
	}
	s.submit(p, color)
	return p, nil
}

func (s *viewportSync) submit(p point, color string) {
	s.service.SubmitEdit(GrainRecord{X: p.X, Y: p.Y, Color: color}, s.batches)
}

func (s *viewportSync) Status() FetchStatus {
	return s.slot.Status()
}

func (s *viewportSync) LastSuccess() time.Time {
	return s.slot.LastSuccess()
}

func (s *viewportSync) Grains() *GrainSet {
	return s.grains
}

func (s *viewportSync) close() {
	s.service.Close()
	s.batches.Close()
	s.statuses.Close()
}
