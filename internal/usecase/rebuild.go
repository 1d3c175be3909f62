package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rojanmagar2001/gitcopy/internal/ports"
)

// RebuildService runs the pre-flight check and then restores the work tree.
type RebuildService struct {
	rebuilder ports.Rebuilder
	log       logrus.FieldLogger
}

func NewRebuildService(r ports.Rebuilder, log logrus.FieldLogger) *RebuildService {
	return &RebuildService{rebuilder: r, log: log}
}

func (s *RebuildService) Run(ctx context.Context, workTree string) error {
	if err := s.rebuilder.Check(ctx); err != nil {
		return err
	}

	start := time.Now()
	if err := s.rebuilder.Rebuild(ctx, workTree); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"dir":     workTree,
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("work tree rebuilt")
	return nil
}
