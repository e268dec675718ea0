package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/MezMezMezMez/P2/model"
	"github.com/MezMezMezMez/P2/runtime/instance"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// Service builds the final simulation report and optionally persists it.
type Service struct {
	fs afs.Service
}

// New creates a report service
func New() *Service {
	return &Service{fs: afs.New()}
}

// Build assembles the final report from instance snapshots and the remaining
// queue counts.
func (s *Service) Build(startedAt, finishedAt time.Time, snapshots []instance.Snapshot, remaining model.Counts) *model.Report {
	report := &model.Report{
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Remaining:  remaining,
		Instances:  make([]model.InstanceSummary, 0, len(snapshots)),
	}
	for _, snapshot := range snapshots {
		report.Instances = append(report.Instances, model.InstanceSummary{
			Slot:          snapshot.Slot,
			Active:        snapshot.Active,
			PartiesServed: snapshot.PartiesServed,
			BusySeconds:   snapshot.TotalBusy.Seconds(),
		})
		report.TotalParties += snapshot.PartiesServed
	}
	return report
}

// Upload converts the report to a map, drops empty fields and writes the
// YAML encoding to the destination URL (any scheme afs supports).
func (s *Service) Upload(ctx context.Context, URL string, report *model.Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	aMap := map[string]interface{}{}
	if err := toolbox.DefaultConverter.AssignConverted(&aMap, report); err != nil {
		return fmt.Errorf("failed to convert report: %w", err)
	}
	aMap = toolbox.DeleteEmptyKeys(aMap)
	data, err := yaml.Marshal(aMap)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload report to %s: %w", URL, err)
	}
	return nil
}
