package usecase

import (
	"context"
	"log/slog"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// FetchDataInput contains the parameters for fetching tracker data.
type FetchDataInput struct{}

// FetchDataOutput contains the result of a fetch.
type FetchDataOutput struct {
	Issues     int // number of issues written
	Milestones int // number of milestones written
}

// FetchData snapshots issues and milestones from the tracker API into
// the local data files the sync and docs runs consume.
type FetchData struct {
	tracker domain.TrackerClient
	sink    domain.RecordSink
	logger  *slog.Logger
}

// NewFetchData creates a new FetchData use case.
func NewFetchData(tracker domain.TrackerClient, sink domain.RecordSink, logger *slog.Logger) *FetchData {
	return &FetchData{tracker: tracker, sink: sink, logger: logger}
}

// Execute fetches all records and persists them as snapshot files.
func (uc *FetchData) Execute(ctx context.Context, _ FetchDataInput) (*FetchDataOutput, error) {
	issues, err := uc.tracker.FetchIssues(ctx)
	if err != nil {
		return nil, err
	}
	milestones, err := uc.tracker.FetchMilestones(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.sink.Write(issues, milestones); err != nil {
		return nil, err
	}

	uc.logger.Info("tracker snapshot written",
		"issues", len(issues), "milestones", len(milestones))
	return &FetchDataOutput{Issues: len(issues), Milestones: len(milestones)}, nil
}
