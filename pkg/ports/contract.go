package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/automata/pkg/domain"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore implementation
// adheres to the defined interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	reportID := "contract-test-report-" + time.Now().Format("20060102150405")

	newReport := func(id string) *domain.RunReport {
		accepted := domain.TimelineSnapshot{
			State:    domain.AcceptState,
			Status:   domain.StatusAccepted,
			Input:    string(domain.Blank) + "0011",
			Output:   "1100",
			Memories: map[string]string{"s1": "#X"},
		}
		return &domain.RunReport{
			ID:         id,
			MachineID:  "flip",
			Input:      "0011",
			Result:     domain.ResultAccepted,
			Steps:      9,
			Halted:     true,
			Timelines:  []domain.TimelineSnapshot{accepted},
			Accepted:   &accepted,
			StartedAt:  time.Now().UTC().Truncate(time.Millisecond),
			FinishedAt: time.Now().UTC().Truncate(time.Millisecond),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		// 1. Create a report
		report := newReport(reportID)

		// 2. Save
		err := store.Save(ctx, report)
		require.NoError(t, err, "Save should not return error")

		// 3. Load
		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, report.MachineID, loaded.MachineID)
		assert.Equal(t, report.Result, loaded.Result)
		assert.Equal(t, report.Steps, loaded.Steps)
		require.NotNil(t, loaded.Accepted)
		assert.Equal(t, "1100", loaded.Accepted.Output)
		assert.Equal(t, "#X", loaded.Accepted.Memories["s1"])
		assert.True(t, report.StartedAt.Equal(loaded.StartedAt))
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		loaded.Timelines[0].Output = "mutated"

		again, err := store.Load(ctx, reportID)
		require.NoError(t, err)
		assert.Equal(t, "1100", again.Timelines[0].Output)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		// Setup
		err := store.Save(ctx, newReport(reportID))
		require.NoError(t, err)

		// Delete
		err = store.Delete(ctx, reportID)
		require.NoError(t, err, "Delete should not return error")

		// Verify gone
		_, err = store.Load(ctx, reportID)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		// Setup: Create 2 reports
		id1 := reportID + "-1"
		id2 := reportID + "-2"
		_ = store.Save(ctx, newReport(id1))
		_ = store.Save(ctx, newReport(id2))

		// Ensure cleanup
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		// List
		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
