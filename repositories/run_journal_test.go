package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"stallion/domain"
)

func TestRunJournal_Latest_Returns_Newest_First(t *testing.T) {
	req := require.New(t)
	journal := NewRunJournalRepository(openBadger(t), slog.Default())
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	var runs []uuid.UUID
	for i := 0; i < 3; i++ {
		report := domain.NewBatchReport(uuid.New(), start.Add(time.Duration(i)*time.Hour))
		report.FinishedAt = report.StartedAt.Add(time.Minute)
		report.Total = 2
		report.Add(domain.Outcome{HorseID: "2019105219", Name: "イクイノックス", Status: domain.OutcomeSuccess})
		report.Add(domain.Outcome{HorseID: "2020103475", Status: domain.OutcomeFailed, Reason: "timeout"})
		req.NoError(journal.Save(report))
		runs = append(runs, report.RunID)
	}

	reports, err := journal.Latest(2)
	req.NoError(err)
	req.Len(reports, 2)
	req.Equal(runs[2], reports[0].RunID)
	req.Equal(runs[1], reports[1].RunID)
	req.Len(reports[0].Success, 1)
	req.Equal("timeout", reports[0].Failed[0].Reason)
	req.Equal(time.Minute, reports[0].Duration())
}

func TestRunJournal_Empty(t *testing.T) {
	req := require.New(t)
	journal := NewRunJournalRepository(openBadger(t), slog.Default())

	reports, err := journal.Latest(10)
	req.NoError(err)
	req.Empty(reports)
}
