//go:generate go run go.uber.org/mock/mockgen -source=run_journal.go -destination=../mocks/mock_run_journal_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"stallion/domain"
)

// RunKeyPrefix starts the key of every stored batch report.
const RunKeyPrefix = "run:"

type IRunJournalRepository interface {
	Save(report domain.BatchReport) error
	// Latest returns the most recent reports first.
	Latest(limit int) ([]domain.BatchReport, error)
}

type RunJournalRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewRunJournalRepository(db *badger.DB, log *slog.Logger) RunJournalRepository {
	return RunJournalRepository{db: db, log: log}
}

// Save stores the report under "run:{started_at_padded}:{run_id}" so that a prefix scan walks runs in time order.
func (r RunJournalRepository) Save(report domain.BatchReport) error {
	key := fmt.Sprintf("%s%019d:%s", RunKeyPrefix, report.StartedAt.UnixNano(), report.RunID)
	bytes, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

func (r RunJournalRepository) Latest(limit int) ([]domain.BatchReport, error) {
	var reports []domain.BatchReport
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(RunKeyPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Reverse iteration starts from the highest possible key of the prefix.
		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(reports) == limit {
				break
			}
			var report domain.BatchReport
			err := it.Item().Value(func(v []byte) error {
				return json.Unmarshal(v, &report)
			})
			if err != nil {
				return err
			}
			reports = append(reports, report)
		}
		return nil
	})
	return reports, err
}
