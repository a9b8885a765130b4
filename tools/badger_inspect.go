package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"

	"stallion/domain"
	"stallion/repositories"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	dbPath := flag.String("db", "data/badger", "Path to badger DB")
	// Batch reports by default, pages are large and better counted than dumped.
	prefix := flag.String("prefix", repositories.RunKeyPrefix, "Prefix to scan")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Expires", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			expires := "-"
			if at := item.ExpiresAt(); at > 0 {
				expires = time.Unix(int64(at), 0).Format(time.DateTime)
			}
			err := item.Value(func(v []byte) error {
				kind, detail := describe(key, v)
				table.Append([]string{key, kind, expires, detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func describe(key string, v []byte) (string, string) {
	switch {
	case strings.HasPrefix(key, repositories.RunKeyPrefix):
		var report domain.BatchReport
		if err := json.Unmarshal(v, &report); err != nil {
			// Keep going, one broken report should not hide the others
			return "RUN", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "RUN", fmt.Sprintf("total %d, ok %d, failed %d, skipped %d, %s",
			report.Total, len(report.Success), len(report.Failed), len(report.Skipped), report.Duration().Round(time.Second))
	case strings.HasPrefix(key, "claim:"):
		return "CLAIM", string(v)
	case strings.HasPrefix(key, "page:"):
		var page domain.Page
		if err := json.Unmarshal(v, &page); err != nil {
			return "PAGE", fmt.Sprintf("unmarshal error: %v", err)
		}
		return "PAGE", fmt.Sprintf("%d bytes, fetched %s", len(page.Body), page.FetchedAt.Format(time.DateTime))
	case strings.HasPrefix(key, "fp:"):
		return "FINGERPRINT", string(v)
	default:
		return "OTHER", fmt.Sprintf("%d bytes", len(v))
	}
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		// A crashed scraper leaves a value log to truncate, which needs a write open first
		if strings.Contains(err.Error(), "Log truncate required") {
			fmt.Println("Value log truncate required, repairing")

			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
