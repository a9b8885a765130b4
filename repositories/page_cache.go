package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	jsoniter "github.com/json-iterator/go"

	"stallion/domain"
	"stallion/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// PageCacheRepository keeps fetched pages in badger for ttl.
// The fingerprint of a page outlives it, so a refetch can tell whether the page changed.
type PageCacheRepository struct {
	db  *badger.DB
	log *slog.Logger
	ttl time.Duration
}

func NewPageCacheRepository(db *badger.DB, log *slog.Logger, ttl time.Duration) PageCacheRepository {
	return PageCacheRepository{db: db, log: log, ttl: ttl}
}

func pageKey(url string) []byte {
	return []byte(fmt.Sprintf("page:%s", url))
}

func fingerprintKey(url string) []byte {
	return []byte(fmt.Sprintf("fp:%s", url))
}

// Get returns the cached page, or errors.ErrCacheMiss along with the last known fingerprint.
func (r PageCacheRepository) Get(url string) (domain.Page, error) {
	var page domain.Page
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(pageKey(url))
		if err == nil {
			return item.Value(func(v []byte) error {
				return json.Unmarshal(v, &page)
			})
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		fp, err := txn.Get(fingerprintKey(url))
		switch {
		case err == nil:
			if err := fp.Value(func(v []byte) error {
				page.Fingerprint = string(v)
				return nil
			}); err != nil {
				return err
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}
		return errors.ErrCacheMiss
	})
	return page, err
}

func (r PageCacheRepository) Put(page domain.Page) error {
	bytes, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(pageKey(page.URL), bytes)
		if r.ttl > 0 {
			entry = entry.WithTTL(r.ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return err
		}
		return txn.Set(fingerprintKey(page.URL), []byte(page.Fingerprint))
	})
}

// Purge drops every cached page. Fingerprints are kept.
func (r PageCacheRepository) Purge() (int, error) {
	var keys [][]byte
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()
		prefix := []byte("page:")
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()
	for _, key := range keys {
		if err := wb.Delete(key); err != nil {
			return 0, err
		}
	}
	if err := wb.Flush(); err != nil {
		return 0, err
	}
	r.log.Debug("Page cache purged", "pages", len(keys))
	return len(keys), nil
}
