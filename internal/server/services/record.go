// Package services contains the record service: the orchestrator that
// binds the durable record store to the read-aside cache.
//
// The consistency protocol is cache-aside with invalidate-on-write:
// reads consult the cache first and repopulate it from the store on a
// miss; create writes the store only; update and delete write the store
// and then delete the cache entry. The cache never holds a value newer
// than the store.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/guidstore/internal/dbx"
	"github.com/dmitrijs2005/guidstore/internal/guidx"
	"github.com/dmitrijs2005/guidstore/internal/server/cache"
	sc "github.com/dmitrijs2005/guidstore/internal/server/config"
	"github.com/dmitrijs2005/guidstore/internal/server/models"
	"github.com/dmitrijs2005/guidstore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/guidstore/internal/server/validation"
)

// timeNow is a seam for tests that assert the default expiry.
var timeNow = time.Now

// RecordService implements the create/read/update/delete/list
// operations over the store and cache. It holds no locks; per-key
// correctness comes from the store's transactional guarantees and the
// invalidation protocol.
type RecordService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	cache  cache.Cache
	config *sc.Config
}

func NewRecordService(db *sql.DB, repos repomanager.RepositoryManager, c cache.Cache, config *sc.Config) *RecordService {
	return &RecordService{
		db:     db,
		repos:  repos,
		cache:  c,
		config: config,
	}
}

// Create validates the supplied fields, resolves the guid (caller's
// value if given, a fresh one otherwise) and persists the record. The
// cache is deliberately left untouched: a create is not a read, and a
// failed create has cached nothing that could go stale.
func (s *RecordService) Create(ctx context.Context, guid string, patch models.RecordPatch) (*models.Record, error) {

	if guid != "" {
		if err := validation.ValidateGUID(guid); err != nil {
			return nil, err
		}
	}
	if err := validation.ValidateRecord(patch, false); err != nil {
		return nil, err
	}

	if guid == "" {
		guid = guidx.New()
	}

	expire := timeNow().Add(s.config.DefaultExpiry).Unix()
	if patch.Expire != nil {
		expire = *patch.Expire
	}

	rec := &models.Record{GUID: guid, User: *patch.User, Expire: expire}

	return s.repos.Records(s.db).Create(ctx, rec)
}

// Read serves a cache hit without consulting the store; on a miss it
// falls through to the store and populates the cache best-effort. A
// hit therefore reflects store state no older than the most recent
// invalidation of the key.
func (s *RecordService) Read(ctx context.Context, guid string) (*models.Record, error) {

	if snapshot, err := s.cache.Get(ctx, guid); err == nil {
		rec := &models.Record{}
		if err := json.Unmarshal(snapshot, rec); err == nil {
			return rec, nil
		}
		// undecodable snapshot: drop it and fall through to the store
		_ = s.cache.Delete(ctx, guid)
	}

	rec, err := s.repos.Records(s.db).Get(ctx, guid)
	if err != nil {
		return nil, err
	}

	if snapshot, err := json.Marshal(rec); err == nil {
		_ = s.cache.Set(ctx, guid, snapshot)
	}

	return rec, nil
}

// Update applies the supplied fields inside a transaction (row-locked
// read, then write) and invalidates the cache entry. Invalidation, not
// refresh: re-caching here could race a concurrent read and pin a
// stale snapshot.
func (s *RecordService) Update(ctx context.Context, guid string, patch models.RecordPatch) (*models.Record, error) {

	if err := validation.ValidateRecord(patch, true); err != nil {
		return nil, err
	}

	var updated *models.Record

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Records(tx)

		rec, err := repo.GetForUpdate(ctx, guid)
		if err != nil {
			return err
		}

		if patch.User != nil {
			rec.User = *patch.User
		}
		if patch.Expire != nil {
			rec.Expire = *patch.Expire
		}

		updated, err = repo.Update(ctx, rec)
		return err
	})

	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, guid)

	return updated, nil
}

// Delete removes the record from the store, then invalidates the cache
// entry.
func (s *RecordService) Delete(ctx context.Context, guid string) error {

	if err := s.repos.Records(s.db).Delete(ctx, guid); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, guid)

	return nil
}

// List returns every record straight from the store; the per-key cache
// does not apply to a collection scan.
func (s *RecordService) List(ctx context.Context) ([]*models.Record, error) {
	return s.repos.Records(s.db).List(ctx)
}
