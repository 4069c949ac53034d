package natskv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tandoorclub/foh/internal/tables"
)

const (
	defaultBucket = "foh_table_state"
	tablesKey     = "restaurant.tables.all"
)

// TableStore keeps the whole table-state document under one key in a
// JetStream key-value bucket. KV revisions provide the compare-and-swap the
// table service relies on: Swap only succeeds when the caller still holds the
// latest revision, so racing read-modify-write cycles cannot overwrite each
// other.
type TableStore struct {
	config *apt.Config
	logger apt.Logger
	layout tables.Layout

	conn *nats.Conn
	kv   jetstream.KeyValue
}

func NewTableStore(config *apt.Config, layout tables.Layout, logger apt.Logger) *TableStore {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if layout.Count <= 0 {
		layout = tables.DefaultLayout()
	}
	return &TableStore{
		config: config,
		logger: logger,
		layout: layout,
	}
}

func (s *TableStore) Start(ctx context.Context) error {
	natsURL := s.config.GetStringOrDef("nats.url", nats.DefaultURL)

	conn, err := nats.Connect(natsURL)
	if err != nil {
		return fmt.Errorf("cannot connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return fmt.Errorf("cannot create JetStream context: %w", err)
	}

	bucket := s.config.GetStringOrDef("tables.bucket", defaultBucket)
	kv, err := js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      bucket,
		Description: "live front-of-house table state",
		History:     1,
	})
	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) {
			conn.Close()
			return fmt.Errorf("cannot ensure KV bucket %s: %w", bucket, err)
		}
		kv, err = js.KeyValue(ctx, bucket)
		if err != nil {
			conn.Close()
			return fmt.Errorf("cannot open KV bucket %s: %w", bucket, err)
		}
	}

	s.conn = conn
	s.kv = kv
	s.logger.Infof("Connected to NATS KV: %s, bucket: %s", natsURL, bucket)
	return nil
}

func (s *TableStore) Stop(ctx context.Context) error {
	if s.conn != nil {
		s.conn.Close()
		s.logger.Info("Disconnected from NATS KV")
	}
	return nil
}

// Load reads the full document and its revision. A missing key is initialized
// with the default floor plan; Create is atomic, so concurrent initializers
// race safely and the loser reads the winner's document.
func (s *TableStore) Load(ctx context.Context) (tables.Snapshot, error) {
	entry, err := s.kv.Get(ctx, tablesKey)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return s.initialize(ctx)
	}
	if err != nil {
		return tables.Snapshot{}, fmt.Errorf("%w: get %s: %v", tables.ErrStoreUnavailable, tablesKey, err)
	}
	return decodeSnapshot(entry)
}

// Swap writes the full document guarded by the revision the caller read.
func (s *TableStore) Swap(ctx context.Context, ts []tables.Table, revision uint64) (uint64, error) {
	data, err := json.Marshal(ts)
	if err != nil {
		return 0, fmt.Errorf("encode table state: %w", err)
	}

	rev, err := s.kv.Update(ctx, tablesKey, data, revision)
	if err != nil {
		if isWrongRevision(err) {
			return 0, tables.ErrRevisionConflict
		}
		return 0, fmt.Errorf("%w: update %s: %v", tables.ErrStoreUnavailable, tablesKey, err)
	}
	return rev, nil
}

func (s *TableStore) initialize(ctx context.Context) (tables.Snapshot, error) {
	defaults := tables.NewDefaultTables(s.layout.Count)
	data, err := json.Marshal(defaults)
	if err != nil {
		return tables.Snapshot{}, fmt.Errorf("encode default table state: %w", err)
	}

	rev, err := s.kv.Create(ctx, tablesKey, data)
	if err == nil {
		s.logger.Infof("Initialized table state with %d tables", s.layout.Count)
		return tables.Snapshot{Tables: defaults, Revision: rev}, nil
	}
	if !errors.Is(err, jetstream.ErrKeyExists) {
		return tables.Snapshot{}, fmt.Errorf("%w: create %s: %v", tables.ErrStoreUnavailable, tablesKey, err)
	}

	// Lost the initialization race; somebody else created the document.
	entry, err := s.kv.Get(ctx, tablesKey)
	if err != nil {
		return tables.Snapshot{}, fmt.Errorf("%w: get %s after create race: %v", tables.ErrStoreUnavailable, tablesKey, err)
	}
	return decodeSnapshot(entry)
}

func decodeSnapshot(entry jetstream.KeyValueEntry) (tables.Snapshot, error) {
	var ts []tables.Table
	if err := json.Unmarshal(entry.Value(), &ts); err != nil {
		return tables.Snapshot{}, fmt.Errorf("decode table state: %w", err)
	}
	return tables.Snapshot{Tables: ts, Revision: entry.Revision()}, nil
}

func isWrongRevision(err error) bool {
	var apiErr *jetstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence
	}
	return false
}
