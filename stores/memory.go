package stores

import (
	"bytes"
	"errors"
	"strings"
	"time"

	"github.com/nzai/bio"
	"github.com/nzai/nseq/constants"
	"github.com/nzai/nseq/quotes"
	"github.com/nzai/nseq/symbols"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// latest snapshot		key: snapshot:{symbol}		value: bio encoded snapshot
// search suggestions	key: suggest:{query}		value: bio encoded suggestions
// suggestions fetched	key: suggest-at:{query}		value: bio encoded time

const (
	snapshotPrefix  = "snapshot:"
	suggestPrefix   = "suggest:"
	suggestAtPrefix = "suggest-at:"
)

// Memory level db store kept in memory, gone with the process
type Memory struct {
	db *leveldb.DB
}

// NewMemory create in memory level db store
func NewMemory() (*Memory, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		zap.L().Error("open memory db failed", zap.Error(err))
		return nil, err
	}

	return &Memory{db}, nil
}

// Close close level db store
func (s Memory) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

// SaveSnapshot save snapshot as the latest of its symbol
func (s Memory) SaveSnapshot(snapshot *quotes.Snapshot) error {
	err := s.put([]byte(snapshotPrefix+snapshot.Symbol.String()), snapshot)
	if err != nil {
		zap.L().Error("save snapshot failed", zap.Error(err), zap.Stringer("symbol", snapshot.Symbol))
		return err
	}

	return nil
}

// LoadSnapshot load the latest snapshot of symbol
func (s Memory) LoadSnapshot(symbol symbols.Symbol) (*quotes.Snapshot, error) {
	snapshot := new(quotes.Snapshot)
	err := s.get([]byte(snapshotPrefix+symbol.String()), snapshot)
	if err != nil {
		if !errors.Is(err, constants.ErrRecordNotFound) {
			zap.L().Error("load snapshot failed", zap.Error(err), zap.Stringer("symbol", symbol))
		}
		return nil, err
	}

	return snapshot, nil
}

// Snapshots load the latest snapshot of every symbol
func (s Memory) Snapshots() ([]*quotes.Snapshot, error) {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(snapshotPrefix)), nil)
	defer iter.Release()

	var snapshots []*quotes.Snapshot
	for iter.Next() {
		snapshot := new(quotes.Snapshot)
		err := snapshot.Decode(bytes.NewReader(iter.Value()))
		if err != nil {
			zap.L().Error("decode snapshot failed", zap.Error(err), zap.ByteString("key", iter.Key()))
			return nil, err
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, iter.Error()
}

// SaveSuggestions save suggestions of query and when they were fetched
func (s Memory) SaveSuggestions(query string, suggestions quotes.Suggestions, at time.Time) error {
	query = suggestKey(query)

	value := new(bytes.Buffer)
	err := suggestions.Encode(value)
	if err != nil {
		zap.L().Error("encode suggestions failed", zap.Error(err), zap.String("query", query))
		return err
	}

	fetched := new(bytes.Buffer)
	_, err = bio.NewBinaryWriter(fetched).Time(at)
	if err != nil {
		zap.L().Error("encode suggestions time failed", zap.Error(err), zap.String("query", query))
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put([]byte(suggestPrefix+query), value.Bytes())
	batch.Put([]byte(suggestAtPrefix+query), fetched.Bytes())

	err = s.db.Write(batch, nil)
	if err != nil {
		zap.L().Error("save suggestions failed", zap.Error(err), zap.String("query", query))
		return err
	}

	return nil
}

// LoadSuggestions load suggestions of query, expired entries are removed and reported as not found
func (s Memory) LoadSuggestions(query string, now time.Time, ttl time.Duration) (quotes.Suggestions, error) {
	query = suggestKey(query)

	fetched, err := s.db.Get([]byte(suggestAtPrefix+query), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, constants.ErrRecordNotFound
		}

		zap.L().Error("load suggestions time failed", zap.Error(err), zap.String("query", query))
		return nil, err
	}

	at, err := bio.NewBinaryReader(bytes.NewReader(fetched)).Time()
	if err != nil {
		zap.L().Error("decode suggestions time failed", zap.Error(err), zap.String("query", query))
		return nil, err
	}

	if now.Sub(at) > ttl {
		batch := new(leveldb.Batch)
		batch.Delete([]byte(suggestPrefix + query))
		batch.Delete([]byte(suggestAtPrefix + query))

		err = s.db.Write(batch, nil)
		if err != nil {
			zap.L().Warn("remove expired suggestions failed", zap.Error(err), zap.String("query", query))
		}

		return nil, constants.ErrRecordNotFound
	}

	var suggestions quotes.Suggestions
	err = s.get([]byte(suggestPrefix+query), &suggestions)
	if err != nil {
		if !errors.Is(err, constants.ErrRecordNotFound) {
			zap.L().Error("load suggestions failed", zap.Error(err), zap.String("query", query))
		}
		return nil, err
	}

	return suggestions, nil
}

// put encode value under key
func (s Memory) put(key []byte, value quotes.Encoder) error {
	buffer := new(bytes.Buffer)
	err := value.Encode(buffer)
	if err != nil {
		return err
	}

	return s.db.Put(key, buffer.Bytes(), nil)
}

// get decode the value under key into value
func (s Memory) get(key []byte, value quotes.Decoder) error {
	buffer, err := s.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return constants.ErrRecordNotFound
		}
		return err
	}

	return value.Decode(bytes.NewReader(buffer))
}

func suggestKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
