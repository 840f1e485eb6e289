// SPDX-License-Identifier: MIT
// Package attr: Table snapshots in an embedded badger database.
package attr

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// badgerLogger adapts zerolog to badger's Logger interface.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}

// OpenDB opens a snapshot database in dir, or in memory when dir is empty.
// The caller must Close it.
func OpenDB(dir string, log zerolog.Logger) (*badger.DB, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("attr: create snapshot directory %s: %w", dir, err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(badgerLogger{log: log.With().Str("component", "badger").Logger()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("attr: open snapshot database: %w", err)
	}

	return db, nil
}

// maxSnapshotRef bounds stored refs to the uint32 space of the connectivity
// models' live sets.
const maxSnapshotRef = math.MaxUint32

func snapshotPrefix(name string) []byte { return []byte("attr/" + name + "/") }
func columnsKey(name string) []byte     { return append(snapshotPrefix(name), "columns"...) }
func rowPrefix(name string) []byte      { return append(snapshotPrefix(name), "row/"...) }

func rowKey(name string, ref int) []byte {
	k := rowPrefix(name)
	return binary.BigEndian.AppendUint64(k, uint64(ref))
}

func encodeRow(vals []float64) []byte {
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}

	return buf
}

func decodeRow(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, fmt.Errorf("%w: row of %d bytes", ErrBadSnapshot, len(buf))
	}
	vals := make([]float64, len(buf)/8)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[8*i:]))
	}

	return vals, nil
}

// SaveSnapshot stores t under name, replacing any earlier snapshot.
func SaveSnapshot(db *badger.DB, name string, t *Table) error {
	if err := db.DropPrefix(snapshotPrefix(name)); err != nil {
		return fmt.Errorf("attr: drop snapshot %q: %w", name, err)
	}
	cols, err := json.Marshal(t.names)
	if err != nil {
		return fmt.Errorf("attr: encode columns: %w", err)
	}

	wb := db.NewWriteBatch()
	defer wb.Cancel()
	if err := wb.Set(columnsKey(name), cols); err != nil {
		return fmt.Errorf("attr: write columns: %w", err)
	}
	for ref, r := range t.rows {
		if r == nil {
			continue
		}
		if err := wb.Set(rowKey(name, ref), encodeRow(r.values)); err != nil {
			return fmt.Errorf("attr: write row %d: %w", ref, err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("attr: flush snapshot %q: %w", name, err)
	}

	return nil
}

// LoadSnapshot rebuilds the table stored under name.
// Returns ErrNoSnapshot or ErrBadSnapshot.
func LoadSnapshot(db *badger.DB, name string) (*Table, error) {
	t := &Table{index: make(map[string]int)}
	err := db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(columnsKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrNoSnapshot, name)
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &t.names); err != nil {
			return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
		}
		for i, n := range t.names {
			t.index[n] = i
		}

		prefix := rowPrefix(name)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			if len(key) != len(prefix)+8 {
				return fmt.Errorf("%w: row key %q", ErrBadSnapshot, key)
			}
			raw64 := binary.BigEndian.Uint64(key[len(prefix):])
			if raw64 > maxSnapshotRef {
				return fmt.Errorf("%w: row ref %d out of range", ErrBadSnapshot, raw64)
			}
			ref := int(raw64)
			raw, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			vals, err := decodeRow(raw)
			if err != nil {
				return err
			}
			if len(vals) != len(t.names) {
				return fmt.Errorf("%w: row %d has %d values for %d columns", ErrBadSnapshot, ref, len(vals), len(t.names))
			}
			t.AddRow(ref)
			copy(t.rows[ref].values, vals)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}
