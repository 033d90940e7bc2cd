package emission

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketState  = []byte("state")
	bucketEpochs = []byte("epochs")
	bucketNudges = []byte("nudges")
)

// stateKey is the single key under bucketState.
var stateKey = []byte("current")

// BoltStore is the bbolt-backed StateStore used by long-running deployments.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("emission: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("emission: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketState, bucketEpochs, bucketNudges} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("emission: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

var _ StateStore = (*BoltStore)(nil)

// epochKey encodes an epoch number as an 8-byte big-endian key for sorted
// storage.
func epochKey(e uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, e)
	return k
}

// periodKey encodes a period timestamp as an 8-byte big-endian key.
func periodKey(p int64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(p))
	return k
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// LoadState returns the persisted scheduler state.
func (s *BoltStore) LoadState() (*State, error) {
	var st *State
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketState).Get(stateKey)
		if data == nil {
			return ErrStateNotFound
		}
		decoded, err := DeserializeState(data)
		if err != nil {
			return err
		}
		st = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return st, nil
}

// SaveState persists the scheduler state.
func (s *BoltStore) SaveState(st *State) error {
	data, err := SerializeState(st)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketState).Put(stateKey, data); err != nil {
			return fmt.Errorf("boltstore: put state: %w", err)
		}
		return nil
	})
}

// PutEpoch appends an epoch record keyed by epoch number.
func (s *BoltStore) PutEpoch(rec *EpochRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: epoch record", ErrNilParam)
	}
	data, err := encodeGob(rec)
	if err != nil {
		return fmt.Errorf("emission: encode epoch record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketEpochs).Put(epochKey(rec.Epoch), data); err != nil {
			return fmt.Errorf("boltstore: put epoch record: %w", err)
		}
		return nil
	})
}

// GetEpoch returns the record for an epoch number.
func (s *BoltStore) GetEpoch(epoch uint64) (*EpochRecord, error) {
	var rec EpochRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketEpochs).Get(epochKey(epoch))
		if data == nil {
			return fmt.Errorf("%w: epoch %d", ErrEpochNotFound, epoch)
		}
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("emission: decode epoch record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// LastEpoch returns the record with the greatest epoch number.
func (s *BoltStore) LastEpoch() (*EpochRecord, error) {
	var rec EpochRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		_, data := tx.Bucket(bucketEpochs).Cursor().Last()
		if data == nil {
			return ErrEpochNotFound
		}
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("emission: decode epoch record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HasNudge reports whether the period is marked nudged.
func (s *BoltStore) HasNudge(period int64) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketNudges).Get(periodKey(period)) != nil
		return nil
	})
	return found, err
}

// ApplyNudge marks the period and persists the state in one transaction.
// The guard is re-checked inside the transaction so the at-most-once
// invariant holds across processes.
func (s *BoltStore) ApplyNudge(st *State, rec *NudgeRecord) error {
	if rec == nil {
		return fmt.Errorf("%w: nudge record", ErrNilParam)
	}
	stateData, err := SerializeState(st)
	if err != nil {
		return err
	}
	recData, err := encodeGob(rec)
	if err != nil {
		return fmt.Errorf("emission: encode nudge record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		nb := tx.Bucket(bucketNudges)
		if nb.Get(periodKey(rec.Period)) != nil {
			return fmt.Errorf("%w: period %d", ErrAlreadyNudged, rec.Period)
		}
		if err := nb.Put(periodKey(rec.Period), recData); err != nil {
			return fmt.Errorf("boltstore: put nudge record: %w", err)
		}
		if err := tx.Bucket(bucketState).Put(stateKey, stateData); err != nil {
			return fmt.Errorf("boltstore: put state: %w", err)
		}
		return nil
	})
}

// GetNudge returns the nudge record for a period.
func (s *BoltStore) GetNudge(period int64) (*NudgeRecord, error) {
	var rec NudgeRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketNudges).Get(periodKey(period))
		if data == nil {
			return fmt.Errorf("%w: period %d", ErrNudgeNotFound, period)
		}
		if err := decodeGob(data, &rec); err != nil {
			return fmt.Errorf("emission: decode nudge record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
