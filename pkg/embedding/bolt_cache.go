package embedding

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var bucketName = []byte("embeddings")

// BoltCache is a Client that keeps vectors in a BoltDB file and only forwards
// texts it has not seen to the wrapped client. Keys are scoped by model name so
// switching models never serves stale vectors.
type BoltCache struct {
	next   Client
	model  string
	db     *bolt.DB
	logger *zap.Logger
}

func NewBoltCache(path, model string, next Client, logger *zap.Logger) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltCache{
		next:   next,
		model:  model,
		db:     db,
		logger: logger,
	}, nil
}

func (c *BoltCache) GetEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	var missing []string
	var missingIdx []int

	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for i, t := range texts {
			if v := b.Get(c.key(t)); v != nil {
				result[i] = decodeVector(v)
				continue
			}
			missing = append(missing, t)
			missingIdx = append(missingIdx, i)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}

	if len(missing) == 0 {
		return result, nil
	}

	vectors, err := c.next.GetEmbeddings(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missing), len(vectors))
	}

	for j, idx := range missingIdx {
		result[idx] = vectors[j]
	}

	err = c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		for j, t := range missing {
			if err := b.Put(c.key(t), encodeVector(vectors[j])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// vectors are already computed, a failed write only costs a future miss
		c.logger.Warn("failed to write embedding cache", zap.Error(err))
	}

	c.logger.Debug("embedding_cache",
		zap.Int("hits", len(texts)-len(missing)),
		zap.Int("misses", len(missing)))

	return result, nil
}

// Close closes the BoltDB database
func (c *BoltCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func (c *BoltCache) key(text string) []byte {
	return []byte(c.model + "\x00" + text)
}

func encodeVector(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(x))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return v
}

var _ Client = (*BoltCache)(nil)
