package relations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"content-relations/core/storage"
	"content-relations/feature/relations/store"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ExportPrefix is the folder holding relation exports in the bucket.
const ExportPrefix = "exports/"

// ExportDocument is the JSON snapshot written to storage.
type ExportDocument struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Parents     []ExportedParent `json:"parents"`
}

// ExportedParent holds the relations of one parent.
type ExportedParent struct {
	ParentID  int                  `json:"parent_id"`
	Relations []store.RelationView `json:"relations"`
}

// Exporter writes relation snapshots to object storage.
type Exporter struct {
	client  storage.Client
	bucket  string
	region  string
	queries *store.Queries
	logger  *zap.Logger
	now     func() time.Time
}

// NewExporter creates an exporter writing into bucket.
func NewExporter(client storage.Client, bucket, region string, queries *store.Queries, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		client:  client,
		bucket:  bucket,
		region:  region,
		queries: queries,
		logger:  logger,
		now:     time.Now,
	}
}

// Export writes the relations of the parents to
// exports/relations-<timestamp>.json and returns the object key.
func (e *Exporter) Export(ctx context.Context, parentIDs []int) (string, error) {
	if e.client == nil {
		return "", fmt.Errorf("storage client is not available")
	}
	if e.queries == nil {
		return "", ErrNoDatabase
	}

	byParent, err := e.queries.ListByParents(ctx, parentIDs)
	if err != nil {
		return "", err
	}

	now := e.now().UTC()
	doc := ExportDocument{GeneratedAt: now, Parents: make([]ExportedParent, 0, len(byParent))}
	for parentID, views := range byParent {
		doc.Parents = append(doc.Parents, ExportedParent{ParentID: parentID, Relations: views})
	}
	sort.Slice(doc.Parents, func(i, j int) bool { return doc.Parents[i].ParentID < doc.Parents[j].ParentID })

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	if err := storage.EnsureBucket(ctx, e.client, e.bucket, e.region); err != nil {
		return "", err
	}

	key := fmt.Sprintf("%srelations-%s.json", ExportPrefix, now.Format("20060102T150405.000Z"))
	_, err = e.client.PutObject(ctx, e.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload export %s: %w", key, err)
	}

	e.logger.Info("Exported relations", zap.String("key", key), zap.Int("parents", len(doc.Parents)))
	return key, nil
}

// List returns the keys of the stored exports, newest first.
func (e *Exporter) List(ctx context.Context) ([]string, error) {
	if e.client == nil {
		return nil, fmt.Errorf("storage client is not available")
	}
	keys, err := storage.ListKeys(ctx, e.client, e.bucket, ExportPrefix)
	if err != nil {
		return nil, err
	}
	exports := keys[:0]
	for _, k := range keys {
		if strings.HasSuffix(k, ".json") {
			exports = append(exports, k)
		}
	}
	// Timestamped names sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(exports)))
	return exports, nil
}

// Prune removes all but the newest keep exports and returns the removed keys.
func (e *Exporter) Prune(ctx context.Context, keep int) ([]string, error) {
	exports, err := e.List(ctx)
	if err != nil {
		return nil, err
	}
	if keep < 0 {
		keep = 0
	}
	if len(exports) <= keep {
		return nil, nil
	}

	var removed []string
	for _, key := range exports[keep:] {
		if err := e.client.RemoveObject(ctx, e.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove export %s: %w", key, err)
		}
		removed = append(removed, key)
	}
	return removed, nil
}
