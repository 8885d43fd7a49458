package content

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"particle-wui/core/mime"
	"particle-wui/core/storage"
	"particle-wui/core/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// uploadWorkers bounds concurrent uploads during Push.
const uploadWorkers = 4

// Result lists what a Pull or Push did, as content-root relative paths.
type Result struct {
	Transferred []string `json:"transferred"`
	Skipped     []string `json:"skipped"`
	Removed     []string `json:"removed"`
}

func (r *Result) sort() {
	sort.Strings(r.Transferred)
	sort.Strings(r.Skipped)
	sort.Strings(r.Removed)
}

// Syncer copies the content root to and from a bucket prefix.
type Syncer struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewSyncer creates a syncer. prefix is normalized to end with a single slash.
func NewSyncer(client storage.Client, bucket, prefix string, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{
		client: client,
		bucket: bucket,
		prefix: storage.Config{Prefix: prefix}.NormalizedPrefix(),
		logger: logger,
	}
}

// Pull downloads every object under the prefix into root.
func (s *Syncer) Pull(ctx context.Context, root string) (*Result, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", s.bucket)
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create content root: %w", err)
	}

	// Stops the lister when the loop exits early.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := &Result{}
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}

		rel := strings.TrimPrefix(obj.Key, s.prefix)
		if rel == "" || strings.HasSuffix(rel, "/") {
			continue
		}

		target := filepath.Join(root, filepath.FromSlash(rel))
		if target == filepath.Clean(root) || !utils.Within(root, target) {
			s.logger.Warn("Skipping object outside content root", zap.String("key", obj.Key))
			result.Skipped = append(result.Skipped, rel)
			continue
		}

		if err := s.download(ctx, obj.Key, target); err != nil {
			return nil, err
		}
		result.Transferred = append(result.Transferred, rel)
	}

	result.sort()
	s.logger.Info("Content pulled",
		zap.String("bucket", s.bucket),
		zap.Int("files", len(result.Transferred)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (s *Syncer) download(ctx context.Context, key, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", key, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	tmp := target + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	if _, err := io.Copy(f, obj); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to download %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	return os.Rename(tmp, target)
}

// Push uploads every file in root. With prune, remote objects under the prefix that
// have no local counterpart are removed.
func (s *Syncer) Push(ctx context.Context, root string, prune bool) (*Result, error) {
	files, err := listFiles(root)
	if err != nil {
		return nil, err
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("Bucket created", zap.String("bucket", s.bucket))
	}

	result := &Result{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadWorkers)
	for _, rel := range files {
		g.Go(func() error {
			if err := s.upload(gctx, root, rel); err != nil {
				return err
			}
			mu.Lock()
			result.Transferred = append(result.Transferred, rel)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if prune {
		removed, err := s.prune(ctx, files)
		if err != nil {
			return nil, err
		}
		result.Removed = removed
	}

	result.sort()
	s.logger.Info("Content pushed",
		zap.String("bucket", s.bucket),
		zap.Int("files", len(result.Transferred)),
		zap.Int("removed", len(result.Removed)),
	)
	return result, nil
}

func (s *Syncer) upload(ctx context.Context, root, rel string) error {
	path := filepath.Join(root, filepath.FromSlash(rel))
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", rel, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", rel, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.prefix+rel, f, info.Size(), minio.PutObjectOptions{
		ContentType: mime.Resolve(rel),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", rel, err)
	}
	return nil
}

func (s *Syncer) prune(ctx context.Context, local []string) ([]string, error) {
	keep := make(map[string]struct{}, len(local))
	for _, rel := range local {
		keep[s.prefix+rel] = struct{}{}
	}

	var stale []string
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: s.prefix, Recursive: true})
	for obj := range objects {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		if _, ok := keep[obj.Key]; !ok {
			stale = append(stale, obj.Key)
		}
	}

	removed := make([]string, 0, len(stale))
	for _, key := range stale {
		if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", key, err)
		}
		removed = append(removed, strings.TrimPrefix(key, s.prefix))
	}
	return removed, nil
}
