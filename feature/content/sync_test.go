package content

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"particle-wui/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func objectChan(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func TestPull(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wui").Return(true, nil)
	client.On("ListObjects", mock.Anything, "wui", minio.ListObjectsOptions{Prefix: "html/", Recursive: true}).
		Return(objectChan("html/index.html", "html/css/site.css", "html/css/", "html/../evil.txt"))
	client.On("GetObject", mock.Anything, "wui", "html/index.html", mock.Anything).Return(body("<h1>hi</h1>"), nil)
	client.On("GetObject", mock.Anything, "wui", "html/css/site.css", mock.Anything).Return(body("body{}"), nil)

	root := filepath.Join(t.TempDir(), "html")
	result, err := NewSyncer(client, "wui", "/html", zap.NewNop()).Pull(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"css/site.css", "index.html"}, result.Transferred)
	assert.Equal(t, []string{"../evil.txt"}, result.Skipped)

	got, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", string(got))

	_, err = os.Stat(filepath.Join(filepath.Dir(root), "evil.txt"))
	assert.True(t, os.IsNotExist(err))
	client.AssertExpectations(t)
}

func TestPull_MissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wui").Return(false, nil)

	_, err := NewSyncer(client, "wui", "html/", nil).Pull(context.Background(), t.TempDir())
	assert.Error(t, err)
	client.AssertNotCalled(t, "ListObjects", mock.Anything, mock.Anything, mock.Anything)
}

func TestPull_ListError(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wui").Return(true, nil)
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("access denied")}
	close(ch)
	client.On("ListObjects", mock.Anything, "wui", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := NewSyncer(client, "wui", "html/", nil).Pull(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestPull_DownloadErrorStopsListing(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wui").Return(true, nil)

	var listCtx context.Context
	client.On("ListObjects", mock.MatchedBy(func(ctx context.Context) bool {
		listCtx = ctx
		return true
	}), "wui", mock.Anything).Return(objectChan("html/index.html", "html/app.js"))
	client.On("GetObject", mock.Anything, "wui", "html/index.html", mock.Anything).
		Return(nil, errors.New("connection reset"))

	_, err := NewSyncer(client, "wui", "html/", nil).Pull(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	require.NotNil(t, listCtx)
	assert.ErrorIs(t, listCtx.Err(), context.Canceled)
	client.AssertNotCalled(t, "GetObject", mock.Anything, "wui", "html/app.js", mock.Anything)
}

func TestPush(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html": "<h1>hi</h1>",
		"js/app.js":  "1",
	})

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wui").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "wui", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "wui", "html/index.html", mock.Anything, int64(11),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "text/html" })).
		Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "wui", "html/js/app.js", mock.Anything, int64(1),
		mock.MatchedBy(func(o minio.PutObjectOptions) bool { return o.ContentType == "text/javascript" })).
		Return(minio.UploadInfo{}, nil)

	result, err := NewSyncer(client, "wui", "html/", zap.NewNop()).Push(context.Background(), root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "js/app.js"}, result.Transferred)
	assert.Empty(t, result.Removed)
	client.AssertExpectations(t)
}

func TestPush_Prune(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"index.html": "x"})

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wui").Return(true, nil)
	client.On("PutObject", mock.Anything, "wui", "html/index.html", mock.Anything, int64(1), mock.Anything).
		Return(minio.UploadInfo{}, nil)
	client.On("ListObjects", mock.Anything, "wui", mock.Anything).
		Return(objectChan("html/index.html", "html/old.css"))
	client.On("RemoveObject", mock.Anything, "wui", "html/old.css", mock.Anything).Return(nil)

	result, err := NewSyncer(client, "wui", "html/", nil).Push(context.Background(), root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.css"}, result.Removed)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func TestPush_UploadError(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"index.html": "x"})

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "wui").Return(true, nil)
	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("quota exceeded"))

	_, err := NewSyncer(client, "wui", "html/", nil).Push(context.Background(), root, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
