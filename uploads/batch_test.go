package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 64)...)
	jpegBytes = append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 64)...)
)

type testFile struct {
	name    string
	content []byte
}

// makeFileHeaders runs the given files through a real multipart encode and
// decode so the headers behave exactly like request uploads.
func makeFileHeaders(t *testing.T, files []testFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		fw, err := w.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["images"]
}

type fakeStore struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
	failName string
}

func (f *fakeStore) UploadFile(ctx context.Context, folder string, fh *multipart.FileHeader) (*StoredObject, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if fh.Filename == f.failName {
		return nil, errors.New("upstream rejected " + fh.Filename)
	}
	f.mu.Lock()
	f.uploaded = append(f.uploaded, fh.Filename)
	f.mu.Unlock()
	name := folder + "/" + fh.Filename
	return &StoredObject{
		URL:        "https://cdn.test/" + name,
		ObjectName: name,
		MimeType:   "image/png",
		SizeBytes:  fh.Size,
	}, nil
}

func (f *fakeStore) DeleteObjects(ctx context.Context, objectNames []string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, objectNames...)
	f.mu.Unlock()
	return nil
}

func (f *fakeStore) ObjectNameFromURL(raw string) (string, error) {
	const prefix = "https://cdn.test/"
	if len(raw) <= len(prefix) {
		return "", errors.New("unknown url")
	}
	return raw[len(prefix):], nil
}

func TestNewBatchOrderAndCount(t *testing.T) {
	files := makeFileHeaders(t, []testFile{
		{"a.png", pngBytes},
		{"b.png", pngBytes},
	})
	b := NewBatch([]string{"https://cdn.test/old/1.png", "", "https://cdn.test/old/2.png"}, files)
	assert.Equal(t, 4, b.Count()) // the blank existing URL is dropped
}

func TestBatchValidateTooMany(t *testing.T) {
	existing := make([]string, MaxImagesPerEntity)
	for i := range existing {
		existing[i] = fmt.Sprintf("https://cdn.test/old/%d.png", i)
	}
	files := makeFileHeaders(t, []testFile{{"extra.png", pngBytes}})

	b := NewBatch(existing, files)
	err := b.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum 10 images")

	// exactly at the cap is fine
	assert.NoError(t, NewBatch(existing, nil).Validate())
}

func TestBatchValidateOversizeFile(t *testing.T) {
	// size gates before content sniffing, so the header alone is enough
	big := &multipart.FileHeader{Filename: "big.png", Size: MaxImageSizeBytes + 1}
	b := NewBatch(nil, []*multipart.FileHeader{big})
	err := b.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "big.png is too large")
}

func TestBatchValidateNonImage(t *testing.T) {
	files := makeFileHeaders(t, []testFile{
		{"a.png", pngBytes},
		{"notes.txt", []byte("plain text, definitely not pixels")},
	})
	b := NewBatch(nil, files)
	err := b.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notes.txt is not an image")
}

func TestBatchValidateSniffsNotTrustsExtension(t *testing.T) {
	files := makeFileHeaders(t, []testFile{{"disguised.png", []byte("<html><body>nope</body></html>")}})
	assert.Error(t, NewBatch(nil, files).Validate())

	files = makeFileHeaders(t, []testFile{{"photo.jpg", jpegBytes}})
	assert.NoError(t, NewBatch(nil, files).Validate())
}

func TestResolveKeepsExistingFirstThenUploadsInOrder(t *testing.T) {
	existing := []string{"https://cdn.test/products/ban/kept1.png", "https://cdn.test/products/ban/kept2.png"}
	files := makeFileHeaders(t, []testFile{
		{"n1.png", pngBytes},
		{"n2.png", pngBytes},
		{"n3.png", pngBytes},
	})

	store := &fakeStore{}
	b := NewBatch(existing, files)
	require.NoError(t, b.Validate())

	urls, err := b.Resolve(context.Background(), store, "products/ban")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.test/products/ban/kept1.png",
		"https://cdn.test/products/ban/kept2.png",
		"https://cdn.test/products/ban/n1.png",
		"https://cdn.test/products/ban/n2.png",
		"https://cdn.test/products/ban/n3.png",
	}, urls)
	assert.Len(t, store.uploaded, 3)
}

func TestResolveNoPendingFiles(t *testing.T) {
	store := &fakeStore{}
	b := NewBatch([]string{"https://cdn.test/a.png"}, nil)
	urls, err := b.Resolve(context.Background(), store, "products/x")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.test/a.png"}, urls)
	assert.Empty(t, store.uploaded)
}

func TestResolveAllOrNothing(t *testing.T) {
	files := makeFileHeaders(t, []testFile{
		{"ok1.png", pngBytes},
		{"bad.png", pngBytes},
		{"ok2.png", pngBytes},
	})

	store := &fakeStore{failName: "bad.png"}
	b := NewBatch([]string{"https://cdn.test/kept.png"}, files)

	urls, err := b.Resolve(context.Background(), store, "products/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.png")
	assert.Nil(t, urls)
}

func TestUploadAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := makeFileHeaders(t, []testFile{{"a.png", pngBytes}})
	objs, err := UploadAll(ctx, &fakeStore{}, "products/x", files)
	require.Error(t, err)
	assert.Nil(t, objs)
}

func TestUploadAllPreservesInputOrder(t *testing.T) {
	files := makeFileHeaders(t, []testFile{
		{"z.png", pngBytes},
		{"a.png", pngBytes},
		{"m.png", pngBytes},
	})

	objs, err := UploadAll(context.Background(), &fakeStore{}, "gallery", files)
	require.NoError(t, err)
	require.Len(t, objs, 3)
	assert.Equal(t, "gallery/z.png", objs[0].ObjectName)
	assert.Equal(t, "gallery/a.png", objs[1].ObjectName)
	assert.Equal(t, "gallery/m.png", objs[2].ObjectName)
}
