package uploads

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	// MaxImagesPerEntity bounds the working set of a product/project gallery.
	MaxImagesPerEntity = 10
	// MaxImageSizeBytes is the per-file selection-time limit (10MB).
	MaxImageSizeBytes = 10 << 20
)

// ImageRef is one entry of a gallery working set: either an already-stored
// public URL or a newly selected file pending upload. Exactly one is set.
type ImageRef struct {
	URL  string
	File *multipart.FileHeader
}

// Batch reconciles a mixed set of kept URLs and pending files into a final
// ordered URL list.
type Batch struct {
	refs []ImageRef
}

// NewBatch keeps the existing URLs in their current order and appends the
// pending files after them.
func NewBatch(existing []string, files []*multipart.FileHeader) Batch {
	refs := make([]ImageRef, 0, len(existing)+len(files))
	for _, u := range existing {
		if strings.TrimSpace(u) != "" {
			refs = append(refs, ImageRef{URL: u})
		}
	}
	for _, fh := range files {
		refs = append(refs, ImageRef{File: fh})
	}
	return Batch{refs: refs}
}

func (b Batch) Count() int { return len(b.refs) }

// Validate enforces the selection-time constraints before anything is
// uploaded: total count, per-file size, and a sniffed image MIME type.
// Violations reject the whole batch with a message.
func (b Batch) Validate() error {
	if len(b.refs) > MaxImagesPerEntity {
		return fmt.Errorf("maximum %d images allowed", MaxImagesPerEntity)
	}
	for _, ref := range b.refs {
		if ref.File == nil {
			continue
		}
		if ref.File.Size > MaxImageSizeBytes {
			return fmt.Errorf("%s is too large (max %dMB)", ref.File.Filename, MaxImageSizeBytes>>20)
		}
		ct, err := sniffContentType(ref.File)
		if err != nil {
			return err
		}
		if !strings.HasPrefix(ct, "image/") {
			return fmt.Errorf("%s is not an image", ref.File.Filename)
		}
	}
	return nil
}

// Resolve uploads every pending file concurrently and returns the final
// ordered URL list: kept URLs first, new uploads appended in input order.
// All-or-nothing: the first failed upload cancels the rest and the whole
// batch fails, so callers never persist a partial gallery. Cancelling ctx
// (request teardown) aborts in-flight uploads.
func (b Batch) Resolve(ctx context.Context, store ObjectStorage, folder string) ([]string, error) {
	kept := make([]string, 0, len(b.refs))
	pending := make([]*multipart.FileHeader, 0, len(b.refs))
	for _, ref := range b.refs {
		if ref.File != nil {
			pending = append(pending, ref.File)
		} else {
			kept = append(kept, ref.URL)
		}
	}

	objs, err := UploadAll(ctx, store, folder, pending)
	if err != nil {
		return nil, err
	}
	for _, obj := range objs {
		kept = append(kept, obj.URL)
	}
	return kept, nil
}

// UploadAll fans out one upload per file and joins on all of them. Results
// keep the input order. The first failure cancels the remaining uploads
// and fails the whole call.
func UploadAll(ctx context.Context, store ObjectStorage, folder string, files []*multipart.FileHeader) ([]*StoredObject, error) {
	objs := make([]*StoredObject, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		i, fh := i, fh // per-iteration copies; required while go.mod targets go < 1.22
		g.Go(func() error {
			obj, err := store.UploadFile(gctx, folder, fh)
			if err != nil {
				return err
			}
			objs[i] = obj
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return objs, nil
}

// sniffContentType detects the real MIME type from the first 512 bytes
// rather than trusting the client-sent header.
func sniffContentType(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return "", fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return strings.ToLower(http.DetectContentType(buf[:n])), nil
}
