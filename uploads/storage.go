// Package uploads owns image ingestion: object-storage drivers and the
// batched upload flow used by the product, project and service forms.
package uploads

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	gcstorage "cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// StoredObject is what the upload collaborator returns per file: the public
// URL plus enough metadata to delete the object later.
type StoredObject struct {
	URL        string `json:"url"`
	ObjectName string `json:"objectName"`
	MimeType   string `json:"mimeType"`
	SizeBytes  int64  `json:"sizeBytes"`
}

// ObjectStorage abstracts the bucket backend. Two drivers exist: Cloudflare
// R2 (default) and Google Cloud Storage, selected by STORAGE_DRIVER.
type ObjectStorage interface {
	UploadFile(ctx context.Context, folder string, fh *multipart.FileHeader) (*StoredObject, error)
	DeleteObjects(ctx context.Context, objectNames []string) error
	ObjectNameFromURL(raw string) (string, error)
}

// NewFromEnv builds the configured storage driver.
func NewFromEnv(ctx context.Context) (ObjectStorage, error) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STORAGE_DRIVER"))) {
	case "", "r2":
		return newR2Storage(ctx)
	case "gcs":
		return newGCSStorage(ctx)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", os.Getenv("STORAGE_DRIVER"))
	}
}

// objectName builds a unique key under the destination folder.
func objectName(folder, filename string) (string, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	name := fmt.Sprintf("%s/%d-%s%s", strings.Trim(folder, "/"), time.Now().UTC().Unix(), uuid.New().String(), ext)
	return name, ext
}

func contentTypeFor(fh *multipart.FileHeader, ext string) string {
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(ext)
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	return ct
}

// --- Cloudflare R2 ---

type r2Storage struct {
	client *s3.Client
	bucket string
	domain string
}

func newR2Storage(ctx context.Context) (*r2Storage, error) {
	bucket := os.Getenv("R2_BUCKET")
	accessKey := os.Getenv("R2_ACCESS_KEY_ID")
	secretKey := os.Getenv("R2_SECRET_ACCESS_KEY")
	endpoint := os.Getenv("R2_ENDPOINT")
	domain := strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/")

	if bucket == "" || accessKey == "" || secretKey == "" || endpoint == "" {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &r2Storage{client: client, bucket: bucket, domain: domain}, nil
}

func (r *r2Storage) UploadFile(ctx context.Context, folder string, fh *multipart.FileHeader) (*StoredObject, error) {
	name, ext := objectName(folder, fh.Filename)
	ct := contentTypeFor(fh, ext)

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(name),
		Body:        f,
		ContentType: aws.String(ct),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fh.Filename, err)
	}

	return &StoredObject{
		URL:        fmt.Sprintf("%s/%s/%s", r.domain, r.bucket, name),
		ObjectName: name,
		MimeType:   ct,
		SizeBytes:  fh.Size,
	}, nil
}

func (r *r2Storage) DeleteObjects(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(r.bucket),
			Key:    aws.String(obj),
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

func (r *r2Storage) ObjectNameFromURL(raw string) (string, error) {
	if r.domain != "" && strings.HasPrefix(raw, r.domain+"/"+r.bucket+"/") {
		return strings.TrimPrefix(raw, r.domain+"/"+r.bucket+"/"), nil
	}

	// r2.dev style: https://<bucket>.<account>.r2.dev/<object>
	for _, prefix := range []string{"https://", "http://"} {
		if strings.HasPrefix(raw, prefix) {
			withoutScheme := strings.TrimPrefix(raw, prefix)
			slash := strings.Index(withoutScheme, "/")
			if slash == -1 {
				return "", fmt.Errorf("no object path in url")
			}
			return withoutScheme[slash+1:], nil
		}
	}

	return "", fmt.Errorf("not a recognised R2 public url")
}

// --- Google Cloud Storage ---

type gcsStorage struct {
	client *gcstorage.Client
	bucket string
}

func newGCSStorage(ctx context.Context) (*gcsStorage, error) {
	bucket := os.Getenv("GCS_BUCKET")
	credentialsPath := os.Getenv("CREDENTIALS_FILE_LOCATION")
	if bucket == "" || credentialsPath == "" {
		return nil, fmt.Errorf("missing GCS env vars (GCS_BUCKET, CREDENTIALS_FILE_LOCATION)")
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	client, err := gcstorage.NewClient(ctx, option.WithCredentialsFile(filepath.Join(wd, credentialsPath)))
	if err != nil {
		return nil, err
	}
	return &gcsStorage{client: client, bucket: bucket}, nil
}

func (g *gcsStorage) UploadFile(ctx context.Context, folder string, fh *multipart.FileHeader) (*StoredObject, error) {
	name, ext := objectName(folder, fh.Filename)
	ct := contentTypeFor(fh, ext)

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = ct
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("upload close: %w", err)
	}

	return &StoredObject{
		URL:        fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, name),
		ObjectName: name,
		MimeType:   ct,
		SizeBytes:  fh.Size,
	}, nil
}

func (g *gcsStorage) DeleteObjects(ctx context.Context, objectNames []string) error {
	var firstErr error
	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		if err := g.client.Bucket(g.bucket).Object(obj).Delete(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}
	return firstErr
}

func (g *gcsStorage) ObjectNameFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	host := strings.ToLower(u.Host)
	path := strings.TrimPrefix(u.Path, "/")

	// style 1: storage.googleapis.com/<bucket>/<object>
	if host == "storage.googleapis.com" {
		prefix := g.bucket + "/"
		if !strings.HasPrefix(path, prefix) {
			return "", fmt.Errorf("url bucket mismatch")
		}
		return strings.TrimPrefix(path, prefix), nil
	}

	// style 2: <bucket>.storage.googleapis.com/<object>
	if host == strings.ToLower(g.bucket)+".storage.googleapis.com" {
		if path == "" {
			return "", fmt.Errorf("missing object path")
		}
		return path, nil
	}

	return "", fmt.Errorf("not a gcs public url")
}
