package archive

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeObjects struct {
	headErr   error
	created   int
	heads     int
	putKey    string
	putType   string
	putBody   string
	putBucket string
}

func (f *fakeObjects) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.heads++
	return &s3.HeadBucketOutput{}, f.headErr
}

func (f *fakeObjects) CreateBucket(context.Context, *s3.CreateBucketInput, ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.created++
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.putBucket, f.putKey, f.putType, f.putBody = *in.Bucket, *in.Key, *in.ContentType, string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3_Archive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "upload")
	if err := os.WriteFile(p, []byte("abc"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fake := &fakeObjects{headErr: errors.New("no such bucket")}
	a := &S3{client: fake, bucket: "uploads"}

	uri, err := a.Archive(context.Background(), p, "Slides.PPTX", "application/test")
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	// sha256("abc")
	wantKey := "documents/ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad.pptx"
	if fake.putKey != wantKey || uri != "s3://uploads/"+wantKey {
		t.Fatalf("unexpected key %q / uri %q", fake.putKey, uri)
	}
	if fake.putBody != "abc" || fake.putType != "application/test" || fake.putBucket != "uploads" {
		t.Fatalf("unexpected object %+v", fake)
	}
	if fake.created != 1 {
		t.Fatalf("expected bucket creation, got %d", fake.created)
	}

	if _, err := a.Archive(context.Background(), p, "again.pdf", "application/pdf"); err != nil {
		t.Fatalf("second archive: %v", err)
	}
	if fake.heads != 1 {
		t.Fatalf("bucket must be checked once, checked %d times", fake.heads)
	}
}

func TestObjectKey_NoExtension(t *testing.T) {
	if got := ObjectKey("ff", "README"); got != "documents/ff.bin" {
		t.Fatalf("unexpected key %q", got)
	}
}
