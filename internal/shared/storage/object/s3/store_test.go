package s3

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func newTestStore() *Store {
	cfg := aws.Config{
		Region:      "us-east-1",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	}
	client := s3.NewFromConfig(cfg)
	return &Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  "bucket",
		prefix:  "documents",
		ttl:     15 * time.Minute,
	}
}

func TestPresignUploadSignedHeadersExcludeContentLength(t *testing.T) {
	store := newTestStore()

	rawURL, err := store.PresignUpload(context.Background(), "user@example.com/1700000000000_file.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}

	signed := parsed.Query().Get("X-Amz-SignedHeaders")
	if signed == "" {
		t.Fatalf("expected X-Amz-SignedHeaders")
	}
	if strings.Contains(signed, "content-length") {
		t.Fatalf("unexpected content-length in signed headers: %s", signed)
	}
	if !strings.Contains(signed, "host") {
		t.Fatalf("expected host in signed headers: %s", signed)
	}
	if !strings.Contains(parsed.Path, "documents/") {
		t.Fatalf("expected configured prefix in path, got %s", parsed.Path)
	}
}

func TestPresignUploadEmbedsExpiry(t *testing.T) {
	store := newTestStore()

	rawURL, err := store.PresignUpload(context.Background(), "user/key.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if got := parsed.Query().Get("X-Amz-Expires"); got != "900" {
		t.Fatalf("expected 900s expiry, got %q", got)
	}
}

func TestApplyPrefix(t *testing.T) {
	cases := []struct {
		prefix, key, want string
	}{
		{"", "a/b", "a/b"},
		{"documents", "a/b", "documents/a/b"},
		{"documents", "/a/b", "documents/a/b"},
		{"documents", "", "documents"},
	}
	for _, tc := range cases {
		if got := applyPrefix(tc.prefix, tc.key); got != tc.want {
			t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tc.prefix, tc.key, got, tc.want)
		}
	}
}
