package assets

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Publisher uploads built island bundles to S3 under content-hashed names.
//
//	client := s3.NewFromConfig(cfg)
//	pub := assets.NewPublisher(client, "my-bucket", "islands/")
//
//	manifest := assets.NewManifest()
//	pub.PublishDir(ctx, manifest, "dist/islands")
type Publisher struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewPublisher creates a publisher for the given bucket and key prefix.
func NewPublisher(client *s3.Client, bucket, prefix string) *Publisher {
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Publish uploads one bundle under its fingerprinted name and records the
// mapping in the manifest. Returns the fingerprinted name.
func (p *Publisher) Publish(ctx context.Context, m *Manifest, name string, body []byte) (string, error) {
	fingerprinted := fingerprint(name, body)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(p.prefix + fingerprinted),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType(name)),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("assets: upload %s: %w", name, err)
	}

	m.Set(name, fingerprinted)
	return fingerprinted, nil
}

// PublishDir uploads every regular file under dir, then the manifest
// itself as manifest.json at the key prefix.
func (p *Publisher) PublishDir(ctx context.Context, m *Manifest, dir string) error {
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = p.Publish(ctx, m, filepath.ToSlash(rel), body)
		return err
	})
	if err != nil {
		return err
	}
	return p.PublishManifest(ctx, m)
}

// PublishManifest uploads the manifest as manifest.json. The manifest is
// mutable between deploys and must not be cached long.
func (p *Publisher) PublishManifest(ctx context.Context, m *Manifest) error {
	body, err := m.MarshalJSON()
	if err != nil {
		return err
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(p.prefix + "manifest.json"),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String("application/json"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return fmt.Errorf("assets: upload manifest: %w", err)
	}
	return nil
}

// fingerprint inserts a short content hash before the file extension:
// counter.js → counter.a1b2c3d4.js
func fingerprint(name string, body []byte) string {
	sum := sha256.Sum256(body)
	short := hex.EncodeToString(sum[:4])

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return base + "." + short + ext
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".js", ".mjs":
		return "text/javascript"
	case ".css":
		return "text/css"
	case ".json":
		return "application/json"
	case ".map":
		return "application/json"
	case ".wasm":
		return "application/wasm"
	default:
		return "application/octet-stream"
	}
}
