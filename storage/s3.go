package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mdx-press/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client erstellt einen S3-Client für einen S3-kompatiblen Object-Store.
func NewS3Client(cfg *config.Config) (*s3.Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               cfg.S3URL,
				SigningRegion:     cfg.S3Region,
				HostnameImmutable: true,
			}, nil
		},
	)
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3Key, cfg.S3Secret, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(awsCfg), nil
}

// S3Store legt Artikel-Dateien in einem S3-Bucket ab. Die temporäre
// Upload-Staging-Fläche bleibt lokal, nur das endgültige Ziel liegt in S3.
type S3Store struct {
	Client *s3.Client
	Bucket string
	URL    string
}

// NewS3Store erstellt einen S3Store aus der Konfiguration.
func NewS3Store(cfg *config.Config) (*S3Store, error) {
	client, err := NewS3Client(cfg)
	if err != nil {
		return nil, err
	}
	return &S3Store{Client: client, Bucket: cfg.S3Bucket, URL: cfg.S3URL}, nil
}

// MoveToFinal lädt tempDir/filename unter destFolder/<uniqueID><ext> in den
// Bucket hoch und entfernt die lokale Temporärdatei.
func (s *S3Store) MoveToFinal(tempDir, filename, destFolder, uniqueID string) (string, error) {
	src := filepath.Join(tempDir, filename)
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", filename, err)
	}

	key := destFolder + "/" + uniqueID + filepath.Ext(filename)
	_, err = s.Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}

	_ = os.Remove(src)

	return fmt.Sprintf("%s/%s/%s", s.URL, s.Bucket, key), nil
}

// Remove löscht das Objekt hinter dem gegebenen Link aus dem Bucket.
func (s *S3Store) Remove(path string) error {
	key := strings.TrimPrefix(path, fmt.Sprintf("%s/%s/", s.URL, s.Bucket))
	_, err := s.Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	return err
}

// RemoveDir räumt das lokale Staging-Verzeichnis auf.
func (s *S3Store) RemoveDir(path string) error {
	return os.RemoveAll(path)
}
