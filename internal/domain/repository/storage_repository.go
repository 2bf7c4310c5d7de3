package repository

import (
	"context"
	"time"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
)

// StorageRepository define a superfície estreita do serviço de object storage
// consumida pelo orquestrador. O transporte, autenticação e wire format são
// responsabilidade exclusiva do adapter; o core trata cada operação como uma
// capability opaca que pode falhar com um erro de serviço {code, message}.
type StorageRepository interface {
	// Identity
	ValidateIdentity(ctx context.Context) (entity.CallerIdentity, error)

	// Bucket operations
	ListBuckets(ctx context.Context) ([]entity.BucketInfo, error)
	CreateBucket(ctx context.Context, bucket string) error
	DeleteBucket(ctx context.Context, bucket string) error

	// Object operations
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string, metadata map[string]string) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	HeadObject(ctx context.Context, bucket, key string) (entity.ObjectMetadata, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	DeleteObjects(ctx context.Context, bucket string, keys []string) error
	CopyObject(ctx context.Context, bucket, sourceKey, destKey string) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]entity.ObjectInfo, error)
	ListObjectVersions(ctx context.Context, bucket string) ([]entity.ObjectVersion, error)
	DeleteObjectVersion(ctx context.Context, bucket, key, versionID string) error

	// Multipart upload
	InitiateMultipartUpload(ctx context.Context, bucket, key string) (string, error)
	UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, body []byte) (string, error)
	CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []entity.CompletedPart) error
	AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error

	// Versioning
	PutBucketVersioning(ctx context.Context, bucket string, enabled bool) error
	GetBucketVersioning(ctx context.Context, bucket string) (string, error)

	// Presigned URLs
	PresignGetObject(ctx context.Context, bucket, key string, expires time.Duration) (string, error)
}
