package aws

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/repository"
)

// S3API é o subconjunto do cliente S3 usado pelo adapter, extraído como
// interface para permitir mocks nos testes.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	ListObjectVersions(ctx context.Context, params *s3.ListObjectVersionsInput, optFns ...func(*s3.Options)) (*s3.ListObjectVersionsOutput, error)
	CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error)
	CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
	PutBucketVersioning(ctx context.Context, params *s3.PutBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.PutBucketVersioningOutput, error)
	GetBucketVersioning(ctx context.Context, params *s3.GetBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error)
}

// STSAPI é o subconjunto do cliente STS usado para validar a identidade.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// StorageRepositoryImpl implementa o StorageRepository sobre S3 + STS.
type StorageRepositoryImpl struct {
	region    string
	s3Client  S3API
	stsClient STSAPI
	presign   *s3.PresignClient
}

// Options configura a criação do repositório de storage.
type Options struct {
	Region      string
	EndpointURL string
	PathStyle   bool
	AccessKey   string
	SecretKey   string
}

// NewStorageRepository cria a implementação real usando a cadeia padrão de
// credenciais da AWS, com overrides opcionais de endpoint, path-style e
// credenciais estáticas (para endpoints S3-compatíveis como MinIO).
func NewStorageRepository(ctx context.Context, opts Options) (repository.StorageRepository, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if opts.EndpointURL != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
		})
	}
	if opts.PathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	s3Client := s3.NewFromConfig(cfg, s3Opts...)

	return &StorageRepositoryImpl{
		region:    opts.Region,
		s3Client:  s3Client,
		stsClient: sts.NewFromConfig(cfg),
		presign:   s3.NewPresignClient(s3Client),
	}, nil
}

// NewStorageRepositoryWithClients cria o repositório com clientes
// pré-configurados; usado nos testes.
func NewStorageRepositoryWithClients(region string, s3Client S3API, stsClient STSAPI) *StorageRepositoryImpl {
	return &StorageRepositoryImpl{
		region:    region,
		s3Client:  s3Client,
		stsClient: stsClient,
	}
}

func (r *StorageRepositoryImpl) ValidateIdentity(ctx context.Context) (entity.CallerIdentity, error) {
	out, err := r.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return entity.CallerIdentity{}, classifyError(err)
	}
	return entity.CallerIdentity{
		AccountID: aws.ToString(out.Account),
		UserARN:   aws.ToString(out.Arn),
	}, nil
}

func (r *StorageRepositoryImpl) ListBuckets(ctx context.Context) ([]entity.BucketInfo, error) {
	out, err := r.s3Client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, classifyError(err)
	}
	buckets := make([]entity.BucketInfo, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, entity.BucketInfo{
			Name:         aws.ToString(b.Name),
			CreationDate: aws.ToTime(b.CreationDate),
		})
	}
	return buckets, nil
}

func (r *StorageRepositoryImpl) CreateBucket(ctx context.Context, bucket string) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	// us-east-1 é a região default do serviço e rejeita LocationConstraint.
	if r.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3Types.CreateBucketConfiguration{
			LocationConstraint: s3Types.BucketLocationConstraint(r.region),
		}
	}
	_, err := r.s3Client.CreateBucket(ctx, input)
	return classifyError(err)
}

func (r *StorageRepositoryImpl) DeleteBucket(ctx context.Context, bucket string) error {
	_, err := r.s3Client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(bucket)})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string, metadata map[string]string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if len(metadata) > 0 {
		input.Metadata = metadata
	}
	_, err := r.s3Client.PutObject(ctx, input)
	return classifyError(err)
}

func (r *StorageRepositoryImpl) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := r.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyError(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, classifyError(err)
	}
	return data, nil
}

func (r *StorageRepositoryImpl) HeadObject(ctx context.Context, bucket, key string) (entity.ObjectMetadata, error) {
	out, err := r.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return entity.ObjectMetadata{}, classifyError(err)
	}
	return entity.ObjectMetadata{
		ContentLength: aws.ToInt64(out.ContentLength),
		ContentType:   aws.ToString(out.ContentType),
		ETag:          aws.ToString(out.ETag),
		Metadata:      out.Metadata,
	}, nil
}

func (r *StorageRepositoryImpl) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := r.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make([]s3Types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, s3Types.ObjectIdentifier{Key: aws.String(key)})
	}
	_, err := r.s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &s3Types.Delete{Objects: objects},
	})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) CopyObject(ctx context.Context, bucket, sourceKey, destKey string) error {
	_, err := r.s3Client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(destKey),
		CopySource: aws.String(bucket + "/" + sourceKey),
	})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) ListObjects(ctx context.Context, bucket, prefix string) ([]entity.ObjectInfo, error) {
	var objects []entity.ObjectInfo

	paginator := s3.NewListObjectsV2Paginator(r.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyError(err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, entity.ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
				ETag: aws.ToString(obj.ETag),
			})
		}
	}
	return objects, nil
}

func (r *StorageRepositoryImpl) ListObjectVersions(ctx context.Context, bucket string) ([]entity.ObjectVersion, error) {
	out, err := r.s3Client.ListObjectVersions(ctx, &s3.ListObjectVersionsInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, classifyError(err)
	}

	var versions []entity.ObjectVersion
	for _, v := range out.Versions {
		versions = append(versions, entity.ObjectVersion{
			Key:       aws.ToString(v.Key),
			VersionID: aws.ToString(v.VersionId),
		})
	}
	for _, m := range out.DeleteMarkers {
		versions = append(versions, entity.ObjectVersion{
			Key:          aws.ToString(m.Key),
			VersionID:    aws.ToString(m.VersionId),
			DeleteMarker: true,
		})
	}
	return versions, nil
}

func (r *StorageRepositoryImpl) DeleteObjectVersion(ctx context.Context, bucket, key, versionID string) error {
	_, err := r.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket:    aws.String(bucket),
		Key:       aws.String(key),
		VersionId: aws.String(versionID),
	})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) InitiateMultipartUpload(ctx context.Context, bucket, key string) (string, error) {
	out, err := r.s3Client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", classifyError(err)
	}
	return aws.ToString(out.UploadId), nil
}

func (r *StorageRepositoryImpl) UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, body []byte) (string, error) {
	out, err := r.s3Client.UploadPart(ctx, &s3.UploadPartInput{
		Bucket:     aws.String(bucket),
		Key:        aws.String(key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int32(partNumber),
		Body:       bytes.NewReader(body),
	})
	if err != nil {
		return "", classifyError(err)
	}
	return aws.ToString(out.ETag), nil
}

func (r *StorageRepositoryImpl) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []entity.CompletedPart) error {
	completed := make([]s3Types.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, s3Types.CompletedPart{
			PartNumber: aws.Int32(p.PartNumber),
			ETag:       aws.String(p.ETag),
		})
	}
	_, err := r.s3Client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(bucket),
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &s3Types.CompletedMultipartUpload{Parts: completed},
	})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error {
	_, err := r.s3Client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(bucket),
		Key:      aws.String(key),
		UploadId: aws.String(uploadID),
	})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) PutBucketVersioning(ctx context.Context, bucket string, enabled bool) error {
	status := s3Types.BucketVersioningStatusSuspended
	if enabled {
		status = s3Types.BucketVersioningStatusEnabled
	}
	_, err := r.s3Client.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(bucket),
		VersioningConfiguration: &s3Types.VersioningConfiguration{
			Status: status,
		},
	})
	return classifyError(err)
}

func (r *StorageRepositoryImpl) GetBucketVersioning(ctx context.Context, bucket string) (string, error) {
	out, err := r.s3Client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", classifyError(err)
	}
	return string(out.Status), nil
}

func (r *StorageRepositoryImpl) PresignGetObject(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if r.presign == nil {
		return "", classifyError(fmt.Errorf("presign client not configured"))
	}
	req, err := r.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", classifyError(err)
	}
	return req.URL, nil
}
