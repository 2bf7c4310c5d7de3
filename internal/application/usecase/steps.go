package usecase

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/repository"
	"github.com/diillson/s3-connectivity-tester-go/internal/shared/types"
)

// Nomes dos steps, na ordem declarada de execução.
const (
	StepValidateCredentials = "validate_credentials"
	StepListBuckets         = "list_buckets"
	StepCreateBucket        = "create_bucket"
	StepUploadObject        = "upload_object"
	StepReadObject          = "read_object"
	StepHeadObject          = "head_object"
	StepDeleteObject        = "delete_object"
	StepMultipartUpload     = "multipart_upload"
	StepBucketVersioning    = "bucket_versioning"
	StepCopyObject          = "copy_object"
	StepPresignedURL        = "presigned_url"
	StepCleanup             = "cleanup"
)

const (
	copySourceKey   = "test-connectivity/copy-source.txt"
	copyDestKey     = "test-connectivity/copy-dest.txt"
	presignExpiry   = time.Hour
	previewMaxBytes = 50
)

// step declara uma verificação: nome, pré-requisitos rígidos (por nome) e a
// action. O orquestrador consulta os resultados anteriores antes de invocar a
// action: uma cadeia de dependências explícita em vez de flags compartilhadas.
type step struct {
	name     string
	requires []string
	action   StepAction
}

// connectivityRun amarra o cliente de storage ao contexto de um run. Cada
// método é a action de um step; nenhum deles imprime ou propaga erro — o
// runner captura tudo.
type connectivityRun struct {
	storage repository.StorageRepository
	runCtx  *entity.RunContext
}

// steps monta a sequência declarada. O cleanup não aparece aqui: ele é
// executado incondicionalmente pelo orquestrador, fora do gate de
// pré-requisitos.
func (r *connectivityRun) steps(ctx context.Context, extended bool) []step {
	list := []step{
		{name: StepValidateCredentials, action: func() (string, error) { return r.validateCredentials(ctx) }},
		{name: StepListBuckets, requires: []string{StepValidateCredentials}, action: func() (string, error) { return r.listBuckets(ctx) }},
		{name: StepCreateBucket, requires: []string{StepValidateCredentials}, action: func() (string, error) { return r.createBucket(ctx) }},
		{name: StepUploadObject, requires: []string{StepCreateBucket}, action: func() (string, error) { return r.uploadObject(ctx) }},
		{name: StepReadObject, requires: []string{StepUploadObject}, action: func() (string, error) { return r.readObject(ctx) }},
		{name: StepHeadObject, requires: []string{StepUploadObject}, action: func() (string, error) { return r.headObject(ctx) }},
		{name: StepDeleteObject, requires: []string{StepUploadObject}, action: func() (string, error) { return r.deleteObject(ctx) }},
		{name: StepMultipartUpload, requires: []string{StepCreateBucket}, action: func() (string, error) { return r.multipartUpload(ctx) }},
		{name: StepBucketVersioning, requires: []string{StepCreateBucket}, action: func() (string, error) { return r.bucketVersioning(ctx) }},
	}

	if extended {
		list = append(list,
			step{name: StepCopyObject, requires: []string{StepCreateBucket}, action: func() (string, error) { return r.copyObject(ctx) }},
			step{name: StepPresignedURL, requires: []string{StepCreateBucket}, action: func() (string, error) { return r.presignedURL(ctx) }},
		)
	}

	return list
}

func (r *connectivityRun) validateCredentials(ctx context.Context) (string, error) {
	identity, err := r.storage.ValidateIdentity(ctx)
	if err != nil {
		return "", err
	}
	r.runCtx.SetIdentity(identity.AccountID, identity.UserARN)
	return fmt.Sprintf("credentials valid for account %s (%s)", identity.AccountID, identity.UserARN), nil
}

func (r *connectivityRun) listBuckets(ctx context.Context) (string, error) {
	buckets, err := r.storage.ListBuckets(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("listed %d bucket(s)", len(buckets)), nil
}

func (r *connectivityRun) createBucket(ctx context.Context) (string, error) {
	if err := r.storage.CreateBucket(ctx, r.runCtx.BucketName); err != nil {
		return "", err
	}
	r.runCtx.BucketCreated = true
	return fmt.Sprintf("created bucket %s", r.runCtx.BucketName), nil
}

func (r *connectivityRun) uploadObject(ctx context.Context) (string, error) {
	content := fmt.Sprintf("Test upload at %s", time.Now().Format(time.RFC3339))
	metadata := map[string]string{
		"test":      "connectivity",
		"timestamp": fmt.Sprintf("%d", time.Now().Unix()),
	}

	err := r.storage.PutObject(ctx, r.runCtx.BucketName, r.runCtx.ObjectKey, []byte(content), "text/plain", metadata)
	if err != nil {
		return "", err
	}
	r.runCtx.TrackUpload(r.runCtx.ObjectKey)
	return fmt.Sprintf("uploaded object %s (%d bytes)", r.runCtx.ObjectKey, len(content)), nil
}

func (r *connectivityRun) readObject(ctx context.Context) (string, error) {
	data, err := r.storage.GetObject(ctx, r.runCtx.BucketName, r.runCtx.ObjectKey)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", types.NewAssertionError("object %s came back empty", r.runCtx.ObjectKey)
	}

	preview := string(data)
	if len(preview) > previewMaxBytes {
		preview = preview[:previewMaxBytes] + "..."
	}
	return fmt.Sprintf("read object %s: %q", r.runCtx.ObjectKey, preview), nil
}

func (r *connectivityRun) headObject(ctx context.Context) (string, error) {
	meta, err := r.storage.HeadObject(ctx, r.runCtx.BucketName, r.runCtx.ObjectKey)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("size=%d bytes, type=%s, etag=%s", meta.ContentLength, meta.ContentType, meta.ETag), nil
}

func (r *connectivityRun) deleteObject(ctx context.Context) (string, error) {
	if err := r.storage.DeleteObject(ctx, r.runCtx.BucketName, r.runCtx.ObjectKey); err != nil {
		return "", err
	}
	return fmt.Sprintf("deleted object %s", r.runCtx.ObjectKey), nil
}

// multipartUpload sonda o protocolo completo: initiate, uma única parte final
// (válida em qualquer tamanho), complete com a lista contígua a partir de 1, e
// remoção do objeto montado. Falhou depois do initiate? Aborta antes de
// registrar a falha, para não deixar partes órfãs cobrando storage.
func (r *connectivityRun) multipartUpload(ctx context.Context) (string, error) {
	bucket := r.runCtx.BucketName
	key := entity.MultipartObjectKey

	uploadID, err := r.storage.InitiateMultipartUpload(ctx, bucket, key)
	if err != nil {
		return "", err
	}
	r.runCtx.TrackMultipart(key, uploadID)

	abortAndFail := func(err error) (string, error) {
		// Best-effort: a falha original é a que interessa no resultado.
		_ = r.storage.AbortMultipartUpload(ctx, bucket, key, uploadID)
		r.runCtx.ClearMultipart()
		return "", err
	}

	partData := bytes.Repeat([]byte("Test multipart upload content"), 1000)
	etag, err := r.storage.UploadPart(ctx, bucket, key, uploadID, 1, partData)
	if err != nil {
		return abortAndFail(err)
	}

	parts := []entity.CompletedPart{{PartNumber: 1, ETag: etag}}
	if err := r.storage.CompleteMultipartUpload(ctx, bucket, key, uploadID, parts); err != nil {
		return abortAndFail(err)
	}
	r.runCtx.ClearMultipart()
	r.runCtx.TrackUpload(key)

	if err := r.storage.DeleteObject(ctx, bucket, key); err != nil {
		return "", err
	}
	return fmt.Sprintf("completed multipart upload of %d bytes (1 part)", len(partData)), nil
}

// bucketVersioning habilita o versionamento e confirma pelo read-back. Um
// write que "deu certo" mas não mudou o estado é reprovado aqui: o sucesso da
// chamada de escrita nunca é assumido como confirmação.
func (r *connectivityRun) bucketVersioning(ctx context.Context) (string, error) {
	bucket := r.runCtx.BucketName

	if err := r.storage.PutBucketVersioning(ctx, bucket, true); err != nil {
		return "", err
	}
	// A partir daqui o bucket pode reter versões; o cleanup precisa saber.
	r.runCtx.VersioningTested = true

	status, err := r.storage.GetBucketVersioning(ctx, bucket)
	if err != nil {
		return "", err
	}
	if status != entity.VersioningEnabled {
		return "", types.NewAssertionError("versioning status is %q, expected %q", status, entity.VersioningEnabled)
	}
	return "versioning enabled and confirmed by read-back", nil
}

func (r *connectivityRun) copyObject(ctx context.Context) (string, error) {
	bucket := r.runCtx.BucketName

	content := fmt.Sprintf("Copy source created at %s", time.Now().Format(time.RFC3339))
	if err := r.storage.PutObject(ctx, bucket, copySourceKey, []byte(content), "text/plain", nil); err != nil {
		return "", err
	}
	r.runCtx.TrackUpload(copySourceKey)

	if err := r.storage.CopyObject(ctx, bucket, copySourceKey, copyDestKey); err != nil {
		return "", err
	}
	r.runCtx.TrackUpload(copyDestKey)

	if err := r.storage.DeleteObjects(ctx, bucket, []string{copySourceKey, copyDestKey}); err != nil {
		return "", err
	}
	return fmt.Sprintf("copied %s to %s", copySourceKey, copyDestKey), nil
}

func (r *connectivityRun) presignedURL(ctx context.Context) (string, error) {
	url, err := r.storage.PresignGetObject(ctx, r.runCtx.BucketName, r.runCtx.ObjectKey, presignExpiry)
	if err != nil {
		return "", err
	}
	if url == "" {
		return "", types.NewAssertionError("presign returned an empty URL")
	}
	return fmt.Sprintf("generated presigned GET URL (expires in %s)", presignExpiry), nil
}

// cleanup remove tudo que o run pode ter provisionado, em ordem best-effort:
// aborta multipart pendente, apaga as chaves conhecidas, apaga o que restar no
// bucket (incluindo versões e delete markers, já que um bucket versionado não
// pode ser removido de outra forma) e por fim apaga o bucket. A primeira falha
// é reportada no resultado, mas as etapas seguintes ainda são tentadas.
func (r *connectivityRun) cleanup(ctx context.Context) (string, error) {
	if !r.runCtx.BucketCreated {
		return "no test bucket provisioned, nothing to clean up", nil
	}

	bucket := r.runCtx.BucketName
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if r.runCtx.ActiveUploadID != "" {
		keep(r.storage.AbortMultipartUpload(ctx, bucket, r.runCtx.ActiveUploadKey, r.runCtx.ActiveUploadID))
		r.runCtx.ClearMultipart()
	}

	removed := 0
	if len(r.runCtx.UploadedKeys) > 0 {
		keep(r.storage.DeleteObjects(ctx, bucket, r.runCtx.UploadedKeys))
	}

	objects, err := r.storage.ListObjects(ctx, bucket, "")
	keep(err)
	if err == nil && len(objects) > 0 {
		keys := make([]string, 0, len(objects))
		for _, obj := range objects {
			keys = append(keys, obj.Key)
		}
		keep(r.storage.DeleteObjects(ctx, bucket, keys))
		removed += len(keys)
	}

	if r.runCtx.VersioningTested {
		versions, err := r.storage.ListObjectVersions(ctx, bucket)
		keep(err)
		for _, v := range versions {
			keep(r.storage.DeleteObjectVersion(ctx, bucket, v.Key, v.VersionID))
			removed++
		}
	}

	keep(r.storage.DeleteBucket(ctx, bucket))

	if firstErr != nil {
		return fmt.Sprintf("partial cleanup of bucket %s", bucket), firstErr
	}
	return fmt.Sprintf("removed bucket %s and %d leftover object(s)/version(s)", bucket, removed), nil
}
