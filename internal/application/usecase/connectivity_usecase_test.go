package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diillson/s3-connectivity-tester-go/internal/domain/entity"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/repository"
	"github.com/diillson/s3-connectivity-tester-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStorage implementa o StorageRepository em memória, com injeção de falha
// por operação e registro das chamadas recebidas.
type stubStorage struct {
	calls  []string
	failOn map[string]error

	// Conteúdo devolvido pelo GetObject; default simula o objeto enviado.
	objectData []byte
	// Quando true, PutBucketVersioning "dá certo" sem mudar o estado, para
	// exercitar a reprovação por read-back.
	ignoreVersioningWrite bool

	versioningStatus string
	versions         []entity.ObjectVersion
	abortCount       int
}

func newStubStorage() *stubStorage {
	return &stubStorage{failOn: map[string]error{}}
}

func (s *stubStorage) record(op string) error {
	s.calls = append(s.calls, op)
	return s.failOn[op]
}

func (s *stubStorage) called(op string) bool {
	for _, c := range s.calls {
		if c == op {
			return true
		}
	}
	return false
}

func (s *stubStorage) ValidateIdentity(ctx context.Context) (entity.CallerIdentity, error) {
	if err := s.record("ValidateIdentity"); err != nil {
		return entity.CallerIdentity{}, err
	}
	return entity.CallerIdentity{
		AccountID: "123456789012",
		UserARN:   "arn:aws:iam::123456789012:user/tester",
	}, nil
}

func (s *stubStorage) ListBuckets(ctx context.Context) ([]entity.BucketInfo, error) {
	if err := s.record("ListBuckets"); err != nil {
		return nil, err
	}
	return []entity.BucketInfo{{Name: "existing-bucket", CreationDate: time.Now()}}, nil
}

func (s *stubStorage) CreateBucket(ctx context.Context, bucket string) error {
	return s.record("CreateBucket")
}

func (s *stubStorage) DeleteBucket(ctx context.Context, bucket string) error {
	return s.record("DeleteBucket")
}

func (s *stubStorage) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string, metadata map[string]string) error {
	if err := s.record("PutObject"); err != nil {
		return err
	}
	if s.objectData == nil {
		s.objectData = body
	}
	return nil
}

func (s *stubStorage) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := s.record("GetObject"); err != nil {
		return nil, err
	}
	return s.objectData, nil
}

func (s *stubStorage) HeadObject(ctx context.Context, bucket, key string) (entity.ObjectMetadata, error) {
	if err := s.record("HeadObject"); err != nil {
		return entity.ObjectMetadata{}, err
	}
	return entity.ObjectMetadata{
		ContentLength: int64(len(s.objectData)),
		ContentType:   "text/plain",
		ETag:          `"d41d8cd98f00b204e9800998ecf8427e"`,
	}, nil
}

func (s *stubStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	return s.record("DeleteObject")
}

func (s *stubStorage) DeleteObjects(ctx context.Context, bucket string, keys []string) error {
	return s.record("DeleteObjects")
}

func (s *stubStorage) CopyObject(ctx context.Context, bucket, sourceKey, destKey string) error {
	return s.record("CopyObject")
}

func (s *stubStorage) ListObjects(ctx context.Context, bucket, prefix string) ([]entity.ObjectInfo, error) {
	if err := s.record("ListObjects"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (s *stubStorage) ListObjectVersions(ctx context.Context, bucket string) ([]entity.ObjectVersion, error) {
	if err := s.record("ListObjectVersions"); err != nil {
		return nil, err
	}
	return s.versions, nil
}

func (s *stubStorage) DeleteObjectVersion(ctx context.Context, bucket, key, versionID string) error {
	return s.record("DeleteObjectVersion")
}

func (s *stubStorage) InitiateMultipartUpload(ctx context.Context, bucket, key string) (string, error) {
	if err := s.record("InitiateMultipartUpload"); err != nil {
		return "", err
	}
	return "upload-123", nil
}

func (s *stubStorage) UploadPart(ctx context.Context, bucket, key, uploadID string, partNumber int32, body []byte) (string, error) {
	if err := s.record("UploadPart"); err != nil {
		return "", err
	}
	return fmt.Sprintf(`"etag-part-%d"`, partNumber), nil
}

// CompleteMultipartUpload reproduz a validação do serviço: a lista de partes
// deve ser contígua e ascendente a partir de 1.
func (s *stubStorage) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, parts []entity.CompletedPart) error {
	if err := s.record("CompleteMultipartUpload"); err != nil {
		return err
	}
	if uploadID != "upload-123" {
		return types.NewStorageError(types.ErrKindNotFound, "NoSuchUpload", "unknown upload id")
	}
	if len(parts) == 0 {
		return types.NewStorageError(types.ErrKindService, "InvalidPart", "empty part list")
	}
	for i, part := range parts {
		if part.PartNumber != int32(i+1) {
			return types.NewStorageError(types.ErrKindService, "InvalidPartOrder", "part numbers must be contiguous and ascending from 1")
		}
	}
	return nil
}

func (s *stubStorage) AbortMultipartUpload(ctx context.Context, bucket, key, uploadID string) error {
	s.abortCount++
	return s.record("AbortMultipartUpload")
}

func (s *stubStorage) PutBucketVersioning(ctx context.Context, bucket string, enabled bool) error {
	if err := s.record("PutBucketVersioning"); err != nil {
		return err
	}
	if s.ignoreVersioningWrite {
		return nil
	}
	if enabled {
		s.versioningStatus = entity.VersioningEnabled
	} else {
		s.versioningStatus = entity.VersioningDisabled
	}
	return nil
}

func (s *stubStorage) GetBucketVersioning(ctx context.Context, bucket string) (string, error) {
	if err := s.record("GetBucketVersioning"); err != nil {
		return "", err
	}
	return s.versioningStatus, nil
}

func (s *stubStorage) PresignGetObject(ctx context.Context, bucket, key string, expires time.Duration) (string, error) {
	if err := s.record("PresignGetObject"); err != nil {
		return "", err
	}
	return "https://example.com/bucket/key?X-Amz-Signature=abc", nil
}

// stubConsole descarta toda a saída.
type stubConsole struct{}

func (stubConsole) Print(a ...interface{})                   {}
func (stubConsole) Printf(format string, a ...interface{})   {}
func (stubConsole) Println(a ...interface{})                 {}
func (stubConsole) LogInfo(format string, a ...interface{})  {}
func (stubConsole) LogWarning(f string, a ...interface{})    {}
func (stubConsole) LogError(format string, a ...interface{}) {}
func (stubConsole) LogSuccess(f string, a ...interface{})    {}
func (stubConsole) Status(message string) types.StatusHandle { return stubStatus{} }
func (stubConsole) CreateTable() types.TableInterface        { return &stubTable{} }

type stubStatus struct{}

func (stubStatus) Update(message string) {}
func (stubStatus) Stop()                 {}

type stubTable struct{}

func (*stubTable) AddColumn(name string, options ...interface{}) {}
func (*stubTable) AddRow(cells ...interface{})                   {}
func (*stubTable) Render() string                                { return "" }

// stubExport captura o último relatório exportado em vez de escrever arquivo.
type stubExport struct {
	reports []entity.Report
}

func (e *stubExport) ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	e.reports = append(e.reports, report)
	return "/tmp/" + filename + ".json", nil
}

func (e *stubExport) ExportReportToCSV(report entity.Report, filename, outputDir string) (string, error) {
	e.reports = append(e.reports, report)
	return "/tmp/" + filename + ".csv", nil
}

func (e *stubExport) ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	e.reports = append(e.reports, report)
	return "/tmp/" + filename + ".pdf", nil
}

func newTestUseCase(storage *stubStorage) (*ConnectivityUseCase, *stubExport) {
	export := &stubExport{}
	factory := func(ctx context.Context, args *types.CLIArgs) (repository.StorageRepository, error) {
		return storage, nil
	}
	uc := NewConnectivityUseCase(factory, export, stubConsole{})
	return uc, export
}

func defaultArgs() *types.CLIArgs {
	return &types.CLIArgs{
		Region:     "us-east-1",
		ReportName: "s3_test_report",
		ReportType: []string{"json"},
	}
}

var baseStepOrder = []string{
	StepValidateCredentials,
	StepListBuckets,
	StepCreateBucket,
	StepUploadObject,
	StepReadObject,
	StepHeadObject,
	StepDeleteObject,
	StepMultipartUpload,
	StepBucketVersioning,
	StepCleanup,
}

func TestRunConnectivityAllPass(t *testing.T) {
	storage := newStubStorage()
	storage.versions = []entity.ObjectVersion{{Key: "test-connectivity/test-file.txt", VersionID: "v1"}}
	uc, export := newTestUseCase(storage)

	err := uc.RunConnectivity(context.Background(), defaultArgs())
	require.NoError(t, err)

	require.Len(t, export.reports, 1)
	report := export.reports[0]

	require.Len(t, report.Results, len(baseStepOrder))
	for i, outcome := range report.Results {
		assert.Equal(t, baseStepOrder[i], outcome.Name)
		assert.True(t, outcome.Passed, "step %s should pass", outcome.Name)
	}

	assert.Equal(t, 10, report.Summary.Total)
	assert.Equal(t, 10, report.Summary.Passed)
	assert.Equal(t, 0, report.Summary.Failed)
	assert.Equal(t, "100%", report.Summary.SuccessRate)
	assert.Empty(t, report.Errors)
	assert.Equal(t, "123456789012", report.Account)

	// Multipart completou; nenhum abort deveria ter acontecido.
	assert.Zero(t, storage.abortCount)

	// Cleanup de bucket versionado precisa varrer as versões remanescentes.
	assert.True(t, storage.called("ListObjectVersions"))
	assert.True(t, storage.called("DeleteObjectVersion"))
	assert.True(t, storage.called("DeleteBucket"))
}

func TestRunConnectivityCreateBucketFailureSkipsDependents(t *testing.T) {
	storage := newStubStorage()
	storage.failOn["CreateBucket"] = types.NewStorageError(types.ErrKindResourceConflict, "BucketAlreadyExists", "the requested bucket name is not available")
	uc, export := newTestUseCase(storage)

	err := uc.RunConnectivity(context.Background(), defaultArgs())
	assert.ErrorIs(t, err, types.ErrChecksFailed)

	require.Len(t, export.reports, 1)
	report := export.reports[0]

	passedBy := map[string]bool{}
	for _, outcome := range report.Results {
		passedBy[outcome.Name] = outcome.Passed
	}

	assert.True(t, passedBy[StepValidateCredentials])
	assert.True(t, passedBy[StepListBuckets])
	assert.False(t, passedBy[StepCreateBucket])
	for _, name := range []string{StepUploadObject, StepReadObject, StepHeadObject, StepDeleteObject, StepMultipartUpload, StepBucketVersioning} {
		assert.False(t, passedBy[name], "dependent step %s should fail", name)
	}
	// Nenhum bucket foi criado; o cleanup é um no-op aprovado.
	assert.True(t, passedBy[StepCleanup])

	// Steps bloqueados nunca chegam ao storage.
	assert.False(t, storage.called("PutObject"))
	assert.False(t, storage.called("GetObject"))
	assert.False(t, storage.called("InitiateMultipartUpload"))
	assert.False(t, storage.called("PutBucketVersioning"))
	assert.False(t, storage.called("DeleteBucket"))

	// Os erros registram a causa: a falha real e os skips com o pré-requisito.
	messages := map[string]string{}
	for _, stepErr := range report.Errors {
		messages[stepErr.Step] = stepErr.Message
	}
	assert.Contains(t, messages[StepCreateBucket], "BucketAlreadyExists")
	assert.Equal(t, "skipped: prerequisite create_bucket failed", messages[StepUploadObject])
	assert.Equal(t, "skipped: prerequisite upload_object failed", messages[StepReadObject])

	assert.Equal(t, report.Summary.Total, report.Summary.Passed+report.Summary.Failed)
	assert.Equal(t, 3, report.Summary.Passed)
	assert.Equal(t, 7, report.Summary.Failed)
	assert.Equal(t, "30%", report.Summary.SuccessRate)
}

func TestRunConnectivitySingleFaultSingleError(t *testing.T) {
	storage := newStubStorage()
	storage.failOn["HeadObject"] = types.NewStorageError(types.ErrKindAuthorization, "AccessDenied", "s3:GetObject denied for HEAD")
	uc, export := newTestUseCase(storage)

	err := uc.RunConnectivity(context.Background(), defaultArgs())
	assert.ErrorIs(t, err, types.ErrChecksFailed)

	require.Len(t, export.reports, 1)
	report := export.reports[0]

	require.Len(t, report.Errors, 1)
	assert.Equal(t, StepHeadObject, report.Errors[0].Step)
	assert.Contains(t, report.Errors[0].Message, "AccessDenied")

	assert.Equal(t, 9, report.Summary.Passed)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, "90%", report.Summary.SuccessRate)
}

func TestRunConnectivityCredentialFailureStillCleansUp(t *testing.T) {
	storage := newStubStorage()
	storage.failOn["ValidateIdentity"] = types.NewStorageError(types.ErrKindAuthentication, "InvalidClientTokenId", "the security token is invalid")
	uc, export := newTestUseCase(storage)

	err := uc.RunConnectivity(context.Background(), defaultArgs())
	assert.ErrorIs(t, err, types.ErrChecksFailed)

	require.Len(t, export.reports, 1)
	report := export.reports[0]

	// O cleanup sempre aparece como último resultado, mesmo com tudo reprovado.
	last := report.Results[len(report.Results)-1]
	assert.Equal(t, StepCleanup, last.Name)
	assert.True(t, last.Passed)

	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, 9, report.Summary.Failed)
}

func TestRunConnectivityPanicInStepStillCleansUp(t *testing.T) {
	storage := newStubStorage()
	uc, _ := newTestUseCase(storage)

	runCtx := entity.NewRunContext("us-east-1", time.Now())
	runCtx.SetIdentity("123456789012", "arn:aws:iam::123456789012:user/tester")
	runCtx.BucketCreated = true
	run := &connectivityRun{storage: storage, runCtx: runCtx}

	steps := []step{
		{name: "exploding_step", action: func() (string, error) { panic("boom") }},
	}

	results := uc.executeSteps(context.Background(), run, steps)

	require.Len(t, results, 2)
	assert.False(t, results[0].Passed)
	assert.Contains(t, results[0].Error, "panic: boom")
	assert.Equal(t, StepCleanup, results[1].Name)
	assert.True(t, storage.called("DeleteBucket"))
}

func TestRunConnectivityVersioningReadBackMismatch(t *testing.T) {
	storage := newStubStorage()
	storage.ignoreVersioningWrite = true
	uc, export := newTestUseCase(storage)

	err := uc.RunConnectivity(context.Background(), defaultArgs())
	assert.ErrorIs(t, err, types.ErrChecksFailed)

	require.Len(t, export.reports, 1)
	report := export.reports[0]

	require.Len(t, report.Errors, 1)
	assert.Equal(t, StepBucketVersioning, report.Errors[0].Step)
	assert.Contains(t, report.Errors[0].Message, "versioning status")
}

func TestRunConnectivityExtendedProbes(t *testing.T) {
	storage := newStubStorage()
	uc, export := newTestUseCase(storage)

	args := defaultArgs()
	args.Extended = true
	err := uc.RunConnectivity(context.Background(), args)
	require.NoError(t, err)

	require.Len(t, export.reports, 1)
	report := export.reports[0]

	assert.Equal(t, 12, report.Summary.Total)
	names := make([]string, 0, len(report.Results))
	for _, outcome := range report.Results {
		names = append(names, outcome.Name)
	}
	assert.Contains(t, names, StepCopyObject)
	assert.Contains(t, names, StepPresignedURL)
	assert.Equal(t, StepCleanup, names[len(names)-1])

	assert.True(t, storage.called("CopyObject"))
	assert.True(t, storage.called("PresignGetObject"))
}

func TestRunConnectivityFactoryFailureTerminatesWithoutReport(t *testing.T) {
	export := &stubExport{}
	factory := func(ctx context.Context, args *types.CLIArgs) (repository.StorageRepository, error) {
		return nil, errors.New("no credential providers in chain")
	}
	uc := NewConnectivityUseCase(factory, export, stubConsole{})

	err := uc.RunConnectivity(context.Background(), defaultArgs())

	require.Error(t, err)
	assert.NotErrorIs(t, err, types.ErrChecksFailed)
	assert.Contains(t, err.Error(), "cannot initialize run")
	assert.Empty(t, export.reports, "no report should be produced when the client cannot be built")
}

func TestStubRejectsOutOfOrderParts(t *testing.T) {
	storage := newStubStorage()

	parts := []entity.CompletedPart{
		{PartNumber: 2, ETag: `"etag-part-2"`},
		{PartNumber: 1, ETag: `"etag-part-1"`},
	}
	err := storage.CompleteMultipartUpload(context.Background(), "bucket", "key", "upload-123", parts)

	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.ErrKindService))
}

func TestMultipartFailureAbortsBeforeReporting(t *testing.T) {
	storage := newStubStorage()
	storage.failOn["UploadPart"] = types.NewStorageError(types.ErrKindService, "InternalError", "we encountered an internal error")
	uc, export := newTestUseCase(storage)

	err := uc.RunConnectivity(context.Background(), defaultArgs())
	assert.ErrorIs(t, err, types.ErrChecksFailed)

	// A parte falhou depois do initiate: o abort roda no próprio step, antes
	// do cleanup, para não deixar partes órfãs.
	assert.Equal(t, 1, storage.abortCount)

	require.Len(t, export.reports, 1)
	report := export.reports[0]
	require.Len(t, report.Errors, 1)
	assert.Equal(t, StepMultipartUpload, report.Errors[0].Step)
}
