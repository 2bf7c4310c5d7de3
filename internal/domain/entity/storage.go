package entity

import "time"

// CallerIdentity é o resultado da validação de credenciais.
type CallerIdentity struct {
	AccountID string `json:"account_id"`
	UserARN   string `json:"user_arn"`
}

// BucketInfo descreve um bucket listado.
type BucketInfo struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date"`
}

// ObjectInfo descreve um objeto listado em um bucket.
type ObjectInfo struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
	ETag string `json:"etag"`
}

// ObjectMetadata é o resultado de uma operação HEAD: atributos do objeto sem
// transferência do corpo.
type ObjectMetadata struct {
	ContentLength int64             `json:"content_length"`
	ContentType   string            `json:"content_type"`
	ETag          string            `json:"etag"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// ObjectVersion identifica uma versão (ou delete marker) de um objeto em um
// bucket versionado. Buckets versionados não podem ser removidos enquanto
// alguma versão existir.
type ObjectVersion struct {
	Key          string `json:"key"`
	VersionID    string `json:"version_id"`
	DeleteMarker bool   `json:"delete_marker"`
}

// CompletedPart é o par {PartNumber, ETag} submetido ao completar um
// multipart upload. A lista deve ser contígua a partir de 1 e ascendente.
type CompletedPart struct {
	PartNumber int32  `json:"part_number"`
	ETag       string `json:"etag"`
}

// Status de versionamento reportado pelo serviço.
const (
	VersioningEnabled  = "Enabled"
	VersioningDisabled = ""
)
