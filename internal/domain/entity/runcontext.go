package entity

import (
	"fmt"
	"time"
)

// Prefixo reconhecível para os buckets de teste, usado também por operadores
// para localizar recursos órfãos de runs interrompidos.
const BucketNamePrefix = "s3-connectivity-test"

// DefaultObjectKey é a chave do objeto de teste principal.
const DefaultObjectKey = "test-connectivity/test-file.txt"

// MultipartObjectKey é a chave usada pelo teste de multipart upload.
const MultipartObjectKey = "test-connectivity/multipart-test.txt"

// RunContext carrega os identificadores gerados para uma execução: nomes de
// recursos de teste e os handles acumulados necessários para o cleanup.
// Criado uma vez no início do run; depois disso as únicas escritas são a
// identidade da conta (descoberta pelo step de credenciais, da qual deriva o
// nome do bucket) e a acumulação de handles de recursos criados.
type RunContext struct {
	Region    string
	RunID     string
	ObjectKey string

	AccountID  string
	UserARN    string
	BucketName string

	// Handles para o cleanup best-effort.
	BucketCreated    bool
	UploadedKeys     []string
	ActiveUploadID   string
	ActiveUploadKey  string
	VersioningTested bool
}

// NewRunContext cria o contexto de um run com um RunID derivado do timestamp.
// O nome do bucket só pode ser derivado depois que a identidade da conta for
// conhecida (ver SetIdentity).
func NewRunContext(region string, now time.Time) *RunContext {
	return &RunContext{
		Region:    region,
		RunID:     now.Format("20060102150405"),
		ObjectKey: DefaultObjectKey,
	}
}

// SetIdentity registra a identidade validada e deriva o nome único do bucket
// de teste: prefixo fixo + últimos 6 dígitos da conta + RunID. A combinação
// conta+timestamp evita colisão entre runs de contas diferentes no mesmo
// segundo.
func (c *RunContext) SetIdentity(accountID, userARN string) {
	c.AccountID = accountID
	c.UserARN = userARN

	suffix := accountID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	c.BucketName = fmt.Sprintf("%s-%s-%s", BucketNamePrefix, suffix, c.RunID)
}

// TrackUpload registra uma chave enviada, para o cleanup saber o que apagar.
func (c *RunContext) TrackUpload(key string) {
	for _, k := range c.UploadedKeys {
		if k == key {
			return
		}
	}
	c.UploadedKeys = append(c.UploadedKeys, key)
}

// TrackMultipart registra um multipart upload em andamento; o cleanup aborta
// uploads que ficaram pendentes.
func (c *RunContext) TrackMultipart(key, uploadID string) {
	c.ActiveUploadKey = key
	c.ActiveUploadID = uploadID
}

// ClearMultipart remove o registro após complete ou abort bem-sucedido.
func (c *RunContext) ClearMultipart() {
	c.ActiveUploadKey = ""
	c.ActiveUploadID = ""
}
