package aws

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
	"github.com/diillson/s3-connectivity-tester-go/internal/shared/types"
)

// classifyError traduz um erro do SDK para a taxonomia do core. Códigos de
// erro do serviço (smithy.APIError) são mapeados por categoria; qualquer outra
// falha (rede, timeout) vira um erro de serviço genérico.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		message := apiErr.ErrorMessage()
		return types.NewStorageError(kindForCode(code), code, message)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return types.NewStorageError(types.ErrKindService, "RequestTimeout", err.Error())
	}

	return types.NewStorageError(types.ErrKindService, "", err.Error())
}

// kindForCode mapeia códigos de erro S3/STS para a taxonomia.
func kindForCode(code string) types.ErrorKind {
	switch code {
	case "InvalidClientTokenId", "InvalidAccessKeyId", "SignatureDoesNotMatch",
		"ExpiredToken", "ExpiredTokenException", "TokenRefreshRequired",
		"UnrecognizedClientException", "CredentialsNotFound":
		return types.ErrKindAuthentication
	case "AccessDenied", "AccessDeniedException", "AccountProblem",
		"AllAccessDisabled", "InvalidPayer", "NotSignedUp", "RequestTimeTooSkewed":
		return types.ErrKindAuthorization
	case "BucketAlreadyExists", "BucketAlreadyOwnedByYou", "BucketNotEmpty",
		"OperationAborted":
		return types.ErrKindResourceConflict
	case "NoSuchBucket", "NoSuchKey", "NoSuchUpload", "NoSuchVersion", "NotFound":
		return types.ErrKindNotFound
	default:
		return types.ErrKindService
	}
}
