package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Region     string
	ReportName string
	ReportType []string
	Dir        string

	// Overrides para endpoints S3-compatíveis (MinIO, gateways).
	EndpointURL string
	PathStyle   bool
	AccessKey   string
	SecretKey   string

	// Extended habilita as sondas extras (copy_object, presigned_url).
	Extended bool
}
