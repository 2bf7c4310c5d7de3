package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/s3-connectivity-tester-go/internal/application/usecase"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/repository"
	"github.com/diillson/s3-connectivity-tester-go/internal/shared/types"
	"github.com/diillson/s3-connectivity-tester-go/pkg/version"
	"github.com/spf13/cobra"
)

// DefaultRegion é usada quando nem o argumento posicional nem a variável de
// ambiente AWS_DEFAULT_REGION definem uma região.
const DefaultRegion = "us-east-1"

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd             *cobra.Command
	connectivityUseCase *usecase.ConnectivityUseCase
	configRepo          repository.ConfigRepository
	version             string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "s3-connectivity [region]",
		Short:   "AWS S3 Connectivity Tester",
		Long:    "Runs an ordered sequence of checks against S3 (credentials, bucket, object, multipart, versioning) and writes a structured report.",
		Args:    cobra.MaximumNArgs(1),
		Version: formattedVersion,
		RunE:    app.runCommand,
		// O exit status reflete o resultado dos checks; sem stack de uso.
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "S3 Connectivity Tester version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("report-name", "n", "s3_test_report", "Base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"json"}, "Report types: json, csv, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().String("endpoint-url", "", "Custom S3-compatible endpoint URL (e.g. MinIO)")
	rootCmd.PersistentFlags().Bool("path-style", false, "Use path-style bucket addressing")
	rootCmd.PersistentFlags().String("access-key", "", "Static access key (default: AWS credential chain)")
	rootCmd.PersistentFlags().String("secret-key", "", "Static secret key (default: AWS credential chain)")
	rootCmd.PersistentFlags().Bool("extended", false, "Run extended probes (copy_object, presigned_url)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs monta o CLIArgs a partir das flags, do argumento posicional e do
// arquivo de configuração opcional. Precedência: flags/argumento > arquivo >
// ambiente > default.
func (app *CLIApp) parseArgs(positional []string) (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	endpointURL, _ := flags.GetString("endpoint-url")
	pathStyle, _ := flags.GetBool("path-style")
	accessKey, _ := flags.GetString("access-key")
	secretKey, _ := flags.GetString("secret-key")
	extended, _ := flags.GetBool("extended")

	args := &types.CLIArgs{
		ConfigFile:  configFile,
		ReportName:  reportName,
		ReportType:  reportType,
		Dir:         dir,
		EndpointURL: endpointURL,
		PathStyle:   pathStyle,
		AccessKey:   accessKey,
		SecretKey:   secretKey,
		Extended:    extended,
	}

	if configFile != "" && app.configRepo != nil {
		config, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(args, config, flags.Changed)
	}

	// Região: argumento posicional > config > AWS_DEFAULT_REGION > default.
	if len(positional) > 0 {
		args.Region = positional[0]
	}
	if args.Region == "" {
		args.Region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if args.Region == "" {
		args.Region = DefaultRegion
	}

	// Diretório default é o cwd; caminhos relativos viram absolutos.
	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	return args, nil
}

// mergeConfig aplica valores do arquivo de configuração nas posições que não
// foram definidas explicitamente por flag.
func mergeConfig(args *types.CLIArgs, config *types.Config, changed func(string) bool) {
	if config.Region != "" {
		args.Region = config.Region
	}
	if config.ReportName != "" && !changed("report-name") {
		args.ReportName = config.ReportName
	}
	if len(config.ReportType) > 0 && !changed("report-type") {
		args.ReportType = config.ReportType
	}
	if config.Dir != "" && !changed("dir") {
		args.Dir = config.Dir
	}
	if config.EndpointURL != "" && !changed("endpoint-url") {
		args.EndpointURL = config.EndpointURL
	}
	if config.PathStyle && !changed("path-style") {
		args.PathStyle = true
	}
	if config.Extended && !changed("extended") {
		args.Extended = true
	}
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, positional []string) error {
	displayWelcomeBanner(app.version)

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs(positional)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.connectivityUseCase.RunConnectivity(ctx, cliArgs)
}

// SetConnectivityUseCase sets the connectivity use case for the CLI app.
func (app *CLIApp) SetConnectivityUseCase(useCase *usecase.ConnectivityUseCase) {
	app.connectivityUseCase = useCase
}

// SetConfigRepository sets the configuration repository for the CLI app.
func (app *CLIApp) SetConfigRepository(configRepo repository.ConfigRepository) {
	app.configRepo = configRepo
}
