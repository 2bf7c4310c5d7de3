package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/diillson/s3-connectivity-tester-go/internal/adapter/driven/aws"
	"github.com/diillson/s3-connectivity-tester-go/internal/adapter/driven/config"
	"github.com/diillson/s3-connectivity-tester-go/internal/adapter/driven/export"
	"github.com/diillson/s3-connectivity-tester-go/internal/adapter/driving/cli"
	"github.com/diillson/s3-connectivity-tester-go/internal/application/usecase"
	"github.com/diillson/s3-connectivity-tester-go/internal/domain/repository"
	"github.com/diillson/s3-connectivity-tester-go/internal/shared/types"
	"github.com/diillson/s3-connectivity-tester-go/pkg/console"
	"github.com/diillson/s3-connectivity-tester-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	storageFactory := func(ctx context.Context, args *types.CLIArgs) (repository.StorageRepository, error) {
		return aws.NewStorageRepository(ctx, aws.Options{
			Region:      args.Region,
			EndpointURL: args.EndpointURL,
			PathStyle:   args.PathStyle,
			AccessKey:   args.AccessKey,
			SecretKey:   args.SecretKey,
		})
	}
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	connectivityUseCase := usecase.NewConnectivityUseCase(
		storageFactory,
		exportRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetConnectivityUseCase(connectivityUseCase)
	app.SetConfigRepository(configRepo)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		if !errors.Is(err, types.ErrChecksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
