package cli

import (
	"testing"

	"github.com/diillson/s3-connectivity-tester-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsDefaults(t *testing.T) {
	t.Setenv("AWS_DEFAULT_REGION", "")

	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags(nil))

	args, err := app.parseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultRegion, args.Region)
	assert.Equal(t, "s3_test_report", args.ReportName)
	assert.Equal(t, []string{"json"}, args.ReportType)
	assert.NotEmpty(t, args.Dir)
	assert.False(t, args.Extended)
}

func TestParseArgsRegionPrecedence(t *testing.T) {
	t.Setenv("AWS_DEFAULT_REGION", "eu-central-1")

	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags(nil))

	// Sem argumento posicional, a variável de ambiente decide.
	args, err := app.parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", args.Region)

	// O argumento posicional ganha do ambiente.
	args, err = app.parseArgs([]string{"sa-east-1"})
	require.NoError(t, err)
	assert.Equal(t, "sa-east-1", args.Region)
}

func TestParseArgsFlags(t *testing.T) {
	app := NewCLIApp("1.0.0")
	require.NoError(t, app.rootCmd.ParseFlags([]string{
		"--report-name", "custom",
		"--report-type", "json,pdf",
		"--endpoint-url", "http://localhost:9000",
		"--path-style",
		"--extended",
	}))

	args, err := app.parseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, "custom", args.ReportName)
	assert.Equal(t, []string{"json", "pdf"}, args.ReportType)
	assert.Equal(t, "http://localhost:9000", args.EndpointURL)
	assert.True(t, args.PathStyle)
	assert.True(t, args.Extended)
}

func TestMergeConfigFlagsWin(t *testing.T) {
	args := &types.CLIArgs{
		ReportName: "from-flag",
		ReportType: []string{"json"},
	}
	config := &types.Config{
		Region:     "eu-west-1",
		ReportName: "from-file",
		ReportType: []string{"csv"},
		Extended:   true,
	}

	// Simula "report-name" definido explicitamente por flag.
	changed := func(name string) bool { return name == "report-name" }
	mergeConfig(args, config, changed)

	assert.Equal(t, "eu-west-1", args.Region)
	assert.Equal(t, "from-flag", args.ReportName)
	assert.Equal(t, []string{"csv"}, args.ReportType)
	assert.True(t, args.Extended)
}
