package cli

import (
	"fmt"

	"github.com/diillson/s3-connectivity-tester-go/pkg/version"
	"github.com/fatih/color"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
          /$$$$$$   /$$$$$$        /$$$$$$$$                    /$$
         /$$__  $$ /$$__  $$      |__  $$__/                   | $$
        | $$  \__/|__/  \ $$         | $$  /$$$$$$   /$$$$$$$ /$$$$$$
        |  $$$$$$    /$$$$$$/        | $$ /$$__  $$ /$$_____/|_  $$_/
         \____  $$  |___  $$         | $$| $$$$$$$$|  $$$$$$   | $$
         /$$  \ $$ /$$  \ $$         | $$| $$_____/ \____  $$  | $$ /$$
        |  $$$$$$/|  $$$$$$/         | $$|  $$$$$$$ /$$$$$$$/  |  $$$$/
         \______/  \______/          |__/ \_______/|_______/    \___/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("S3 Connectivity Tester CLI (v%s)", formattedVersion)))
}
