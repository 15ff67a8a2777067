package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"meetscribe/cmd/mscribe/cmd/export"
	"meetscribe/cmd/mscribe/cmd/process"
	"meetscribe/cmd/mscribe/cmd/serve"
	"meetscribe/cmd/mscribe/cmd/tenant"
	"meetscribe/cmd/mscribe/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mscribe",
	Short: "Poll transcription providers and resolve speaker identities",
	Long: `Poll transcription providers and resolve speaker identities.
- Poll Azure or FanoLab batch transcription jobs until they finish
- Assemble a speaker timeline with per-speaker talk statistics
- Match speakers against the tenant's enrolled voiceprints
- Charge audio hours against the tenant's quota`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(tenant.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
