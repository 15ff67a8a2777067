package export

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"meetscribe/internal/app/export"
	"meetscribe/internal/app/model"
)

var reportFilePath string
var outputFilePath string

func init() {
	Cmd.Flags().StringVarP(&reportFilePath, "reportFilePath", "r", "", "report JSON file written by the process command")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("reportFilePath")
	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export a finished report to excel",
	Long: `Export a finished report to excel

- Transcript, speaker analytics and summary land on separate sheets`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(reportFilePath)
		if err != nil {
			log.Fatalf("cannot read report: %v", err)
		}

		var report model.Report
		if err := json.Unmarshal(data, &report); err != nil {
			log.Fatalf("report file is not valid JSON: %v", err)
		}

		if err := export.ToExcel(&report, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
