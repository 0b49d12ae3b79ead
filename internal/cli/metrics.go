package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/revlog-project/revlog/pkg/logging"
)

var metricsListen string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Serve Prometheus metrics for this data root",
	Long: `Serve the Prometheus /metrics endpoint for this data root. Requires
metrics.enabled: true in config.yaml. The process keeps the client open;
counters reflect operations performed by this process only.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client := requireClient()
		defer client.Close()

		gatherer := client.Gatherer()
		if gatherer == nil {
			fmtErr("metrics are disabled; set metrics.enabled: true in .revlog/config.yaml")
			os.Exit(1)
		}

		listen := metricsListen
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

		logging.Info("serving metrics", map[string]any{"listen": listen})
		fmt.Printf("Serving metrics on %s/metrics\n", listen)
		if err := http.ListenAndServe(listen, mux); err != nil {
			fmtErr("metrics server: %v", err)
			os.Exit(1)
		}
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsListen, "listen", ":9464", "listen address")
	rootCmd.AddCommand(metricsCmd)
}
