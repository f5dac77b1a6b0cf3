package cmd

import (
	"log"

	"github.com/pthm/bandlint/internal/config"
	"github.com/pthm/bandlint/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP evaluation API",
	Long: `Start an HTTP server exposing the evaluator.

Endpoints:
  GET  /                 service information
  GET  /health           health check
  POST /evaluate         {"essay": "...", "taskType": "task1|task2", "deep": false}
  POST /evaluate/image   multipart form with an image file and taskType
  GET  /sample-response  evaluation of a built-in sample essay

The port defaults to $PORT or 3001. Image evaluation and deep evaluations
need ANTHROPIC_API_KEY (or BANDLINT_JUDGE=claude-code for deep).`,
	Args:         cobra.NoArgs,
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default $PORT or 3001)")
	RootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	eng, err := loadEngine(cfg)
	if err != nil {
		return err
	}

	judge := newJudge(cfg)
	extractor := newExtractor(cfg)
	if verbose {
		log.Printf("Lexicon: %s", eng.Lexicon().Name)
		log.Printf("AI second opinion: %t, image evaluation: %t", judge != nil, extractor != nil)
	}

	srv := server.New(server.Config{
		Port:      cfg.Port,
		Engine:    eng,
		Judge:     judge,
		Extractor: extractor,
	})
	return srv.Start()
}
