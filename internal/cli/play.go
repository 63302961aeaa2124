package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"reliance-drill-service/internal/app"
	"reliance-drill-service/internal/config"
	"reliance-drill-service/internal/infra/memory"
	"reliance-drill-service/internal/ui/terminal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewPlayCmd runs a drill session in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		bankID  string
		seconds int
		noColor bool
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run a reliance drill in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), playParams{
				configPath: *configPath,
				bankID:     bankID,
				seconds:    seconds,
				noColor:    noColor,
				verbose:    verbose,
				stdout:     cmd.OutOrStdout(),
			})
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "question bank id (defaults to bank.default)")
	cmd.Flags().IntVar(&seconds, "seconds", 0, "countdown per question (defaults to quiz.countdown_seconds)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colours")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log to stderr while playing")
	return cmd
}

type playParams struct {
	configPath string
	bankID     string
	seconds    int
	noColor    bool
	verbose    bool
	stdout     io.Writer
}

func runPlay(ctx context.Context, params playParams) error {
	if !isTerminal(params.stdout) {
		return fmt.Errorf("play needs an interactive terminal")
	}

	// The UI owns the screen; logs only go to stderr when asked for.
	logWriter := io.Discard
	if params.verbose {
		logWriter = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logWriter, nil))

	cfg, err := config.LoadOptional(params.configPath)
	if err != nil {
		return err
	}
	if params.seconds > 0 {
		cfg.Quiz.CountdownSeconds = params.seconds
	}

	loader, release, err := openBankLoader(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer release()

	banks := memory.NewBankRepository(loader, config.TTLDuration(cfg.Bank.TTL, 10*time.Minute))
	service := app.NewQuizService(memory.NewSessionStore(), banks, cfg.Bank.Default, app.SessionOptions{
		CountdownSeconds: cfg.Quiz.CountdownSeconds,
		Logger:           logger,
	})

	controller := terminal.NewController()
	session := service.Open(params.bankID, controller)
	defer service.Close(session.ID())

	instructions, err := service.Instructions(ctx, params.bankID)
	if err != nil {
		// Start reports the failure to the UI as a load error.
		go func() { _ = session.Start(ctx) }()
	}
	return controller.Run(ctx, session, instructions, params.stdout, terminal.Options{
		NoColor: params.noColor || os.Getenv("NO_COLOR") != "",
	})
}

// isTerminal reports whether a writer is a TTY.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
