package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-quote-keeper/internal/adapter"
	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/models"
)

const clientName = "go-quote-keeper-client"

// App is the command-line client. The server adapter and the logger are
// built once the global flags are parsed.
type App struct {
	cfg   config.ClientConfig
	build models.AppBuildInfo

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	newAdapter func(config.ClientConfig, *logger.Logger) (adapter.ServerAdapter, error)

	adapter adapter.ServerAdapter
	tokens  *TokenStore
	logger  *logger.Logger
}

// NewApp returns a client that prints results to out and logs to errOut.
func NewApp(cfg config.ClientConfig, build models.AppBuildInfo, out, errOut io.Writer) *App {
	return &App{
		cfg:        cfg,
		build:      build,
		in:         os.Stdin,
		out:        out,
		errOut:     errOut,
		newAdapter: adapter.NewHTTPServerAdapter,
		logger:     logger.Nop(),
	}
}

// Run executes args. Tokens rotated while the command ran are written back
// to the token file even when the command fails.
func (a *App) Run(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if a.adapter != nil && a.tokens != nil {
		if saveErr := a.tokens.Save(a.adapter.Tokens()); saveErr != nil {
			a.logger.Err(saveErr).Str("func", "*App.Run").Msg("failed to persist tokens")
			err = errors.Join(err, saveErr)
		}
	}
	return err
}

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "quotes",
		Short: "Command-line client for the quote keeper server",
		Long: `Manage folders, quotes and tags stored on a quote keeper server.

Results are printed as JSON. Run "quotes login" first; the session is kept
in the token file between invocations.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.ServerURL, "server", a.cfg.ServerURL, "quote keeper server URL")
	flags.DurationVar(&a.cfg.RequestTimeout, "timeout", a.cfg.RequestTimeout, "request timeout")
	flags.StringVar(&a.cfg.TokenFile, "token-file", a.cfg.TokenFile, "where the session tokens are kept")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level for diagnostics on stderr")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.versionCommand(),
		a.foldersCommand(),
		a.quotesCommand(),
		a.tagsCommand(),
	)

	return root
}

// setup runs after flag parsing and before every command.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := a.cfg.Normalize(); err != nil {
		return err
	}

	a.logger = logger.NewConsoleLogger(a.errOut, clientName, a.cfg.LogLevel)

	serverAdapter, err := a.newAdapter(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("create server adapter: %w", err)
	}

	tokens := NewTokenStore(a.cfg.TokenFile)
	pair, err := tokens.Load()
	if err != nil {
		return err
	}
	serverAdapter.SetTokens(pair)

	a.adapter = serverAdapter
	a.tokens = tokens
	a.logger.Debug().Str("server", a.cfg.ServerURL).Str("command", cmd.CommandPath()).Msg("client ready")
	return nil
}

func (a *App) print(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
