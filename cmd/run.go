package cmd

import (
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	steamadapter "github.com/bnema/steambooster/internal/adapters/steam"
	"github.com/bnema/steambooster/internal/adapters/steamweb"
	"github.com/bnema/steambooster/internal/application"
	"github.com/bnema/steambooster/internal/domain"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start farming every configured account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.accounts.Load(cmd.Context())
			if errors.Is(err, domain.ErrAccountsFileCreated) {
				app.log.Info("created %s template; fill it and restart", app.settings.accountsPath)
				return nil
			}
			if err != nil {
				return err
			}
			if len(accounts) == 0 {
				app.log.Warning("no accounts configured; fill %s and restart", app.settings.accountsPath)
				return nil
			}

			if err := steamadapter.InitDirectory(); err != nil {
				app.log.Warning("steam directory refresh failed, using built-in server list: %v", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var wg sync.WaitGroup
			for _, creds := range accounts {
				log := app.log.WithPrefix(creds.Username)

				fetcher, err := steamweb.NewFetcher(log, app.settings.httpTimeout)
				if err != nil {
					return err
				}

				controller := application.NewSessionController(application.ControllerConfig{
					Credentials:   creds,
					Transport:     steamadapter.NewTransport(log),
					Fetcher:       fetcher,
					Logger:        log,
					ReconnectWait: app.settings.reconnectWait,
				})

				wg.Add(1)
				go func() {
					defer wg.Done()
					controller.Run(ctx)
				}()
			}

			app.log.Info("farming %d account(s); press Ctrl+C to stop", len(accounts))
			wg.Wait()
			return nil
		},
	}
}
