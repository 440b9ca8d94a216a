package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sb",
		Short:         "SteamBooster (sb): farm card drops and idle hours on Steam accounts",
		Long:          "sb keeps configured Steam accounts in a playing state and automatically farms the games that still have card drops remaining, scanning the community badge pages on an interval.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountsCmd(app),
		newRunCmd(app),
	)

	return rootCmd
}
