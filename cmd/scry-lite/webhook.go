package main

import (
	"fmt"

	"github.com/phrazzld/scry-lite/internal/telegram"
	"github.com/spf13/cobra"
)

func newWebhookCmd(root *rootOptions) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "set-webhook",
		Short: "Point the Telegram bot at a webhook URL",
		Long:  "Registers url with the Bot API using SCRY_TELEGRAM_BOT_TOKEN. The server answers updates on /api/telegram.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := root.load(cmd)
			if err != nil {
				return err
			}

			client := telegram.NewClient(cfg.Telegram.APIBaseURL, cfg.Telegram.BotToken, log)
			if err := client.SetWebhook(cmd.Context(), url); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "webhook set to %s\n", url)
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Public webhook URL, e.g. https://example.com/api/telegram")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
