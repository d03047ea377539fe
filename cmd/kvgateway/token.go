package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/nao1215/kvgateway/pkg/middleware"
	"github.com/spf13/cobra"
)

// newTokenCommand は開発用のJWTを発行するサブコマンドを生成する。
// ゲートウェイと同じ--jwt-secretで署名する。
func newTokenCommand() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:           "token",
		Short:         "Mint a token accepted by a gateway started with --jwt-secret",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				return errors.New("--jwt-secret is required")
			}
			token, err := middleware.GenerateJWT(secret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "jwt-secret", "", "Secret shared with the gateway")
	cmd.Flags().StringVar(&subject, "subject", "kvgateway-cli", "Subject claim of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Lifetime of the token")

	return cmd
}
