package main

import (
	"fmt"

	"github.com/nao1215/kvgateway/pkg/httpclient"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const DefaultURL = "http://localhost:4000"

// clientConfig はゲートウェイに接続するサブコマンドの設定。
type clientConfig struct {
	URL   string
	Token string
}

func (cfg *clientConfig) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&cfg.URL, "url", DefaultURL, "Base URL of the gateway")
	flags.StringVar(&cfg.Token, "token", "", "Bearer token sent with write requests")
}

func (cfg *clientConfig) newClient() *httpclient.Client {
	return httpclient.New(cfg.URL, httpclient.WithToken(cfg.Token))
}

// newSetCommand は POST /set を呼ぶサブコマンドを生成する。
func newSetCommand() *cobra.Command {
	cfg := &clientConfig{}

	cmd := &cobra.Command{
		Use:           "set <key> <value>",
		Short:         "Store a value under a key",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := cfg.newClient().Set(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}
	cfg.addFlags(cmd.Flags())

	return cmd
}

// newGetCommand は GET /get/<key> を呼ぶサブコマンドを生成する。
func newGetCommand() *cobra.Command {
	cfg := &clientConfig{}

	cmd := &cobra.Command{
		Use:           "get <key>",
		Short:         "Print the value stored under a key",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := cfg.newClient().Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("getting %s: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	cfg.addFlags(cmd.Flags())

	return cmd
}
