// kvgatewayのエントリポイント。
// 引数なしで起動するとHTTPゲートウェイとして動作し、キーバリューストアへの
// 読み書きをHTTPで公開する。set/get/tokenサブコマンドは稼働中の
// ゲートウェイを操作するためのクライアントとして動作する。
package main

import (
	"context"
	"io"
	"os"

	"github.com/nao1215/kvgateway/internal/cmdutil"
	"github.com/spf13/cobra"
)

func main() {
	// ^Cで終了できるようにする
	ctx, cancel := context.WithCancel(context.Background())
	cmdutil.CatchCtrlC(cancel)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		cmdutil.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// run はコマンドを組み立てて実行する。
func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := newRootCommand()
	// nilを渡すとcobraはos.Argsを読むため、空でも非nilにする
	cmd.SetArgs(append([]string{}, args...))
	cmd.SetOut(out)

	// コマンドラインの値を優先するため、解析前に環境変数を反映する
	for _, c := range append([]*cobra.Command{cmd}, cmd.Commands()...) {
		if err := cmdutil.SetFlagsFromEnvVariables(c.Flags()); err != nil {
			return err
		}
	}

	return cmd.ExecuteContext(ctx)
}

// newRootCommand はルートコマンドとサブコマンドを生成する。
func newRootCommand() *cobra.Command {
	cfg := &serverConfig{}

	cmd := &cobra.Command{
		Use:           "kvgateway",
		Short:         "HTTP gateway for a key-value store",
		Long:          "kvgateway exposes GET / , POST /set and GET /get/<key> over a key-value store.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), cfg)
		},
	}
	cfg.addFlags(cmd.Flags())

	cmd.AddCommand(newSetCommand())
	cmd.AddCommand(newGetCommand())
	cmd.AddCommand(newTokenCommand())

	return cmd
}
