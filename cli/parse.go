package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"douyin-downloader-go/backend"
)

var parseCmd = &cobra.Command{
	Use:   "parse [分享文本...]",
	Short: "解析抖音分享文本，显示标题和封面",
	Long:  "解析抖音分享文本。不带参数时从标准输入读取整段文本。",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("读取输入失败: %w", err)
			}
			text = string(raw)
		}

		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := app.Parse(ctx, text); err != nil {
			return displayed(err)
		}
		if app.State().Current.HasVideo() {
			fmt.Fprintln(cmd.OutOrStdout(), "运行 download video 或 download cover 保存文件")
		}
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:       "download video|cover",
	Short:     "下载最近一次解析结果的视频或封面",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"video", "cover"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		var path string
		switch args[0] {
		case "video":
			path, err = app.DownloadVideo(ctx)
		case "cover":
			path, err = app.DownloadCover(ctx)
		}
		if err != nil {
			return displayed(err)
		}
		NewTerminalView(cmd.OutOrStdout()).ShowSuccess("已保存到 " + path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "显示版本号",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "douyin-downloader %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd, downloadCmd, versionCmd)
}

var _ backend.View = (*TerminalView)(nil)
