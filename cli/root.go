package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"douyin-downloader-go/backend"
	"douyin-downloader-go/config"
	"douyin-downloader-go/crawler/douyin/fetch"
	"douyin-downloader-go/database"
	"douyin-downloader-go/logger"
)

// 程序版本信息
const Version = "1.0.0"

var configFile string

var rootCmd = &cobra.Command{
	Use:           "douyin-downloader",
	Short:         "抖音分享链接解析与下载工具",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case versionCmd.Name(), "help", "completion":
			return nil
		}
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		l := cfg.Logging
		if cmd.Name() == serveCmd.Name() {
			logger.InitLogger(l.LogFile, l.LogLevel, l.MaxSizeMB, l.MaxBackups, l.MaxAgeDays)
			return nil
		}
		// 终端命令的日志只写文件
		logger.InitFileOnly(l.LogFile, l.LogLevel, l.MaxSizeMB, l.MaxBackups, l.MaxAgeDays)
		return database.InitDB(cfg.DatabasePath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "配置文件路径（默认读取 ./config.yaml 或 ./config/config.yaml）")
}

// Execute 运行命令行，返回进程退出码
func Execute() int {
	return execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.Execute()
	database.CloseDB()
	if err == nil {
		return 0
	}
	var shown *displayedError
	if !errors.As(err, &shown) {
		color.New(color.FgRed).Fprintf(errOut, "Error: %v\n", err)
	}
	return 1
}

// displayedError 已经通过界面展示过的错误，不再重复输出
type displayedError struct {
	err error
}

func (e *displayedError) Error() string { return e.err.Error() }
func (e *displayedError) Unwrap() error { return e.err }

func displayed(err error) error {
	if err == nil {
		return nil
	}
	return &displayedError{err: err}
}

// newApp 按当前配置组装客户端控制器并完成启动
func newApp(cmd *cobra.Command) (*backend.App, error) {
	return newAppWithView(NewTerminalView(cmd.OutOrStdout()))
}

func newAppWithView(view *TerminalView) (*backend.App, error) {
	cfg := config.Get()
	app := backend.NewApp(backend.Options{
		Password:   cfg.Auth.Password,
		Storage:    database.ClientStorage{},
		Upstream:   fetch.NewAPIClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSec)*time.Second),
		Downloader: backend.NewFileDownloader(cfg.Download.OutputDir, time.Duration(cfg.Proxy.TimeoutSec)*time.Second),
		View:       view,
	})
	if err := app.Boot(); err != nil {
		return nil, err
	}
	return app, nil
}
