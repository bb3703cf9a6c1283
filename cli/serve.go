package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"douyin-downloader-go/config"
	"douyin-downloader-go/crawler/douyin/fetch"
	"douyin-downloader-go/logger"
	"douyin-downloader-go/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动下载代理和视频信息代理服务",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		port := cfg.DefaultPort
		if cmd.Flags().Changed("port") {
			port = servePort
		}
		if port <= 0 || port > 65535 {
			return fmt.Errorf("无效端口: %d", port)
		}

		server.SetMode(logger.GetLogger().IsLevelEnabled(logrus.DebugLevel))

		upstream := fetch.NewAPIClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSec)*time.Second)
		handlers := server.NewHandlers(upstream, time.Duration(cfg.Proxy.TimeoutSec)*time.Second)
		logger.WithComponent("serve").Infof("上游接口: %s", cfg.Upstream.BaseURL)
		return server.Run(port, server.NewRouter(handlers))
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "监听端口（默认取配置 default_port）")
	rootCmd.AddCommand(serveCmd)
}
