package backend

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"douyin-downloader-go/logger"
	"douyin-downloader-go/utils"
)

// 标题为空时使用的文件名
const (
	DefaultVideoStem = "douyin_video"
	DefaultCoverStem = "douyin_cover"
	VideoSuffix      = ".mp4"
	CoverSuffix      = "_cover.jpg"
)

// 浏览器 UA，部分 CDN 拒绝默认 UA
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

// VideoFileName 由视频描述生成视频文件名
func VideoFileName(desc string) string {
	return fileName(desc, DefaultVideoStem, VideoSuffix)
}

// CoverFileName 由视频描述生成封面文件名
func CoverFileName(desc string) string {
	return fileName(desc, DefaultCoverStem, CoverSuffix)
}

func fileName(desc, fallback, suffix string) string {
	title := desc
	if title == "" {
		title = fallback
	}
	stem := utils.CleanFileStem(title)
	if stem == "" {
		// 标题全是非 ASCII 字符时清理结果为空
		stem = fallback
	}
	return stem + suffix
}

// Downloader 把 url 保存为 filename，返回最终路径
type Downloader interface {
	Download(ctx context.Context, url, filename string) (string, error)
}

// FileDownloader 直接请求原始地址并写入输出目录
type FileDownloader struct {
	client    *resty.Client
	OutputDir string
}

// NewFileDownloader timeout 为 0 表示不设超时
func NewFileDownloader(outputDir string, timeout time.Duration) *FileDownloader {
	return &FileDownloader{
		client: resty.New().
			SetHeader("User-Agent", UserAgent).
			SetTimeout(timeout),
		OutputDir: outputDir,
	}
}

func (d *FileDownloader) Download(ctx context.Context, url, filename string) (string, error) {
	if err := utils.EnsureDir(d.OutputDir); err != nil {
		return "", fmt.Errorf("创建下载目录失败: %w", err)
	}
	target := filepath.Join(d.OutputDir, filename)

	resp, err := d.client.R().
		SetContext(ctx).
		SetOutput(target).
		Get(url)
	if err != nil {
		os.Remove(target)
		return "", fmt.Errorf("下载 %s 失败: %w", url, err)
	}
	if resp.IsError() {
		os.Remove(target)
		return "", fmt.Errorf("下载 %s 失败: HTTP %d", url, resp.StatusCode())
	}

	logger.WithComponent("downloader").Infof("下载完成: %s → %s (%d 字节)", url, target, resp.Size())
	return target, nil
}
