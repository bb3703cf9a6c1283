package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"douyin-downloader-go/backend"
	"douyin-downloader-go/logger"
)

// download 下载代理：整体缓冲远程文件后返回，附带下载响应头
func (h *Handlers) download(c *gin.Context) {
	targetURL := c.Query("url")
	if targetURL == "" {
		abortWithError(c, backend.NewAppError(backend.ErrorTypeValidation, "URL parameter is required", nil))
		return
	}
	filename := c.Query("filename")

	log := logger.WithComponent("download_proxy")

	resp, err := h.fileClient.R().
		SetContext(c.Request.Context()).
		Get(targetURL)
	if err == nil && !resp.IsSuccess() {
		err = fmt.Errorf("Failed to fetch file: %d", resp.StatusCode())
	}
	if err != nil {
		log.Errorf("下载代理失败: url=%s, err=%v", targetURL, err)
		abortWithError(c, backend.NewAppError(backend.ErrorTypeUpstream, "Failed to download file", err))
		return
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Length", strconv.Itoa(len(body)))
	if filename != "" {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	}

	log.Infof("下载代理完成: url=%s, %d 字节", targetURL, len(body))
	c.Data(http.StatusOK, contentType, body)
}

// fetchOneVideo 视频信息代理：原样转发上游 JSON
func (h *Handlers) fetchOneVideo(c *gin.Context) {
	awemeID := c.Query("aweme_id")
	if awemeID == "" {
		abortWithError(c, backend.NewAppError(backend.ErrorTypeValidation, "aweme_id parameter is required", nil))
		return
	}

	body, err := h.videoInfo.FetchOneVideoRaw(c.Request.Context(), awemeID)
	if err == nil && !gjson.ValidBytes(body) {
		err = fmt.Errorf("invalid JSON from upstream")
	}
	if err != nil {
		logger.WithComponent("video_info_proxy").Errorf("视频信息代理失败: aweme_id=%s, err=%v", awemeID, err)
		abortWithError(c, backend.NewAppError(backend.ErrorTypeUpstream, "Failed to fetch data from API", err))
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
