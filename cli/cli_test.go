package cli

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"douyin-downloader-go/logger"
)

func TestMain(m *testing.M) {
	logger.InitLogger("", "panic", 1, 1, 1)
	color.NoColor = true
	os.Exit(m.Run())
}

// newUpstream 假上游：解析接口、视频详情接口和文件
func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/douyin/web/get_aweme_id", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":"7300"}`))
	})
	mux.HandleFunc("/api/douyin/web/fetch_one_video", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":200,"data":{"aweme_detail":{"desc":"Hello World","cover_url":"` + srv.URL + `/cover.jpg","video":{"download_addr":{"url_list":["` + srv.URL + `/video.mp4"]}}}}}`))
	})
	mux.HandleFunc("/video.mp4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video-bytes"))
	})
	mux.HandleFunc("/cover.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cover-bytes"))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, upstreamURL string) string {
	t.Helper()
	dataDir := t.TempDir()
	t.Setenv("USER_DATA_DIR", dataDir)
	t.Setenv("UPSTREAM_BASE_URL", upstreamURL+"/api/douyin/web")
	t.Setenv("AUTH_PASSWORD", "123456")
	return dataDir
}

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "douyin-downloader "+Version+"\n", out)
}

func TestParseRequiresLogin(t *testing.T) {
	setupEnv(t, newUpstream(t).URL)

	code, out, errOut := run(t, "", "parse", "https://v.douyin.com/abc/")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "请先输入访问密码")
	assert.Empty(t, errOut)
}

func TestLoginFlow(t *testing.T) {
	setupEnv(t, newUpstream(t).URL)

	code, out, _ := run(t, "", "login", "wrong")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "密码错误，请重新输入")
	assert.NotContains(t, out, "已锁定")

	code, out, _ = run(t, "123456\n", "login")
	assert.Equal(t, 0, code)
	assert.Equal(t, "密码: 已解锁\n", out)

	// 认证状态跨进程保留
	code, out, _ = run(t, "", "login")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "已解锁")

	code, _, _ = run(t, "", "logout")
	assert.Equal(t, 0, code)

	code, out, _ = run(t, "", "parse", "https://v.douyin.com/abc/")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "请先输入访问密码")
}

func TestParseAndDownload(t *testing.T) {
	dataDir := setupEnv(t, newUpstream(t).URL)

	code, _, _ := run(t, "", "login", "123456")
	require.Equal(t, 0, code)

	code, out, _ := run(t, "", "download", "video")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "没有可下载的视频")

	code, out, _ = run(t, "7.99 复制打开抖音 https://v.douyin.com/abc/ 看看", "parse")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "标题: Hello World")
	assert.Contains(t, out, "/cover.jpg")

	code, out, _ = run(t, "", "download", "video")
	require.Equal(t, 0, code, out)
	videoPath := filepath.Join(dataDir, "downloads", "Hello_World.mp4")
	assert.Contains(t, out, videoPath)
	content, err := os.ReadFile(videoPath)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(content))

	code, _, _ = run(t, "", "download", "cover")
	require.Equal(t, 0, code)
	content, err = os.ReadFile(filepath.Join(dataDir, "downloads", "Hello_World_cover.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "cover-bytes", string(content))
}

func TestParseValidation(t *testing.T) {
	setupEnv(t, newUpstream(t).URL)
	code, _, _ := run(t, "", "login", "123456")
	require.Equal(t, 0, code)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no url", []string{"parse", "没有链接"}, "未找到有效的链接"},
		{"not douyin", []string{"parse", "https://example.com/v"}, "请确保链接是抖音分享链接"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := run(t, "", tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestDownloadRejectsUnknownTarget(t *testing.T) {
	setupEnv(t, newUpstream(t).URL)

	code, _, errOut := run(t, "", "download", "music")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "Error:")
}

func TestTerminalView(t *testing.T) {
	var buf bytes.Buffer
	v := NewTerminalView(&buf)

	v.QuietPrompt = true
	v.ShowPasswordPrompt()
	v.ShowPasswordError("")
	v.HideError()
	v.HideResults()
	assert.Empty(t, buf.String())

	v.ShowResults("标题A", "")
	assert.Equal(t, "标题: 标题A\n", buf.String())

	buf.Reset()
	v.ShowError("出错了")
	v.ShowSuccess("开始下载：a.mp4")
	assert.Equal(t, "✗ 出错了\n✓ 开始下载：a.mp4\n", buf.String())

	buf.Reset()
	v.QuietPrompt = false
	v.ShowPasswordPrompt()
	assert.Contains(t, buf.String(), "已锁定")
}
