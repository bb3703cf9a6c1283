package backend

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"douyin-downloader-go/crawler/douyin/model"
	"douyin-downloader-go/logger"
)

// 客户端存储键
const (
	KeyAuthenticated = "authenticated"
	KeyCurrentVideo  = "current_video"
)

// Storage 客户端持久化状态，语义同浏览器 localStorage
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Upstream 上游解析服务
type Upstream interface {
	GetAwemeID(ctx context.Context, shareURL string) (string, error)
	FetchOneVideo(ctx context.Context, awemeID string) (*model.VideoData, error)
}

// View 界面渲染
type View interface {
	ShowPasswordPrompt()
	ShowMainContent()
	ShowPasswordError(msg string)
	ClearPasswordInput()
	ShowLoading()
	HideLoading()
	ShowError(msg string)
	HideError()
	ShowResults(title, coverURL string)
	HideResults()
	ShowSuccess(msg string)
}

// Phase 解锁后的界面阶段
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State 应用状态
type State struct {
	Unlocked     bool
	Phase        Phase
	ErrorMessage string
	Current      *model.VideoData
}

// Options 构造 App 所需的依赖
type Options struct {
	Password   string
	Storage    Storage
	Upstream   Upstream
	Downloader Downloader
	View       View
}

// App 客户端控制器：密码门禁、解析流程和下载
type App struct {
	password   string
	storage    Storage
	upstream   Upstream
	downloader Downloader
	view       View
	state      State
}

func NewApp(opts Options) *App {
	return &App{
		password:   opts.Password,
		storage:    opts.Storage,
		upstream:   opts.Upstream,
		downloader: opts.Downloader,
		view:       opts.View,
	}
}

// State 返回当前状态的副本
func (a *App) State() State {
	return a.state
}

// Boot 读取持久化的认证标记和上次解析结果
func (a *App) Boot() error {
	v, ok, err := a.storage.GetItem(KeyAuthenticated)
	if err != nil {
		return NewAppError(ErrorTypeStorage, "读取认证状态失败", err)
	}
	a.state.Unlocked = ok && v == "true"
	if !a.state.Unlocked {
		a.view.ShowPasswordPrompt()
		return nil
	}
	a.view.ShowMainContent()

	raw, ok, err := a.storage.GetItem(KeyCurrentVideo)
	if err != nil {
		return NewAppError(ErrorTypeStorage, "读取上次解析结果失败", err)
	}
	if ok {
		var video model.VideoData
		if err := json.Unmarshal([]byte(raw), &video); err != nil {
			logger.WithComponent("app").Warnf("上次解析结果损坏，已忽略: %v", err)
		} else {
			a.state.Current = &video
		}
	}
	return nil
}

// SubmitPassword 校验密码，成功时持久化认证标记
func (a *App) SubmitPassword(input string) (bool, error) {
	if strings.TrimSpace(input) != a.password {
		a.view.ShowPasswordError(MsgWrongPassword)
		a.view.ClearPasswordInput()
		return false, nil
	}

	if err := a.storage.SetItem(KeyAuthenticated, "true"); err != nil {
		return false, NewAppError(ErrorTypeStorage, "保存认证状态失败", err)
	}
	a.state.Unlocked = true
	a.view.ShowMainContent()
	a.view.ShowPasswordError("")
	a.view.ClearPasswordInput()
	return true, nil
}

// Logout 清除认证标记
func (a *App) Logout() error {
	if err := a.storage.RemoveItem(KeyAuthenticated); err != nil {
		return NewAppError(ErrorTypeStorage, "清除认证状态失败", err)
	}
	a.state.Unlocked = false
	a.view.ShowPasswordPrompt()
	return nil
}

func (a *App) fail(err *AppError) error {
	a.state.Phase = PhaseError
	a.state.ErrorMessage = err.Message
	a.view.ShowError(err.Message)
	return err
}

// Parse 从分享文本中提取链接，依次调用 get_aweme_id 和 fetch_one_video
func (a *App) Parse(ctx context.Context, text string) error {
	if !a.state.Unlocked {
		return a.fail(NewAppError(ErrorTypeLocked, MsgLocked, nil))
	}

	input := strings.TrimSpace(text)
	if input == "" {
		return a.fail(NewAppError(ErrorTypeValidation, MsgEmptyInput, nil))
	}
	shareURL, ok := ExtractURL(input)
	if !ok {
		return a.fail(NewAppError(ErrorTypeNotFoundInInput, MsgNoURL, nil))
	}
	if !IsDouyinURL(shareURL) {
		return a.fail(NewAppError(ErrorTypeNotFoundInInput, MsgNotDouyin, nil))
	}

	a.state.Phase = PhaseLoading
	a.state.ErrorMessage = ""
	a.view.ShowLoading()
	a.view.HideError()
	a.view.HideResults()
	defer a.view.HideLoading()

	video, reason := a.resolve(ctx, shareURL)
	if reason != nil {
		logger.WithComponent("app").Errorf("解析失败: url=%s, err=%v", shareURL, reason)
		return a.fail(NewAppError(ErrorTypeUpstream, MsgParseFailed+reason.Error(), reason))
	}

	a.display(video)
	return nil
}

// resolve 返回的错误文本即用户可见的失败原因
func (a *App) resolve(ctx context.Context, shareURL string) (*model.VideoData, error) {
	awemeID, err := a.upstream.GetAwemeID(ctx, shareURL)
	if err != nil {
		return nil, upstreamReason(err, MsgNetwork)
	}
	if awemeID == "" {
		return nil, errors.New(MsgNoAwemeID)
	}

	video, err := a.upstream.FetchOneVideo(ctx, awemeID)
	if err != nil {
		return nil, upstreamReason(err, MsgVideoInfoFailed)
	}
	if video == nil {
		return nil, errors.New(MsgVideoInfoFailed)
	}
	return video, nil
}

// upstreamReason 上游的任何失败都只向用户展示 fallback，原始错误保留在 Unwrap 链中
func upstreamReason(err error, fallback string) error {
	return &reasonError{msg: fallback, err: err}
}

type reasonError struct {
	msg string
	err error
}

func (e *reasonError) Error() string { return e.msg }
func (e *reasonError) Unwrap() error { return e.err }

func (a *App) display(video *model.VideoData) {
	a.state.Phase = PhaseSuccess
	a.state.Current = video

	if raw, err := json.Marshal(video); err == nil {
		if err := a.storage.SetItem(KeyCurrentVideo, string(raw)); err != nil {
			logger.WithComponent("app").Warnf("保存解析结果失败: %v", err)
		}
	}

	title := video.Desc
	if title == "" {
		title = MsgNoTitle
	}
	a.view.ShowResults(title, video.CoverURL)
}

// DownloadVideo 下载当前视频
func (a *App) DownloadVideo(ctx context.Context) (string, error) {
	if !a.state.Unlocked {
		return "", a.fail(NewAppError(ErrorTypeLocked, MsgLocked, nil))
	}
	video := a.state.Current
	if !video.HasVideo() || video.VideoURL() == "" {
		return "", a.fail(NewAppError(ErrorTypeValidation, MsgNoVideo, nil))
	}
	return a.download(ctx, video.VideoURL(), VideoFileName(video.Desc))
}

// DownloadCover 下载当前视频封面
func (a *App) DownloadCover(ctx context.Context) (string, error) {
	if !a.state.Unlocked {
		return "", a.fail(NewAppError(ErrorTypeLocked, MsgLocked, nil))
	}
	video := a.state.Current
	if video == nil || video.CoverURL == "" {
		return "", a.fail(NewAppError(ErrorTypeValidation, MsgNoCover, nil))
	}
	return a.download(ctx, video.CoverURL, CoverFileName(video.Desc))
}

func (a *App) download(ctx context.Context, url, filename string) (string, error) {
	path, err := a.downloader.Download(ctx, url, filename)
	if err != nil {
		logger.WithComponent("app").Errorf("下载失败: %v", err)
		return "", a.fail(NewAppError(ErrorTypeUpstream, MsgDownloadFailed, err))
	}
	a.view.ShowSuccess(MsgDownloadStarted + filename)
	return path, nil
}
