package cli

import (
	"io"

	"github.com/fatih/color"
)

// TerminalView 在终端渲染客户端状态
type TerminalView struct {
	// QuietPrompt 为 true 时不输出锁定提示，login 命令自己负责提示输入
	QuietPrompt bool

	out     io.Writer
	info    *color.Color
	warn    *color.Color
	failure *color.Color
	success *color.Color
	title   *color.Color
}

func NewTerminalView(out io.Writer) *TerminalView {
	return &TerminalView{
		out:     out,
		info:    color.New(color.FgCyan),
		warn:    color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		success: color.New(color.FgGreen),
		title:   color.New(color.Bold),
	}
}

func (v *TerminalView) ShowPasswordPrompt() {
	if v.QuietPrompt {
		return
	}
	v.warn.Fprintln(v.out, "🔒 已锁定，运行 login 输入访问密码")
}

// 终端没有独立的主界面和输入框
func (v *TerminalView) ShowMainContent()    {}
func (v *TerminalView) ClearPasswordInput() {}
func (v *TerminalView) HideLoading()        {}
func (v *TerminalView) HideError()          {}
func (v *TerminalView) HideResults()        {}

func (v *TerminalView) ShowPasswordError(msg string) {
	if msg == "" {
		return
	}
	v.failure.Fprintln(v.out, "✗ "+msg)
}

func (v *TerminalView) ShowLoading() {
	v.info.Fprintln(v.out, "⏳ 解析中...")
}

func (v *TerminalView) ShowError(msg string) {
	v.failure.Fprintln(v.out, "✗ "+msg)
}

func (v *TerminalView) ShowResults(title, coverURL string) {
	v.title.Fprintln(v.out, "标题: "+title)
	if coverURL != "" {
		v.info.Fprintln(v.out, "封面: "+coverURL)
	}
}

func (v *TerminalView) ShowSuccess(msg string) {
	v.success.Fprintln(v.out, "✓ "+msg)
}
