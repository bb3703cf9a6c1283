package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var errWrongPassword = errors.New("密码错误")

var loginCmd = &cobra.Command{
	Use:   "login [password]",
	Short: "输入访问密码解锁",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		view := NewTerminalView(cmd.OutOrStdout())
		view.QuietPrompt = true
		app, err := newAppWithView(view)
		if err != nil {
			return err
		}
		if app.State().Unlocked {
			fmt.Fprintln(cmd.OutOrStdout(), "已解锁")
			return nil
		}

		var password string
		if len(args) == 1 {
			password = args[0]
		} else {
			fmt.Fprint(cmd.OutOrStdout(), "密码: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("读取密码失败: %w", err)
			}
			password = strings.TrimRight(line, "\r\n")
		}

		ok, err := app.SubmitPassword(password)
		if err != nil {
			return err
		}
		if !ok {
			return displayed(errWrongPassword)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "已解锁")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "清除认证状态",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		return app.Logout()
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
