package cmd

import (
	"MusicHub/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动HTTP服务器",
	Long:  `启动 MusicHub HTTP 服务器，提供注册登录、播放次数统计和 token 中转接口`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
