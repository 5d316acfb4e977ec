package cmd

import (
	"MusicHub/config"
	"MusicHub/server"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建数据库索引和表结构",
	Long:  `MongoDB 下创建 users.email 与 streams.song_id 唯一索引；MySQL 下执行 GORM AutoMigrate。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		// relay 不参与迁移
		cfg.RelayDriver = config.RelayMemory

		backends, err := server.OpenBackends(cmd.Context(), cfg, true)
		if err != nil {
			return err
		}
		defer backends.Close()

		cmd.Printf("Migration finished for storage driver %q\n", cfg.StorageDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
