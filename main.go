package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"hausa-platform/config"
	"hausa-platform/database"
	"hausa-platform/importer"
	"hausa-platform/scheduler"
	"hausa-platform/services"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "hausa-platform",
		Short: "Hausa öğrenme platformu API sunucusu",
		RunE:  runServe,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML yapılandırma dosyası (CONFIG_FILE)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "HTTP sunucusunu başlatır",
		RunE:  runServe,
	})
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newMaintainCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openStore yapılandırmayı yükler, veritabanına bağlanır ve şemayı kurar.
func openStore(ctx context.Context) (*config.Config, *database.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("veritabanı bağlantı hatası: %w", err)
	}
	if err := database.InitDB(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return cfg, database.NewStore(db), nil
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Veritabanı şemasını oluşturur",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.DB().Close()

			log.Println("Şema hazır")
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Boş ders ve başarı tablolarını katalogla doldurur",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.DB().Close()

			catalog, err := database.DefaultCatalog()
			if catalogPath != "" {
				var data []byte
				if data, err = os.ReadFile(catalogPath); err != nil {
					return err
				}
				catalog, err = database.ParseCatalog(data)
			}
			if err != nil {
				return err
			}
			return database.Seed(cmd.Context(), store, catalog)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "gömülü katalog yerine kullanılacak YAML dosyası")
	return cmd
}

func newImportCommand() *cobra.Command {
	var sheet string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-lessons <file.xlsx|file.csv>",
		Short: "Dersleri tablo dosyasından ekler veya günceller",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.DB().Close()

			result, err := importer.Import(cmd.Context(), store, importer.Config{
				FilePath:  args[0],
				SheetName: sheet,
				DryRun:    dryRun,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "excel sayfa adı (varsayılan ilk sayfa)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "yalnızca doğrula, yazma")
	return cmd
}

func newMaintainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "maintain",
		Short: "Seri sıfırlama ve oturum temizliğini bir kez çalıştırır",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.DB().Close()

			svc := services.New(store, services.Options{Auth: cfg.Auth, DailyGoal: cfg.Learning.DailyXPGoal})
			return scheduler.New(cfg.Scheduler, svc.Streaks).RunOnce(cmd.Context())
		},
	}
}
