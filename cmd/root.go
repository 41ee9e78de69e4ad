package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/cardapiolabs/cardapio/internal/storefront"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "cardapio",
	Short: "Digital menu and WhatsApp ordering from spreadsheet exports",
	Long: `cardapio loads a restaurant catalog from published spreadsheet CSV exports,
renders an interactive menu, manages the shopping cart and hands finished
orders off to WhatsApp.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		log := logrus.New()
		log.SetLevel(cfg.LogrusLevel())

		sf, err := storefront.New(cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		if err := sf.Load(ctx); err != nil {
			// No partial menu: one message, nothing else renders.
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		term := storefront.NewTerminal(sf, os.Stdin, os.Stdout)
		if err := term.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().Bool("demo", false, "Run with a generated demo catalog instead of sheet URLs")
	rootCmd.Flags().Int64("demo-seed", 42, "Random seed for the demo catalog")
	rootCmd.Flags().String("timezone", "America/Sao_Paulo", "Timezone for business hours")
	rootCmd.Flags().String("whatsapp-phone", "", "Recipient phone for the order handoff")
	rootCmd.Flags().String("storage", "file", "Cart persistence backend (file or redis)")
	rootCmd.Flags().String("storage-path", ".cardapio", "Directory for file storage")
	rootCmd.Flags().String("redis-addr", "localhost:6379", "Redis address when storage is redis")
	rootCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	viper.BindPFlag("demo", rootCmd.Flags().Lookup("demo"))
	viper.BindPFlag("demo_seed", rootCmd.Flags().Lookup("demo-seed"))
	viper.BindPFlag("timezone", rootCmd.Flags().Lookup("timezone"))
	viper.BindPFlag("whatsapp_phone", rootCmd.Flags().Lookup("whatsapp-phone"))
	viper.BindPFlag("storage", rootCmd.Flags().Lookup("storage"))
	viper.BindPFlag("storage_path", rootCmd.Flags().Lookup("storage-path"))
	viper.BindPFlag("redis_addr", rootCmd.Flags().Lookup("redis-addr"))
	viper.BindPFlag("log_level", rootCmd.Flags().Lookup("log-level"))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
