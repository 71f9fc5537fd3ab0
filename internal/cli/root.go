// Package cli はstorefrontコマンドのcobra定義。
package cli

import (
	"fmt"
	"path/filepath"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/session"
	"storefront/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app はサブコマンドが共有する依存。root の PersistentPreRunE で一度だけ組み立てる。
type app struct {
	apiURL  string
	home    string
	verbose bool

	log     *zap.Logger
	catalog *catalog.Client
	cart    *cart.Manager
	session *session.Session
}

func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Browse the catalog and manage a local shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "Catalog API base URL (or set STOREFRONT_API_URL)")
	root.PersistentFlags().StringVar(&a.home, "home", "", "Directory for cart and user data (or set STOREFRONT_HOME)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newHomeCmd(a),
		newProductsCmd(a),
		newCategoryCmd(a),
		newProductCmd(a),
		newCartCmd(a),
		newLoginCmd(a),
		newSignupCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.home != "" {
		cfg.Home = a.home
	}

	log, err := logger.NewCLI(a.verbose)
	if err != nil {
		return err
	}
	a.log = log

	store, err := storage.NewFileStore(filepath.Clean(cfg.Home))
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	log.Debug("storage ready", zap.String("dir", store.Dir()), zap.String("api", cfg.APIURL))

	a.catalog = catalog.NewClient(cfg.APIURL, cfg.Timeout, catalog.WithLogger(log.Named("catalog")))
	a.cart = cart.NewManager(store, cart.WithLogger(log.Named("cart")))
	a.session = session.New(store, log.Named("session"))
	return nil
}
