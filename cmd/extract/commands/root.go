package commands

import (
	"context"
	"fmt"

	"steam-extract/pkg/cache"
	"steam-extract/pkg/config"
	"steam-extract/pkg/pipeline"
	"steam-extract/pkg/scrapers/steamdb"
	"steam-extract/pkg/steamapi"
	"steam-extract/pkg/subject"

	"github.com/spf13/cobra"
)

type options struct {
	refresh bool
	scrape  bool
	browser bool
}

// env is what every subcommand needs to run the pipeline.
type env struct {
	cfg     *config.Config
	store   *cache.SQLite
	client  *steamapi.Client
	loader  steamdb.Loader
	service *pipeline.Service
}

func (e *env) Close() {
	e.store.Close()
}

func Root() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "extract",
		Short:        "Extract store metadata and exports for a Steam app",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and refetch from the store API")
	root.PersistentFlags().BoolVar(&opts.scrape, "scrape", true, "read DLC, achievements and depots from the catalog page")
	root.PersistentFlags().BoolVar(&opts.browser, "browser", false, "render the catalog page in headless Chrome")

	root.AddCommand(fetchCmd(opts), exportCmd(opts), watchCmd(opts))
	return root
}

func setup(opts *options) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	store, err := cache.New(cfg.CacheDBPath)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	client := steamapi.NewClient(steamapi.Options{
		Endpoint:          cfg.APIURL,
		Store:             store,
		Namespace:         cfg.CacheNamespace,
		RequestsPerSecond: cfg.APIRPS,
		Timeout:           cfg.APITimeout,
	})

	cfg.ScrapeEnabled = cfg.ScrapeEnabled && opts.scrape
	cfg.BrowserEnabled = cfg.BrowserEnabled || opts.browser

	loader := steamdb.NewLoader(cfg.CatalogBaseURL, cfg.BrowserEnabled)
	var pages pipeline.PageSource
	if cfg.ScrapeEnabled {
		pages = loader
	}

	return &env{
		cfg:     cfg,
		store:   store,
		client:  client,
		loader:  loader,
		service: pipeline.NewService(client, pages),
	}, nil
}

func refresh(ctx context.Context, e *env, raw string, force bool) (*pipeline.State, error) {
	appID, err := subject.Detect(raw)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", raw, err)
	}
	return e.service.Refresh(ctx, appID, force)
}
