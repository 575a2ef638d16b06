package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/imgsweep/internal/config"
	"github.com/nao1215/imgsweep/internal/export"
	"github.com/nao1215/imgsweep/internal/log"
	"github.com/nao1215/imgsweep/internal/page"
	"github.com/nao1215/imgsweep/internal/pipeline"
	"github.com/nao1215/imgsweep/internal/storage"
	"github.com/nao1215/imgsweep/internal/transport"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <page-url|html-file|manifest>",
		Short: "Download every image of a page",
		Long: `Export downloads the images of one document, one at a time, in document order.

For each image the largest srcset candidate is chosen; without a srcset the
rendered currentSrc is used, then src. Files are named image_<n>.<ext>, where
<ext> comes from the response Content-Type (jpg when it is missing).

The source can be:
- an http(s) page URL, parsed as static HTML (or rendered with --render)
- a local HTML file
- a YAML or JSON manifest: {base: URL, images: [{src, currentSrc, srcset}]}

Examples:
  # Save into the download directory
  imgsweep export https://example.com/gallery

  # Render the page first so lazy and script-inserted images are seen
  imgsweep export --render -o ./pics https://example.com/app

  # Collect everything into one SQLite archive
  imgsweep export -a gallery.sqlar https://example.com/gallery

  # Go through Tor
  imgsweep export --tor http://exampleonionaddress.onion/`,
		Args: cobra.ExactArgs(1),
		RunE: runExportCmd,
	}

	// Output flags
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir(),
		"Directory to save images into")
	cmd.Flags().StringP("archive", "a", "",
		"Save images into this SQLite Archive (.sqlar) instead of a directory")

	// Enumeration flags
	cmd.Flags().Bool("render", false,
		"Load the page in headless Chromium before enumerating images")
	cmd.Flags().String("browser", "",
		"DevTools URL of a running browser to render with (requires --render)")
	cmd.Flags().String("charset", "",
		"Override the page charset for static HTML (e.g. shift_jis)")

	// Network flags
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy address for all requests (e.g. 127.0.0.1:1080)")
	cmd.Flags().Bool("tor", false,
		"Route all requests through an embedded Tor daemon")
	cmd.Flags().DurationP("tor-timeout", "T", config.DefaultTorStartupTimeout,
		"Timeout for embedded Tor startup")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request (0 for none)")
	cmd.Flags().Int64("max-size", config.DefaultMaxBodySize,
		"Maximum size in bytes of one image (0 for no limit)")

	// Log flags
	cmd.Flags().Bool("json-log", false, "Write logs as JSON")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSONLog)
	slog.SetDefault(logger)

	return runExport(cmd.Context(), cfg, logger, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ArchivePath, err = cmd.Flags().GetString("archive")
	if err != nil {
		return nil, err
	}

	cfg.Render, err = cmd.Flags().GetBool("render")
	if err != nil {
		return nil, err
	}

	cfg.BrowserURL, err = cmd.Flags().GetString("browser")
	if err != nil {
		return nil, err
	}

	cfg.Charset, err = cmd.Flags().GetString("charset")
	if err != nil {
		return nil, err
	}

	cfg.ProxyAddress, err = cmd.Flags().GetString("proxy")
	if err != nil {
		return nil, err
	}

	cfg.UseTor, err = cmd.Flags().GetBool("tor")
	if err != nil {
		return nil, err
	}

	cfg.TorStartupTimeout, err = cmd.Flags().GetDuration("tor-timeout")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.MaxBodySize, err = cmd.Flags().GetInt64("max-size")
	if err != nil {
		return nil, err
	}

	cfg.JSONLog, err = cmd.Flags().GetBool("json-log")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.Source = args[0]
	}

	return cfg, nil
}

// setupLogger creates a secure structured logger writing to w.
func setupLogger(w io.Writer, verbose, jsonFormat bool) *slog.Logger {
	if jsonFormat {
		return log.NewSecureJSONLogger(w, verbose)
	}
	return log.NewSecureLogger(w, verbose)
}

// runExport enumerates the source document and exports its images.
// The summary goes to stdout and progress notices to stderr.
// Enumeration and setup failures abort the run; per-image failures do not.
func runExport(ctx context.Context, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	clientOpts := []transport.Option{
		transport.WithTimeout(cfg.Timeout),
		transport.WithMaxBodySize(cfg.MaxBodySize),
		transport.WithLocalFiles(page.IsLocal(cfg.Source)),
	}

	var client *transport.Client
	proxyAddress := cfg.ProxyAddress

	if cfg.UseTor {
		embeddedTor := transport.NewEmbeddedTor(transport.WithStartupTimeout(cfg.TorStartupTimeout))
		fmt.Fprintln(stderr, "Starting embedded Tor daemon (this may take a minute)...")
		if err := embeddedTor.Start(ctx); err != nil {
			return fmt.Errorf("failed to start embedded Tor: %w", err)
		}
		defer func() {
			logger.Debug("stopping embedded Tor daemon")
			if err := embeddedTor.Stop(); err != nil {
				logger.Error("failed to stop embedded Tor", "error", err)
			}
		}()

		var err error
		client, err = embeddedTor.NewClient(clientOpts...)
		if err != nil {
			return fmt.Errorf("failed to create Tor client: %w", err)
		}
		proxyAddress = embeddedTor.SocksAddr()
		logger.Info("embedded Tor daemon ready", "socks_addr", proxyAddress)
	} else {
		if proxyAddress != "" {
			clientOpts = append(clientOpts, transport.WithProxy(proxyAddress))
		}
		var err error
		client, err = transport.NewClient(clientOpts...)
		if err != nil {
			return fmt.Errorf("failed to create HTTP client: %w", err)
		}
	}

	loaderOpts := []page.LoaderOption{page.WithLoaderLogger(logger)}
	if cfg.Charset != "" {
		loaderOpts = append(loaderOpts, page.WithPageCharset(cfg.Charset))
	}
	if cfg.Render {
		rendererOpts := []page.RendererOption{page.WithRendererLogger(logger)}
		if cfg.BrowserURL != "" {
			rendererOpts = append(rendererOpts, page.WithBrowserURL(cfg.BrowserURL))
		}
		if proxyAddress != "" {
			rendererOpts = append(rendererOpts, page.WithBrowserProxy(proxyAddress))
		}
		loaderOpts = append(loaderOpts, page.WithRenderer(page.NewRenderer(rendererOpts...)))
	}

	doc, err := page.NewLoader(client, loaderOpts...).Load(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to enumerate images: %w", err)
	}
	logger.Info("document enumerated", "images", doc.Len(), "base", doc.BaseURL)

	fetcher, err := client.WithBase(doc.BaseURL)
	if err != nil {
		return err
	}

	saver, closeSaver, err := openSaver(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSaver(); err != nil {
			logger.Error("failed to close output", "error", err)
		}
	}()

	exporter := export.New(fetcher, saver,
		export.WithLogger(logger),
		export.WithMetadataNotice(cfg.Verbose),
	)

	p := pipeline.New(exporter,
		pipeline.WithLogger(logger),
		pipeline.WithOutput(stdout),
	)

	result, err := p.Run(ctx, doc.Images)
	if err != nil {
		return err
	}

	if errors.Is(ctx.Err(), context.Canceled) {
		logger.Warn("export interrupted", "exported", result.Exported, "images", doc.Len())
	}
	return nil
}

// openSaver returns the save target selected by cfg and a function that
// releases it.
func openSaver(ctx context.Context, cfg *config.Config) (storage.Saver, func() error, error) {
	if cfg.ArchivePath != "" {
		archive, err := storage.OpenArchive(ctx, cfg.ArchivePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open archive: %w", err)
		}
		return archive, archive.Close, nil
	}

	dir, err := storage.NewDirSaver(cfg.OutputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}
	return dir, func() error { return nil }, nil
}
