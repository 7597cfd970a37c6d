package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/thestorefront/storefront-engine/internal/api"
	"github.com/thestorefront/storefront-engine/internal/cart"
	"github.com/thestorefront/storefront-engine/internal/catalog"
	"github.com/thestorefront/storefront-engine/internal/renderer"
	"github.com/thestorefront/storefront-engine/internal/storage"
	"github.com/thestorefront/storefront-engine/internal/tui"
	"github.com/thestorefront/storefront-engine/pkg/config"
	"github.com/thestorefront/storefront-engine/pkg/logger"
	"github.com/thestorefront/storefront-engine/pkg/shutdown"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	cfg := config.Load()

	cartPath := cfg.CartPath
	if cartPath == "" {
		cartPath = getCartPath()
	}

	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Printf("Warning: could not load catalog from %s: %v", cfg.CatalogPath, err)
		cat = catalog.New()
	}

	if cfg.Headless {
		runHeadless(cfg, cat, cartPath)
		return
	}

	// Build the dashboard first so the logger can tee into its console.
	store := storage.NewFileStore(cartPath)

	bootLog := logger.New(logger.Options{
		Service: "storefront-engine",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ledger := cart.NewLedger(store, bootLog)
	dash := tui.NewDashboard(cat, ledger, cfg.HTTPPort)

	appLog := logger.New(logger.Options{
		Service: "storefront-engine",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Output:  io.MultiWriter(os.Stderr, dash.LogWriter()),
	})
	ledger.SetLogger(appLog)

	docs := renderer.NewDocumentRenderer(appLog)
	server := api.NewServer(cat, ledger, docs, appLog)

	serverErrChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%d", cfg.HTTPPort)
		dash.AddLog(fmt.Sprintf("Starting API server on %s", addr), "info")
		if err := server.Run(addr); err != nil {
			serverErrChan <- err
		}
	}()

	dash.AddLog(fmt.Sprintf("Storefront Engine %s starting...", Version), "info")
	dash.AddLog(fmt.Sprintf("Loaded %d product(s) from %s", cat.Len(), cfg.CatalogPath), "info")
	dash.AddLog(fmt.Sprintf("Cart persisted at %s", cartPath), "info")

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	tuiDone := make(chan struct{})
	go func() {
		if err := dash.Run(); err != nil {
			log.Printf("Dashboard error: %v", err)
		}
		close(tuiDone)
	}()

	select {
	case err := <-serverErrChan:
		dash.App.Stop()
		log.Fatalf("Server error: %v", err)
	case <-ctx.Done():
		dash.App.Stop()
	case <-tuiDone:
	}
}

func runHeadless(cfg config.Config, cat *catalog.Catalog, cartPath string) {
	appLog := logger.New(logger.Options{
		Service: "storefront-engine",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	store := storage.NewFileStore(cartPath)
	ledger := cart.NewLedger(store, appLog)
	docs := renderer.NewDocumentRenderer(appLog)
	server := api.NewServer(cat, ledger, docs, appLog)

	appLog.Info("starting storefront engine",
		"version", Version,
		"port", cfg.HTTPPort,
		"products", cat.Len(),
		"cart_path", cartPath,
	)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Run(fmt.Sprintf("0.0.0.0:%d", cfg.HTTPPort)); err != nil {
			serverErrChan <- err
		}
	}()

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	select {
	case err := <-serverErrChan:
		appLog.Error("server failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
		appLog.Info("shutting down")
	}
}

// getCartPath returns the path to the durable cart file.
// It tries to place it next to the executable, or falls back to current directory.
func getCartPath() string {
	// First, try to get the executable path and place the cart next to it
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		cartPath := filepath.Join(exeDir, "cart.json")

		if info, err := os.Stat(exeDir); err == nil && info.IsDir() {
			// Try to create a test file to check write permissions
			testFile := filepath.Join(exeDir, ".storefront-engine-write-test")
			if f, err := os.Create(testFile); err == nil {
				f.Close()
				os.Remove(testFile)
				return cartPath
			}
		}
	}

	// Fallback: use current directory
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "cart.json")
	}

	// Last resort: use home directory config (Unix) or AppData (Windows)
	var configDir string
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			configDir = filepath.Join(appData, "storefront-engine")
		} else {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "storefront-engine")
		}
	} else {
		if home := os.Getenv("HOME"); home != "" {
			configDir = filepath.Join(home, ".config", "storefront-engine")
		}
	}

	if configDir != "" {
		os.MkdirAll(configDir, 0755)
		return filepath.Join(configDir, "cart.json")
	}

	return "cart.json"
}
