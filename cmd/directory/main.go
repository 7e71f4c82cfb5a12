package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/empdirectory/internal/cli"
	"github.com/dmitrijs2005/empdirectory/internal/config"
	"github.com/dmitrijs2005/empdirectory/internal/cryptox"
	"github.com/dmitrijs2005/empdirectory/internal/directory"
	"github.com/dmitrijs2005/empdirectory/internal/logging"
	"github.com/dmitrijs2005/empdirectory/internal/models"
	"github.com/dmitrijs2005/empdirectory/internal/seed"
	"github.com/dmitrijs2005/empdirectory/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	log, err := logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	key := []byte(cfg.EncryptionKey)
	if cfg.PromptKey {
		if key, err = cli.PromptKey(stderr); err != nil {
			return err
		}
	} else if cfg.UsesPlaceholderKey() {
		log.Warn(ctx, "using the built-in placeholder encryption key; supply -k or -p to protect the data")
	}
	secret := string(key)
	cryptox.WipeByteArray(key)

	dataset, err := loadDataset(cfg.SeedFile)
	if err != nil {
		return err
	}

	open := func(ctx context.Context) (directory.Store, error) {
		s, err := storage.Open(ctx, storage.Options{
			Dir:           cfg.DataDir,
			Name:          cfg.DatabaseName,
			EncryptionKey: secret,
			Logger:        log,
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	dir := directory.New(open, seed.NewSeeder(cfg.SeedLimit, log), dataset, log)
	defer func() {
		if err := dir.Close(); err != nil {
			log.Debug(ctx, "directory close", "error", err)
		}
	}()

	app := cli.NewApp(dir, stdin, stdout, log)
	if len(cfg.Command) > 0 {
		return app.Exec(ctx, cfg.Command)
	}
	app.Run(ctx)
	return nil
}

func loadDataset(path string) ([]models.Employee, error) {
	if path == "" {
		return seed.DefaultDataset()
	}
	return seed.LoadDataset(path)
}
