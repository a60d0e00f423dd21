package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TykTechnologies/graphql-froid/pkg/document"
	"github.com/TykTechnologies/graphql-froid/pkg/froid"
	froidhttp "github.com/TykTechnologies/graphql-froid/pkg/http"
)

const (
	keyListen    = "listen"
	keyPath      = "path"
	keyCacheSize = "cache-size"
	keyIncludeID = "include-id"
	keyMaxBody   = "max-body-size"

	shutdownTimeout = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "serve answers entity and node requests over HTTP",
	Example: "froid serve --listen :8080 --path /graphql",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return startServer(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String(keyListen, ":8080", "address to listen on")
	serveCmd.Flags().String(keyPath, "/graphql", "path of the GraphQL endpoint")
	serveCmd.Flags().Int(keyCacheSize, document.DefaultCacheSize, "number of parsed documents to keep, 0 disables the cache")
	serveCmd.Flags().Bool(keyIncludeID, false, "add the requested global id as id to resolved entities")
	serveCmd.Flags().Int64(keyMaxBody, froidhttp.DefaultMaxRequestBodySize, "largest accepted request body in bytes")

	for _, key := range []string{keyListen, keyPath, keyCacheSize, keyIncludeID, keyMaxBody} {
		_ = viper.BindPFlag(key, serveCmd.Flags().Lookup(key))
	}
}

func newServeHandler(logger log.Logger) (http.Handler, error) {
	config := froid.Config{
		Logger:    logger,
		IncludeID: viper.GetBool(keyIncludeID),
	}

	if size := viper.GetInt(keyCacheSize); size > 0 {
		cache, err := document.NewCache(size)
		if err != nil {
			return nil, err
		}
		config.DocumentProvider = cache.Provide
	}

	service, err := newService(config)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(viper.GetString(keyPath), froidhttp.NewGraphQLHTTPRequestHandler(service, logger, viper.GetInt64(keyMaxBody)))
	return mux, nil
}

func startServer(ctx context.Context) error {
	logger, flush, err := newLogger()
	if err != nil {
		return err
	}
	defer flush()

	handler, err := newServeHandler(logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              viper.GetString(keyListen),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("startServer",
			log.String("listen", server.Addr),
			log.String("path", viper.GetString(keyPath)),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("startServer", log.String("state", "shutting down"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
