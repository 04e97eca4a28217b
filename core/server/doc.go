// Package server provides HTTP server lifecycle management with graceful
// shutdown. It wraps the standard http.Server.
//
// # Features
//
//   - Graceful shutdown bounded by a timeout (WithShutdownTimeout, 30 seconds by default)
//   - TLS through a caller-supplied *tls.Config (WithTLS) and preset
//     configurations (DefaultTLSConfig, ModernTLSConfig, IntermediateTLSConfig,
//     StrictTLSConfig, NewTLSConfig)
//   - errgroup-friendly lifecycle through Server.Run
//   - Configuration from environment variables through Config and NewFromConfig
//   - Automatic certificate management through AutoCertServer
//
// The package installs no signal handlers, health check endpoints or
// middleware: signals are observed through the context the caller passes
// in, and middleware belongs to the http.Handler being served.
//
// # Basic Usage
//
// New takes the listen address and options; the handler is given when the
// server starts:
//
//	import "github.com/dmitrymomot/execkit/core/server"
//
//	srv := server.New(":8080", server.WithShutdownTimeout(10*time.Second))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, router))
//	if err := g.Wait(); err != nil {
//		log.Fatal("Server failed:", err)
//	}
//
// Server.Run returns a function that serves until ctx is cancelled, then
// stops the server gracefully and returns nil. Server.Start blocks until ctx
// is cancelled or serving fails; on cancellation it returns ctx.Err() and
// leaves the server running, so Stop performs the graceful shutdown. The
// package-level Run creates a server with default settings and runs it.
//
// # TLS Configuration
//
// With WithTLS the server calls ListenAndServeTLS with empty file names, so
// certificates must be in the tls.Config itself:
//
//	tlsConfig, err := server.NewTLSConfig(
//		server.WithTLSCertificate("cert.pem", "key.pem"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	srv := server.New(":8443", server.WithTLS(tlsConfig))
package server
