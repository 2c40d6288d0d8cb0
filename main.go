// Command mazerunner starts the Maze Runner game server.
//
// It supports two modes:
//  1. "serve" (default) - runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" - runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Configuration comes from the environment, optionally seeded from a .env
// file. Flags cover host/port, debug logging, and ngrok tunneling for easy
// external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/localfirst-games/mazerunner/api"
	"github.com/localfirst-games/mazerunner/config"
	"github.com/localfirst-games/mazerunner/game/analytics"
	"github.com/localfirst-games/mazerunner/game/level"
	"github.com/localfirst-games/mazerunner/game/service"
	"github.com/localfirst-games/mazerunner/game/session"
	"github.com/localfirst-games/mazerunner/transport/mcp"
	"github.com/localfirst-games/mazerunner/transport/websocket"
	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Maze Runner Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	if err := rootCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:           "mazerunner",
		Usage:          "maze game server with REST, WebSocket, and MCP transports",
		Version:        Version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server with REST API, WebSocket, and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Value: "localhost",
				Usage: "HTTP server host",
			},
			&cli.StringFlag{
				Name:    "port",
				Value:   "8080",
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "expose the server through an ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: runServe,
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:    "mcp",
		Aliases: []string{"stdio-mcp", "mcp-stdio"},
		Usage:   "run an MCP stdio server, reusing a running HTTP server when one is up",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Value: "http://localhost:8080",
				Usage: "base URL of the HTTP API to proxy tool calls to",
			},
		},
		Action: runStdioMCP,
	}
}

// runServe starts the HTTP server with REST API, WebSocket hub, and an /mcp
// proxy endpoint. If ngrok is enabled (via flag or environment), it also
// provisions a public tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.Port = cmd.String("port")

	log.Printf("Starting %s v%s", AppName, Version)

	// The hub exists before the game service because the service broadcasts
	// every snapshot through it.
	hub := websocket.NewHub()
	go hub.Run()

	gameService, dispatcher := initializeServices(ctx, cfg, hub)

	apiServer := api.NewServer(gameService, hub)

	addr := cmd.String("host") + cfg.Addr()

	// Create MCP client for /mcp endpoint
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()

	// Mount API server at root
	mainRouter.Handle("/", apiServer)

	// Always add MCP endpoint for HTTP server
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start regular HTTP server
	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?session=<session_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Start ngrok tunnel if enabled (from flag or environment)
	if cmd.Bool("ngrok") || cfg.NgrokEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()

			authToken := cmd.String("ngrok-auth")
			if authToken == "" {
				log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
				return
			}

			log.Println("Starting ngrok tunnel...")

			// Configure ngrok endpoint
			domain := cmd.String("ngrok-domain")
			var tunnel ngrokConfig.Tunnel
			if domain != "" {
				tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
				log.Printf("Using custom ngrok domain: %s", domain)
			} else {
				tunnel = ngrokConfig.HTTPEndpoint()
			}

			// Start ngrok tunnel
			tun, err := ngrok.Listen(serveCtx,
				tunnel,
				ngrok.WithAuthtoken(authToken),
			)
			if err != nil {
				log.Printf("Failed to start ngrok tunnel: %v", err)
				return
			}
			defer func() {
				if err := tun.Close(); err != nil {
					log.Printf("Failed to close ngrok tunnel: %v", err)
				}
			}()

			ngrokURL := tun.URL()
			log.Printf("🚀 Ngrok tunnel established: %s", ngrokURL)
			log.Printf("  REST API (ngrok): %s/api", ngrokURL)
			log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
			log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)
			log.Printf("  Game UI (ngrok): %s/", ngrokURL)

			// Serve HTTP through ngrok tunnel
			if err := http.Serve(tun, mainRouter); err != nil && err != http.ErrServerClosed {
				log.Printf("Ngrok server error: %v", err)
			}
			log.Println("Ngrok tunnel closed")
		}()
	}

	// Wait for shutdown signal
	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Flush whatever the analytics queue still holds before exiting.
	dispatcher.Close()

	// Wait for all goroutines to finish
	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// initializeServices wires the level client, analytics dispatcher, session
// manager, and game service together. It also starts a background cleanup
// routine to prune stale sessions.
func initializeServices(ctx context.Context, cfg config.Config, hub *websocket.Hub) (service.GameService, *analytics.Dispatcher) {
	opts := []level.Option{level.WithTimeout(cfg.LevelTimeout)}
	if cfg.LevelCache {
		opts = append(opts, level.WithCache())
	}
	levelClient := level.NewClient(cfg.LevelAPIURL, opts...)

	// A dead level service is not fatal at startup. Sessions can still be
	// created; a run surfaces the failure when its first stage loads.
	pingCtx, cancel := context.WithTimeout(ctx, cfg.LevelTimeout)
	defer cancel()
	if err := levelClient.Ping(pingCtx); err != nil {
		log.Printf("WARNING: level service at %s not responding: %v", cfg.LevelAPIURL, err)
	}

	dispatcher := analytics.New(analytics.Config{
		Endpoint:   cfg.AnalyticsURL,
		QueueDepth: cfg.AnalyticsQueueSize,
		Timeout:    cfg.AnalyticsTimeout,
	})

	sessionManager := session.NewManager()

	gameService := service.NewGameService(sessionManager, levelClient, dispatcher, service.Config{
		DefaultPlayerID: cfg.PlayerID,
		TotalStages:     cfg.TotalStages,
		TickInterval:    cfg.SnapshotTick,
		Broadcaster:     hub,
	})

	// Start session cleanup routine
	go sessionCleanupRoutine(sessionManager, cfg.SessionTTL, cfg.CleanupInterval)

	return gameService, dispatcher
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the TTL.
func sessionCleanupRoutine(manager *session.Manager, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(ttl)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}

// runStdioMCP runs an MCP stdio server.
// It tries to reuse an external API at --api-url; if unavailable, it starts a
// minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	var baseURL string

	// Test if external server is running
	externalURL := cmd.String("api-url")
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		// No external server found, start internal one
		log.Printf("No external API server found, starting internal HTTP server")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Start internal HTTP server on a random available port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub()
		go hub.Run()

		gameService, dispatcher := initializeServices(ctx, cfg, hub)
		defer dispatcher.Close()

		apiServer := api.NewServer(gameService, hub)

		httpServer := &http.Server{
			Handler: apiServer,
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	// Create MCP client pointing to the selected server
	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
