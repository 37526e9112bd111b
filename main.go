// Command rushhour runs the Rush Hour sliding puzzle solver.
//
// One binary, several commands:
//  1. "serve" – runs the HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  2. "mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//  3. "solve" – solves one catalog board and prints the path position by position
//  4. "bench" – measures every strategy against catalog boards, with table and CSV output
//  5. "boards" – lists the board catalog
//
// Flags control host/port, the boards directory, debug logging, and optional
// ngrok tunneling for easy external access during development.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/gridrush/rushhour/api"
	"github.com/gridrush/rushhour/puzzle/bench"
	"github.com/gridrush/rushhour/puzzle/catalog"
	"github.com/gridrush/rushhour/puzzle/results"
	"github.com/gridrush/rushhour/puzzle/service"
	"github.com/gridrush/rushhour/transport/mcp"
	"github.com/gridrush/rushhour/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Rush Hour Solver"
)

var log = logrus.New()

// main loads the environment and dispatches to the selected command.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Error loading .env file: %v", err)
		}
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:    "rushhour",
		Usage:   "Rush Hour puzzle solver with REST, WebSocket and MCP interfaces",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("debug") {
				log.SetLevel(logrus.DebugLevel)
				log.Debug("Debug logging enabled")
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			serveCommand(),
			mcpCommand(),
			solveCommand(),
			benchCommand(),
			boardsCommand(),
		},
	}
}

func boardsDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "boards-dir",
		Value:   "boards",
		Usage:   "Directory containing puzzle board files",
		Sources: cli.EnvVars("BOARDS_DIR"),
	}
}

func resultsDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "results-dir",
		Value:   "results",
		Usage:   "Directory for persisted solve results",
		Sources: cli.EnvVars("RESULTS_DIR"),
	}
}

// initializeServices wires the board catalog and result store into the solve
// service. An empty resultsDir keeps results in memory only, which is what
// the one-shot commands want.
func initializeServices(boardsDir, resultsDir string) (service.SolveService, error) {
	boardCatalog, err := catalog.NewManager(boardsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create board catalog: %w", err)
	}

	var resultStore *results.Manager
	if resultsDir == "" {
		resultStore = results.NewManager()
	} else {
		persistence, err := results.NewFilePersistence(resultsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create result persistence: %w", err)
		}
		resultStore = results.NewManagerWithPersistence(persistence)

		// Load persisted results on startup
		if err := resultStore.LoadPersisted(); err != nil {
			log.Warnf("Failed to load persisted results: %v", err)
		}

		// Start result cleanup routine
		go resultCleanupRoutine(resultStore)
	}

	return service.NewSolveService(boardCatalog, resultStore), nil
}

// resultCleanupRoutine periodically removes stored solves that have not been
// accessed within the retention window.
func resultCleanupRoutine(manager *results.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpired(24 * time.Hour)
		if removed > 0 {
			log.Infof("Cleaned up %d expired results", removed)
		}
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server with REST API, WebSocket and MCP endpoint",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "HTTP server host",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   8080,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			boardsDirFlag(),
			resultsDirFlag(),
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "Enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:  "ngrok-auth",
				Usage: "Ngrok auth token (or use NGROK_AUTHTOKEN env var)",
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "Custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := initializeServices(cmd.String("boards-dir"), cmd.String("results-dir"))
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			return runHTTPServer(ctx, cmd, svc)
		},
	}
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp proxy endpoint. If ngrok is enabled (via flag or environment), it also
// provisions a public tunnel. Blocks until a shutdown signal arrives.
func runHTTPServer(ctx context.Context, cmd *cli.Command, svc service.SolveService) error {
	// Create WebSocket hub
	hub := websocket.NewHub(svc)
	go hub.Run()

	// Create API server
	apiServer := api.NewServer(svc, hub)

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))

	// The /mcp endpoint proxies tool calls back through the public REST API,
	// so MCP clients and curl users observe identical behavior.
	mcpClient := mcp.NewClient(fmt.Sprintf("http://%s", addr))

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
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
		Addr:        addr,
		Handler:     mainRouter,
		ReadTimeout: 15 * time.Second,
		// Bench requests repeat slow searches, so writes get more room than
		// the usual 15 seconds.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Setup graceful shutdown context
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Infof("%s v%s", AppName, Version)
		log.Infof("HTTP server listening on %s", addr)
		log.Infof("REST API: http://%s/api", addr)
		log.Infof("WebSocket: ws://%s/ws?board=<board>", addr)
		log.Infof("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Start ngrok tunnel if enabled
	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, cmd, mainRouter)
		}()
	}

	// Wait for shutdown signal
	select {
	case sig := <-stop:
		log.Infof("Received signal: %v. Shutting down...", sig)
	case <-ctx.Done():
	}
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Info("Server stopped")
	return nil
}

// runNgrokTunnel exposes the router through an ngrok tunnel until ctx is
// cancelled.
func runNgrokTunnel(ctx context.Context, cmd *cli.Command, handler http.Handler) {
	// Get auth token from flag or environment (support both naming conventions)
	authToken := cmd.String("ngrok-auth")
	if authToken == "" {
		authToken = os.Getenv("NGROK_AUTHTOKEN")
		if authToken == "" {
			authToken = os.Getenv("NGROK_AUTH_TOKEN")
		}
	}

	if authToken == "" {
		log.Warn("Ngrok enabled but no auth token provided (use --ngrok-auth, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN env var)")
		return
	}

	log.Info("Starting ngrok tunnel...")

	domain := cmd.String("ngrok-domain")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Infof("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx,
		tunnel,
		ngrok.WithAuthtoken(authToken),
	)
	if err != nil {
		log.Errorf("Failed to start ngrok tunnel: %v", err)
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Errorf("Failed to close ngrok tunnel: %v", err)
		}
	}()

	ngrokURL := tun.URL()
	log.Infof("🚀 Ngrok tunnel established: %s", ngrokURL)
	log.Infof("  REST API (ngrok): %s/api", ngrokURL)
	log.Infof("  WebSocket (ngrok): %s/ws?board=<board>", ngrokURL)
	log.Infof("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Errorf("Ngrok server error: %v", err)
	}
	log.Info("Ngrok tunnel closed")
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run an MCP stdio server for AI assistant integration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Value: "http://localhost:8080",
				Usage: "API server to proxy tool calls to",
			},
			boardsDirFlag(),
			resultsDirFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runStdioMCP(cmd)
		},
	}
}

// runStdioMCP runs an MCP stdio server. It tries to reuse an API server that
// is already running; if none answers the health check, it starts a minimal
// internal HTTP API bound to a random loopback port and targets that.
func runStdioMCP(cmd *cli.Command) error {
	externalURL := cmd.String("api-url")
	log.Infof("Checking for API server at %s...", externalURL)

	var baseURL string
	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode == http.StatusOK {
		resp.Body.Close()
		log.Infof("API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		if resp != nil {
			resp.Body.Close()
		}
		log.Info("No API server found, starting internal HTTP server")

		svc, err := initializeServices(cmd.String("boards-dir"), cmd.String("results-dir"))
		if err != nil {
			return fmt.Errorf("failed to initialize services: %w", err)
		}

		// Start internal HTTP server on a random available port
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}
		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		log.Infof("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		hub := websocket.NewHub(svc)
		go hub.Run()
		apiServer := api.NewServer(svc, hub)

		httpServer := &http.Server{
			Handler: apiServer,
		}
		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Errorf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	// Create MCP client pointing to the selected server
	mcpClient := mcp.NewClient(baseURL)
	log.Info("MCP stdio server ready")

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

func solveCommand() *cli.Command {
	return &cli.Command{
		Name:      "solve",
		Usage:     "Solve a board and print the solution step by step",
		ArgsUsage: "[board]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Value:   "bfs",
				Usage:   "Search strategy: bfs, dfs, ucs or astar",
			},
			boardsDirFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := initializeServices(cmd.String("boards-dir"), "")
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			return runSolve(ctx, svc, cmd.Args().First(), cmd.String("strategy"), os.Stdout)
		},
	}
}

// runSolve solves one board and prints every position along the path. An
// empty board name solves the catalog default.
func runSolve(ctx context.Context, svc service.SolveService, board, strategy string, w io.Writer) error {
	resp, err := svc.Solve(ctx, &service.SolveRequest{Board: board, Strategy: strategy})
	if err != nil {
		return err
	}

	if !resp.Found {
		fmt.Fprintln(w, "No solution found.")
		fmt.Fprintf(w, "Expanded %d states, generated %d in %.1fms.\n",
			resp.Stats.Expanded, resp.Stats.Generated, resp.DurationMS)
		return nil
	}

	fmt.Fprintf(w, "Solution found in %d moves using %s (cost %d).\n\n",
		resp.MoveCount, strings.ToUpper(resp.Strategy), resp.Cost)

	for i, frame := range resp.Frames {
		if i == 0 {
			fmt.Fprintf(w, "Move %d:\n", i)
		} else {
			move := resp.Moves[i-1]
			fmt.Fprintf(w, "Move %d: %s %s (cost %d)\n", i, move.Vehicle, move.Direction, move.Cost)
		}
		for _, row := range frame {
			fmt.Fprintln(w, row)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Expanded %d states, generated %d in %.1fms.\n",
		resp.Stats.Expanded, resp.Stats.Generated, resp.DurationMS)
	return nil
}

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:      "bench",
		Usage:     "Measure every strategy against catalog boards",
		ArgsUsage: "[board ...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "runs",
				Value: bench.DefaultRuns,
				Usage: "Repeats per board and strategy pair",
			},
			&cli.StringSliceFlag{
				Name:    "strategy",
				Aliases: []string{"s"},
				Usage:   "Strategies to measure (default all four)",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Also write results to this CSV file",
			},
			boardsDirFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := initializeServices(cmd.String("boards-dir"), "")
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			req := &service.BenchRequest{
				Boards:     cmd.Args().Slice(),
				Strategies: cmd.StringSlice("strategy"),
				Runs:       int(cmd.Int("runs")),
			}
			return runBench(ctx, svc, req, cmd.String("csv"), os.Stdout)
		},
	}
}

// runBench runs the measurement harness and renders the summary table, plus
// a CSV file when requested.
func runBench(ctx context.Context, svc service.SolveService, req *service.BenchRequest, csvPath string, w io.Writer) error {
	resp, err := svc.Bench(ctx, req)
	if err != nil {
		return err
	}

	if err := bench.WriteTable(w, resp.Results); err != nil {
		return err
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer f.Close()
		if err := bench.WriteCSV(f, resp.Results); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		fmt.Fprintf(w, "\nResults saved to: %s\n", csvPath)
	}
	return nil
}

func boardsCommand() *cli.Command {
	return &cli.Command{
		Name:  "boards",
		Usage: "List the boards in the catalog",
		Flags: []cli.Flag{boardsDirFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := initializeServices(cmd.String("boards-dir"), "")
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			return runListBoards(ctx, svc, os.Stdout)
		},
	}
}

// runListBoards prints one line per catalog board.
func runListBoards(ctx context.Context, svc service.SolveService, w io.Writer) error {
	boards, err := svc.ListBoards(ctx)
	if err != nil {
		return err
	}
	if len(boards) == 0 {
		fmt.Fprintln(w, "No boards found.")
		return nil
	}
	for _, b := range boards {
		fmt.Fprintf(w, "%-12s %dx%d, %d vehicles\n", b.BoardID, b.Width, b.Height, b.VehicleCount)
	}
	return nil
}
