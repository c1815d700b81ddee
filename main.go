// Command ramk plays Ram Knight, a sliding puzzle on a character grid.
//
// It supports three modes:
//  1. default: play a level file interactively in the terminal, or run a
//     command string against it in batch mode (-e / -f)
//  2. "serve": run the HTTP server exposing REST API, WebSocket and an /mcp
//     HTTP endpoint
//  3. "mcp": run an MCP stdio server for AI agents
//
// Batch runs exit with the final game status: 0 victory, 1 invalid,
// 2 unfinished, 3 defeated.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/ramknight/ramk/api"
	"github.com/ramknight/ramk/game/engine"
	"github.com/ramknight/ramk/game/level"
	"github.com/ramknight/ramk/game/service"
	"github.com/ramknight/ramk/game/session"
	"github.com/ramknight/ramk/transport/mcp"
	"github.com/ramknight/ramk/transport/websocket"
	"github.com/ramknight/ramk/ui"
)

const (
	Version = "1.0.0"
	AppName = "Ram Knight"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	cmd := &cli.Command{
		Name:    "ramk",
		Usage:   "Ram Knight the game",
		Version: Version,
		Description: "Use [hjkl] to move G. Reach F. Avoid x. Push w and W. Destroy M and m. " +
			"Stop on o. Exit codes are: 0 victory, 1 invalid input, 2 unfinished, 3 defeated. Good Luck.",
		ArgsUsage: "[levelfile]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "execute",
				Aliases: []string{"e"},
				Usage:   "string of commands to execute, only directional commands [hjkl] are allowed, whitespace is ignored",
			},
			&cli.StringFlag{
				Name:    "moves-file",
				Aliases: []string{"f"},
				Usage:   "file containing commands to execute, only directional commands [hjkl] are allowed, whitespace is ignored",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "destination to store the final game state",
			},
			&cli.BoolFlag{
				Name:    "in-place",
				Aliases: []string{"i"},
				Usage:   "overwrite the level file with the final game state",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "silence output",
			},
		},
		Action: runPlay,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP server with REST API, WebSocket and MCP endpoint",
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
					&cli.StringFlag{
						Name:    "levels-dir",
						Value:   "levels",
						Usage:   "directory containing level files",
						Sources: cli.EnvVars("LEVELS_DIR"),
					},
					&cli.StringFlag{
						Name:    "sessions-dir",
						Value:   "sessions",
						Usage:   "directory for persisted sessions (ignored when DATABASE_URL is set)",
						Sources: cli.EnvVars("SESSIONS_DIR"),
					},
					&cli.BoolFlag{
						Name:    "ngrok",
						Usage:   "enable ngrok tunnel",
						Sources: cli.EnvVars("NGROK_ENABLED"),
					},
					&cli.StringFlag{
						Name:    "ngrok-auth",
						Usage:   "ngrok auth token",
						Sources: cli.EnvVars("NGROK_AUTHTOKEN"),
					},
					&cli.StringFlag{
						Name:    "ngrok-domain",
						Usage:   "custom ngrok domain (optional)",
						Sources: cli.EnvVars("NGROK_DOMAIN"),
					},
				},
				Action: runServe,
			},
			{
				Name:  "mcp",
				Usage: "run an MCP stdio server for AI agents",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "levels-dir",
						Value:   "levels",
						Usage:   "directory containing level files",
						Sources: cli.EnvVars("LEVELS_DIR"),
					},
				},
				Action: runMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// runPlay handles both batch and interactive play of a single level file.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	levelFile := cmd.Args().First()
	if levelFile == "" {
		return cli.Exit("ramk: missing level file argument (see ramk --help)", int(engine.StatusInvalid))
	}
	quiet := cmd.Bool("quiet")

	grid, err := level.Load(levelFile)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ramk: %v", err), int(engine.StatusInvalid))
	}

	game, err := engine.NewGame(grid)
	if err != nil {
		return cli.Exit(fmt.Sprintf("ramk: %v", err), int(engine.StatusInvalid))
	}

	// A level that is already decided is reported as-is
	if game.Status().Terminal() {
		if !quiet {
			fmt.Println(level.Encode(game.Grid()))
		}
		return cli.Exit("", int(game.Status()))
	}

	instr := cmd.String("execute")
	if movesFile := cmd.String("moves-file"); movesFile != "" {
		data, err := os.ReadFile(movesFile)
		if err != nil {
			return cli.Exit(fmt.Sprintf("ramk: %v", err), int(engine.StatusInvalid))
		}
		instr = string(data)
	}

	if instr != "" {
		return runBatch(cmd, game, levelFile, instr)
	}

	return runInteractive(cmd, game, levelFile)
}

// runBatch executes a command string and exits with the final status.
func runBatch(cmd *cli.Command, game *engine.Game, levelFile, instr string) error {
	dirs, err := level.ParseMoves(instr)
	if err != nil {
		if !cmd.Bool("quiet") {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return cli.Exit("", int(engine.StatusInvalid))
	}

	for _, d := range dirs {
		if game.Move(d).Terminal() {
			break
		}
	}

	if err := tearDown(cmd, game.Grid(), levelFile, true); err != nil {
		return cli.Exit(fmt.Sprintf("ramk: %v", err), int(engine.StatusInvalid))
	}
	return cli.Exit("", int(game.Status()))
}

// runInteractive plays the level in a terminal UI.
func runInteractive(cmd *cli.Command, game *engine.Game, levelFile string) error {
	model := ui.NewModel(game.Grid())

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return cli.Exit(fmt.Sprintf("ramk: %v", err), int(engine.StatusInvalid))
	}

	m, ok := final.(ui.Model)
	if !ok {
		return cli.Exit("ramk: unexpected final model", int(engine.StatusInvalid))
	}

	if moves := m.Moves(); moves != "" && !cmd.Bool("quiet") {
		fmt.Println(moves)
	}
	if err := tearDown(cmd, m.Grid(), levelFile, false); err != nil {
		return cli.Exit(fmt.Sprintf("ramk: %v", err), int(engine.StatusInvalid))
	}
	return cli.Exit("", int(m.Status()))
}

// tearDown saves or prints the final board according to the output flags.
func tearDown(cmd *cli.Command, grid engine.Grid, levelFile string, batch bool) error {
	switch {
	case cmd.String("output") != "":
		return level.Save(cmd.String("output"), grid)
	case cmd.Bool("in-place"):
		return level.Save(levelFile, grid)
	case batch && !cmd.Bool("quiet"):
		fmt.Println(level.Encode(grid))
	}
	return nil
}

// runServe starts the HTTP server with REST API, WebSocket hub and /mcp
// endpoint, plus an optional ngrok tunnel.
func runServe(ctx context.Context, cmd *cli.Command) error {
	gameService, sessionManager, levelManager, err := initializeServices(cmd.String("levels-dir"), cmd.String("sessions-dir"))
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Start background maintenance routines
	go sessionCleanupRoutine(sessionManager)
	go levelRefreshRoutine(levelManager)

	hub := websocket.NewHub()
	go hub.Run()

	apiServer := api.NewServer(gameService, hub)
	mcpServer := mcp.NewServer(gameService)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
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

		response := mcpServer.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	addr := fmt.Sprintf("%s:%d", cmd.String("host"), cmd.Int("port"))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

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

	if cmd.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(serveCtx, mainRouter, cmd.String("ngrok-auth"), cmd.String("ngrok-domain"))
		}()
	}

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)
	cancel()

	// Save sessions before exiting
	if err := sessionManager.SaveAllSessions(); err != nil {
		log.Printf("Warning: failed to save sessions on shutdown: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("Server stopped")
	return nil
}

// runNgrokTunnel provisions a public tunnel and serves the router through it.
func runNgrokTunnel(ctx context.Context, handler http.Handler, authToken, domain string) {
	if authToken == "" {
		log.Println("WARNING: Ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN env var)")
		return
	}

	log.Println("Starting ngrok tunnel...")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Printf("Using custom ngrok domain: %s", domain)
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
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
	log.Printf("Ngrok tunnel established: %s", ngrokURL)
	log.Printf("  REST API (ngrok): %s/api", ngrokURL)
	log.Printf("  WebSocket (ngrok): %s/ws?session=<session_id>", ngrokURL)
	log.Printf("  MCP endpoint (ngrok): %s/mcp", ngrokURL)

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Printf("Ngrok server error: %v", err)
	}
	log.Println("Ngrok tunnel closed")
}

// runMCP runs the MCP server over stdio, talking to the service directly.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	gameService, sessionManager, _, err := initializeServices(cmd.String("levels-dir"), "sessions")
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	go sessionCleanupRoutine(sessionManager)

	log.Println("MCP stdio server ready")
	if err := mcp.NewServer(gameService).ServeStdio(); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}

// initializeServices wires the level manager, session persistence and the
// game service. DATABASE_URL selects PostgreSQL persistence; otherwise
// sessions are stored as JSON files.
func initializeServices(levelsDir, sessionsDir string) (service.GameService, *session.Manager, *level.Manager, error) {
	levelManager, err := level.NewManager(levelsDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create level manager: %w", err)
	}

	var persistence session.SessionPersistence
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		persistence, err = session.NewPostgresPersistence(dbURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect session store: %w", err)
		}
		log.Println("Using PostgreSQL session persistence")
	} else {
		persistence, err = session.NewFilePersistence(sessionsDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create session persistence: %w", err)
		}
		log.Printf("Using file session persistence in %s", sessionsDir)
	}

	sessionManager := session.NewManagerWithPersistence(persistence)

	if err := sessionManager.LoadPersistedSessions(); err != nil {
		log.Printf("Warning: failed to load persisted sessions: %v", err)
	}

	gameService := service.NewGameService(sessionManager, levelManager)
	return gameService, sessionManager, levelManager, nil
}

// levelRefreshRoutine periodically drops the level cache so edits to the
// levels directory show up without a restart.
func levelRefreshRoutine(manager *level.Manager) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		manager.RefreshCache()
	}
}

// sessionCleanupRoutine periodically removes sessions that have not been
// accessed within the retention window.
func sessionCleanupRoutine(manager *session.Manager) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed := manager.CleanupExpiredSessions(24 * time.Hour)
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}
