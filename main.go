package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-web/audio"
	"snake-web/config"
	"snake-web/game"
	"snake-web/game/clock"
	"snake-web/game/input"
	"snake-web/game/types"
	"snake-web/locale"
	"snake-web/network"
	"snake-web/storage"
	"snake-web/ui"
	"snake-web/ui/terminal"
)

const graphGames = 50

// frontend is a local display that forwards player input
type frontend interface {
	game.Renderer
	SetStatus(msg string)
	Run(ctx context.Context, dispatch func(input.Action)) error
}

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file")
	frontendName := flag.String("frontend", "", "Frontend: raylib, terminal or web")
	difficulty := flag.String("difficulty", "", "Difficulty: easy, medium or hard")
	mapID := flag.String("map", "", "Map: classic, box or cross")
	store := flag.String("store", "", "Score store: json, sqlite3, sqlite or memory")
	dataPath := flag.String("db", "", "Path of the score file or database")
	addr := flag.String("addr", "", "HTTP listen address, empty disables the web server")
	codec := flag.String("codec", "", "Websocket codec: json or msgpack")
	lang := flag.String("lang", "", "Language for status messages")
	seed := flag.Uint64("seed", 0, "Random seed, 0 seeds from the clock")
	mute := flag.Bool("mute", false, "Disable sound")
	flag.Parse()

	logger := log.New(os.Stderr, "[main] ", log.LstdFlags|log.Lmsgprefix)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	// flags win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "frontend":
			cfg.Frontend = *frontendName
		case "difficulty":
			cfg.Difficulty = *difficulty
		case "map":
			cfg.Map = *mapID
		case "store":
			cfg.Store = *store
		case "db":
			cfg.DataPath = *dataPath
		case "addr":
			cfg.Addr = *addr
		case "codec":
			cfg.Codec = *codec
		case "lang":
			cfg.Lang = *lang
		case "seed":
			cfg.Seed = *seed
		case "mute":
			cfg.Mute = *mute
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("config: %v", err)
	}
	config.Clamp(&cfg)

	if err := run(cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(cfg config.Config, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dir := filepath.Dir(cfg.DataPath); cfg.Store != storage.BackendMemory && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	scores, err := storage.Open(cfg.Store, cfg.DataPath)
	if err != nil {
		return err
	}
	defer scores.Close()

	catalog, err := locale.New(cfg.Lang)
	if err != nil {
		return err
	}
	codec, err := network.CodecByName(cfg.Codec)
	if err != nil {
		return err
	}

	var display frontend
	switch cfg.Frontend {
	case config.FrontendRaylib:
		f := ui.NewRaylibFrontend(catalog)
		f.SetHistory(func() []int {
			history, err := scores.RecentScores(graphGames)
			if err != nil {
				logger.Printf("score history: %v", err)
			}
			return history
		})
		display = f
	case config.FrontendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		display = terminal.New(screen, catalog)
	}

	hub := network.NewHub(codec)
	renderers := game.Renderers{hub}
	notifiers := game.Notifiers{hub}

	announcer := locale.NewAnnouncer(catalog)
	notifiers = append(notifiers, announcer)
	if display != nil {
		renderers = append(renderers, display)
		announcer.OnMessage(display.SetStatus)
	}

	sound := audio.NewNotifier()
	sound.SetMuted(cfg.Mute)
	if !cfg.Mute && display != nil {
		// a headless server has nobody to play to
		sound.Init()
	}
	defer sound.Close()
	notifiers = append(notifiers, sound)

	loop := clock.NewLoop()
	ctrl, err := game.NewController(loop, game.Options{
		Rules:      cfg.GameRules(),
		Difficulty: types.Difficulty(cfg.Difficulty),
		MapID:      cfg.Map,
		Store:      scores,
		Renderer:   renderers,
		Notifier:   notifiers,
		Seed:       cfg.Seed,
	})
	if err != nil {
		return err
	}
	renderers.OnStateChanged(ctrl.Snapshot())

	hub.OnCommand(func(cmd network.Command) {
		loop.Do(func() {
			if err := network.Apply(ctrl, cmd); err != nil {
				logger.Printf("command %q: %v", cmd.Cmd, err)
			}
		})
	})
	dispatch := func(a input.Action) {
		loop.Do(func() { input.Apply(ctrl, a) })
	}

	go loop.Run(ctx)
	go hub.Run(ctx)

	var srv *http.Server
	serverErr := make(chan error, 1)
	if cfg.Addr != "" {
		srv = network.NewServer(hub, scores).HTTPServer(cfg.Addr)
		go func() {
			logger.Printf("listening on %s", cfg.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()
	} else if display == nil {
		return errors.New("web frontend needs a listen address")
	}

	if display != nil {
		err = display.Run(ctx, dispatch)
	} else {
		select {
		case <-ctx.Done():
		case err = <-serverErr:
		}
	}
	stop()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			logger.Printf("http shutdown: %v", serr)
		}
	}
	return err
}
