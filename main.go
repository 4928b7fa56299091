package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/termblog/app"
	"github.com/CrestNiraj12/termblog/infra/auth"
	"github.com/CrestNiraj12/termblog/infra/blogapi"
	"github.com/CrestNiraj12/termblog/infra/cache"
	"github.com/CrestNiraj12/termblog/infra/config"
	"github.com/CrestNiraj12/termblog/infra/editor"
	"github.com/CrestNiraj12/termblog/tui"
	"github.com/CrestNiraj12/termblog/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type cliMode int

const (
	cliRun cliMode = iota
	cliServe
	cliVersion
	cliHelp
	cliInvalid
)

func parseCLIArgs(args []string) (cliMode, string) {
	if len(args) == 0 {
		return cliRun, ""
	}

	switch args[0] {
	case "serve":
		if len(args) > 1 {
			return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args[1:], " "))
		}
		return cliServe, ""
	case "--version", "-version", "-v":
		return cliVersion, ""
	case "--help", "-h", "help":
		return cliHelp, ""
	default:
		return cliInvalid, fmt.Sprintf("unexpected argument: %s", strings.Join(args, " "))
	}
}

func usage() string {
	return "Usage: termblog [serve] [--version|-version|-v] [--help|-h]"
}

func resolveVersionInfo(v, c, d, moduleVersion string, settings map[string]string) (string, string, string) {
	if v == "dev" {
		if mv := strings.TrimSpace(moduleVersion); mv != "" && mv != "(devel)" {
			v = mv
		}
	}
	if c == "none" {
		if rev := strings.TrimSpace(settings["vcs.revision"]); rev != "" {
			c = rev[:min(len(rev), 12)]
		}
	}
	if d == "unknown" {
		if t := strings.TrimSpace(settings["vcs.time"]); t != "" {
			d = t
		}
	}
	return v, c, d
}

func buildSettingsMap(in []debug.BuildSetting) map[string]string {
	out := make(map[string]string, len(in))
	for _, s := range in {
		out[s.Key] = s.Value
	}
	return out
}

func resolvedRuntimeVersionInfo(v, c, d string) (string, string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info == nil {
		return v, c, d
	}
	return resolveVersionInfo(v, c, d, info.Main.Version, buildSettingsMap(info.Settings))
}

// services are the blog API adapters shared by both front ends.
type services struct {
	posts     app.PostService
	comments  app.CommentService
	summaries app.SummaryService
	users     app.UserService
	follows   app.FollowService
}

func buildServices(cfg config.Config, sessions *auth.FileSessionStore, logger *log.Logger) services {
	client := blogapi.NewClient(cfg.APIURL, sessions)
	var summaries app.SummaryService = blogapi.NewSummaryService(client)
	if servers := cfg.MemcacheServers(); len(servers) > 0 {
		summaries = cache.NewSummaryCache(summaries, servers, cfg.SummaryTTL, logger)
	}
	return services{
		posts:     blogapi.NewPostService(client),
		comments:  blogapi.NewCommentService(client),
		summaries: summaries,
		users:     blogapi.NewUserService(client),
		follows:   blogapi.NewFollowService(client),
	}
}

func main() {
	mode, msg := parseCLIArgs(os.Args[1:])
	switch mode {
	case cliVersion:
		v, c, d := resolvedRuntimeVersionInfo(version, commit, date)
		fmt.Printf("termblog %s\ncommit: %s\nbuilt: %s\n", v, c, d)
		return
	case cliHelp:
		fmt.Println(usage())
		return
	case cliInvalid:
		fmt.Fprintf(os.Stderr, "%s\n%s\n", msg, usage())
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	sessions := auth.NewFileSessionStore(cfg.SessionPath)

	if mode == cliServe {
		if err := serve(cfg, sessions); err != nil {
			fmt.Fprintf(os.Stderr, "termblog: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := runTUI(cfg, sessions); err != nil {
		fmt.Fprintf(os.Stderr, "termblog: %v\n", err)
		os.Exit(1)
	}
}

func serve(cfg config.Config, sessions *auth.FileSessionStore) error {
	logger := log.New(os.Stderr, "termblog ", log.LstdFlags)
	svc := buildServices(cfg, sessions, logger)

	srv, err := web.New(web.Deps{
		Posts:       svc.posts,
		Comments:    svc.comments,
		Summaries:   svc.summaries,
		Users:       svc.users,
		Follows:     svc.follows,
		Sessions:    sessions,
		PageSize:    cfg.PageSize,
		LoginURL:    cfg.LoginURL,
		SessionPath: cfg.SessionPath,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.Addr)
}

func runTUI(cfg config.Config, sessions *auth.FileSessionStore) error {
	// The alternate screen owns stdout, so diagnostics go to a file.
	if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o700); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogPath, "termblog")
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()
	logger := log.Default()

	session, err := sessions.Load()
	if err != nil {
		logger.Printf("session: %v", err)
	}
	uiState, err := config.LoadUIState(cfg.StatePath)
	if err != nil {
		logger.Printf("ui state: %v", err)
	}
	svc := buildServices(cfg, sessions, logger)

	rootModel := tui.NewApp(tui.Deps{
		Posts:     svc.posts,
		Comments:  svc.comments,
		Summaries: svc.summaries,
		Users:     svc.users,
		Follows:   svc.follows,
		Session:   session,
		Sessions:  sessions,
		Editor:    editor.NewEnvEditor(),
		PageSize:  cfg.PageSize,
		State:     uiState,
		StatePath: cfg.StatePath,
		Logger:    logger,
	})

	p := tea.NewProgram(rootModel, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
