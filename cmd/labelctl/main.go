// labelctl is a small command-line client for the LabelForge API, mostly
// useful for poking at an environment: log in once and the session is
// persisted the same way the web client persists it.
//
// Usage:
//
//	labelctl login -user u@example.com -password secret
//	labelctl whoami
//	labelctl projects [-search term]
//	labelctl labels -project <id>
//	labelctl logout
//
// The backend origin comes from LABELFORGE_API_URL; set REDIS_ADDR to keep
// the session in Redis instead of ~/.labelforge.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/labelforge/labelforge-go/internal/core/ports"
	"github.com/labelforge/labelforge-go/internal/core/service"
	"github.com/labelforge/labelforge-go/internal/infrastructure/rest"
	filestore "github.com/labelforge/labelforge-go/internal/infrastructure/store/file"
	redisstore "github.com/labelforge/labelforge-go/internal/infrastructure/store/redis"
	"github.com/labelforge/labelforge-go/internal/pkg/config"
	"github.com/labelforge/labelforge-go/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: labelctl <login|logout|whoami|projects|labels> [flags]")
		os.Exit(2)
	}
	command := os.Args[1]
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	user := fs.String("user", "", "login (email or username)")
	password := fs.String("password", "", "password")
	search := fs.String("search", "", "filter by name/description")
	projectID := fs.String("project", "", "project ID")
	_ = fs.Parse(os.Args[2:])

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: "warn", Pretty: true, Output: os.Stderr})
	ctx := context.Background()

	var store ports.SessionStore
	if cfg.Redis.Addr != "" {
		client, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			fatal(err)
		}
		defer client.Close()
		store = redisstore.NewStore(client, cfg.Redis.KeyPrefix)
	} else {
		dir, err := filestore.DefaultDir()
		if err != nil {
			fatal(err)
		}
		store, err = filestore.New(dir)
		if err != nil {
			fatal(err)
		}
	}

	api := rest.New(cfg.APIURL, log)
	session := service.NewSession(rest.NewAuthClient(api), store, log)
	session.Hydrate(ctx)

	switch command {
	case "login":
		if *user == "" || *password == "" {
			fatal(fmt.Errorf("login requires -user and -password"))
		}
		if err := session.Login(ctx, *user, *password); err != nil {
			fatal(err)
		}
		fmt.Println("logged in as", session.Snapshot().User.Username)

	case "logout":
		if err := session.Logout(ctx); err != nil {
			fatal(err)
		}
		fmt.Println("logged out")

	case "whoami":
		requireAuth(session)
		profile, err := session.Profile(ctx)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("%s <%s> (%s, %s)\n", profile.Username, profile.Email, profile.Role, profile.Subscription)

	case "projects":
		requireAuth(session)
		projects := service.NewProjectCollection(rest.NewProjectClient(api), session)
		if err := projects.FetchAll(ctx, ports.ListQuery{Search: *search}); err != nil {
			fatal(err)
		}
		for _, p := range service.SortProjects(projects.Items(), service.SortByName, service.OrderAsc) {
			fmt.Printf("%s  %-24s %d labels\n", p.ID, p.Name, p.Count.Labels)
		}

	case "labels":
		requireAuth(session)
		if *projectID == "" {
			fatal(fmt.Errorf("labels requires -project"))
		}
		labels := service.NewLabelCollection(rest.NewLabelClient(api), session, *projectID)
		if err := labels.FetchAll(ctx, ports.ListQuery{Search: *search}); err != nil {
			fatal(err)
		}
		for _, l := range service.SortLabels(labels.Items(), service.SortByUpdatedAt, service.OrderDesc) {
			fmt.Printf("%s  %-24s %s v%d  %gx%g\n", l.ID, l.Name, l.Status, l.Version, l.Width, l.Height)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown command:", command)
		os.Exit(2)
	}
}

func requireAuth(session *service.Session) {
	gate := service.NewGate(session, func() {
		fmt.Fprintln(os.Stderr, "error: not logged in (run: labelctl login)")
	})
	if gate.Decide() != service.GateGranted {
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
