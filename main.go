package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"railway/internal/authz"
	intconfig "railway/internal/config"
	intdb "railway/internal/db"
	"railway/internal/domain"
	router "railway/internal/http"
	"railway/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("railway: %v", err)
	}
}

func run(args []string) error {
	var (
		configPath string
		addr       string
		migrate    bool
		issueToken string
	)
	flagSet := pflag.NewFlagSet("railway", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", os.Getenv("RAILWAY_CONFIG"), "path to a YAML config file (env RAILWAY_CONFIG)")
	flagSet.StringVar(&addr, "addr", "", "listen address, overrides APP_ADDR")
	flagSet.BoolVar(&migrate, "migrate", false, "create missing tables before serving")
	flagSet.StringVar(&issueToken, "issue-token", "", "print a 24h bearer token for USER_ID:ROLE and exit (local testing)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	env, err := intconfig.LoadEnv(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		env.AppAddr = addr
	}
	if issueToken != "" {
		return printToken(env, issueToken)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if migrate || env.AutoMigrate {
		if err := intdb.EnsureSchema(ctx, conn, intdb.Dialect(env.DBDriver)); err != nil {
			return err
		}
	}

	policy, err := authz.NewPolicy(ctx)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router.NewRouter(env, policy),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s driver=%s", env.AppAddr, env.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Println("server stopped")
	return nil
}

func printToken(env intconfig.Env, arg string) error {
	rawID, role, _ := strings.Cut(arg, ":")
	userID, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || userID <= 0 {
		return fmt.Errorf("--issue-token wants USER_ID[:ROLE], got %q", arg)
	}
	tok, err := middleware.SignToken([]byte(env.JWTSecret), domain.Identity{UserID: userID, Role: strings.TrimSpace(role)}, 24*time.Hour)
	if err != nil {
		return err
	}
	fmt.Println(tok)
	return nil
}
