// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/danielhkuo/premios/auth"
	"github.com/danielhkuo/premios/cliparse"
	"github.com/danielhkuo/premios/db"
	"github.com/danielhkuo/premios/fixtures"
	"github.com/danielhkuo/premios/logger"
	"github.com/danielhkuo/premios/models"
	"github.com/danielhkuo/premios/router"
	"github.com/danielhkuo/premios/store"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	cfg cliparse.Config
	log *zap.Logger
}

func newRootCmd() (*cobra.Command, error) {
	cfg, err := cliparse.LoadEnv()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: zap.NewNop()}

	root := &cobra.Command{
		Use:               "premios",
		Short:             "Polls site with voting and administration",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.log.Sync()
		},
		RunE: a.serve,
	}
	a.cfg.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			Args:  cobra.NoArgs,
			RunE:  a.serve,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the database schema",
			Args:  cobra.NoArgs,
			RunE:  a.migrate,
		},
		a.createQuestionCmd(),
		&cobra.Command{
			Use:   "loaddata FILE...",
			Short: "Load questions from YAML fixture files",
			Args:  cobra.MinimumNArgs(1),
			RunE:  a.loadData,
		},
		&cobra.Command{
			Use:               "genkey",
			Short:             "Generate a random admin key",
			Args:              cobra.NoArgs,
			PersistentPreRunE: noSetup,
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := auth.GenerateAdminKey()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), key)
				return nil
			},
		},
		&cobra.Command{
			Use:               "version",
			Short:             "Print version information",
			Args:              cobra.NoArgs,
			PersistentPreRunE: noSetup,
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "premios %s\n", version)
			},
		},
	)

	return root, nil
}

func noSetup(cmd *cobra.Command, args []string) error { return nil }

// setup validates configuration and installs the logger before any command
// that touches the database.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.log = log
	zap.ReplaceGlobals(log)
	return nil
}

func (a *app) openDB() (*sqlx.DB, error) {
	conn, err := db.Open(a.cfg.DatabaseType, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	a.log.Info("database schema ready", zap.String("database_type", a.cfg.DatabaseType))

	return conn, nil
}

func (a *app) migrate(cmd *cobra.Command, args []string) error {
	conn, err := a.openDB()
	if err != nil {
		return err
	}
	return conn.Close()
}

func (a *app) serve(cmd *cobra.Command, args []string) error {
	conn, err := a.openDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	st := store.New(conn, a.log)
	if a.cfg.AdminKey == "" {
		a.log.Warn("ADMIN_KEY not set, admin API disabled")
	}

	server := http.Server{
		Handler:           router.NewRouter(st, a.cfg, a.log, time.Now),
		Addr:              ":" + strconv.Itoa(a.cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.Int("port", a.cfg.Port))
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("shutdown failed", zap.Error(err))
		return err
	}
	a.log.Info("server closed")
	return nil
}

func (a *app) createQuestionCmd() *cobra.Command {
	var (
		text    string
		minutes int
		choices []string
	)

	cmd := &cobra.Command{
		Use:   "createquestion",
		Short: "Create a question published now plus an offset in minutes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := models.QuestionForm{
				QuestionText: text,
				PubDate:      time.Now().Add(time.Duration(minutes) * time.Minute),
			}
			for _, c := range choices {
				form.Choices = append(form.Choices, models.ChoiceForm{ChoiceText: c})
			}
			if err := form.Validate(); err != nil {
				return err
			}

			conn, err := a.openDB()
			if err != nil {
				return err
			}
			defer conn.Close()

			created, err := store.New(conn, a.log).CreateQuestion(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), created.Question.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Question text")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Publication offset from now in minutes (negative for the past)")
	cmd.Flags().StringArrayVar(&choices, "choice", nil, "Choice text (repeatable)")
	cmd.MarkFlagRequired("text")

	return cmd
}

func (a *app) loadData(cmd *cobra.Command, args []string) error {
	conn, err := a.openDB()
	if err != nil {
		return err
	}
	defer conn.Close()

	st := store.New(conn, a.log)
	total := 0
	for _, path := range args {
		n, err := fixtures.LoadFile(cmd.Context(), st, path, a.log)
		if err != nil {
			return err
		}
		total += n
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Installed %d question(s) from %d fixture(s)\n", total, len(args))
	return nil
}
