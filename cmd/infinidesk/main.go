// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ThatOtherAndrew/Infinidesk/internal/config"
	"github.com/ThatOtherAndrew/Infinidesk/internal/log"
	"github.com/ThatOtherAndrew/Infinidesk/internal/server"
)

var (
	startupFlag string
	debugFlag   bool
)

func main() {
	root := &cobra.Command{
		Use:   "infinidesk",
		Short: "An infinite-canvas Wayland compositor",
		Long: `infinidesk arranges windows on a single pannable, zoomable canvas
instead of fixed workspaces, with freehand annotation and a spatial
window switcher laid directly over that canvas.`,
		RunE: run,
	}
	root.Flags().StringVarP(&startupFlag, "startup", "s", "", "run an additional startup command, beyond config's [startup] list")
	root.Flags().BoolVarP(&debugFlag, "debug", "d", false, "log every key event, hit-test, animation start/end, and arrange call")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log.SetDebug(debugFlag)

	cfgPath, err := config.Path()
	if err != nil {
		log.Error("infinidesk: cannot resolve config path", "error", err)
		return fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Error("infinidesk: cannot load config", "path", cfgPath, "error", err)
		return fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	if startupFlag != "" {
		cfg.Startup = append(cfg.Startup, startupFlag)
	}

	be, err := newBackend()
	if err != nil {
		log.Error("infinidesk: backend init failed", "error", err)
		return fmt.Errorf("init backend: %w", err)
	}
	defer be.Close()

	os.Setenv("WAYLAND_DISPLAY", "infinidesk-0")

	s := server.New(be, cfg)
	s.RunStartupCommands()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info("infinidesk: received shutdown signal")
		s.Exit()
	}()

	if err := s.Run(); err != nil {
		log.Error("infinidesk: event loop exited with error", "error", err)
		return err
	}
	log.Info("infinidesk: clean shutdown")
	return nil
}
