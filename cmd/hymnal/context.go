package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ukaji3/hymnal-go/pkg/hymnal"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/config"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/library"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/logging"
	"github.com/ukaji3/hymnal-go/pkg/hymnal/store"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	logger     *slog.Logger
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

// ensureConfig loads configuration and builds the logger once per run. Log
// output goes to the command's error stream.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}

		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = *c.logLevelFlag
		}
		logger, err := logging.New(logging.Options{
			Level:  level,
			Format: cfg.Logging.Format,
			Writer: cmd.ErrOrStderr(),
		})
		if err != nil {
			c.configErr = fmt.Errorf("configure logging: %w", err)
			return
		}
		c.config = cfg
		c.logger = logger
	})
	return c.config, c.configErr
}

// withLibrary opens the configured store for the duration of fn.
func (c *commandContext) withLibrary(cmd *cobra.Command, fn func(*library.Library) error) error {
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store.Backend, cfg.StorePath())
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer st.Close()

	c.logger.Debug("opened library",
		slog.String("backend", cfg.Store.Backend),
		slog.String("path", cfg.StorePath()))
	return fn(library.New(st, c.logger))
}

func (c *commandContext) decodeOptions() hymnal.Options {
	opts := hymnal.DefaultOptions()
	opts.Logger = c.logger
	return opts
}

func parseSongNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid song number %q", s)
	}
	return n, nil
}
