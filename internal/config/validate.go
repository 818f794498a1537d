package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	if !slices.Contains([]string{"auto", "claude", "mock"}, c.AI.Provider) {
		errs = append(errs, fmt.Errorf("ai.provider %q must be auto, claude or mock", c.AI.Provider))
	}
	if c.AI.Provider == "claude" && c.AI.APIKey == "" {
		errs = append(errs, errors.New("ai.api_key is required for provider claude"))
	}
	if c.Laundry.OverdueAfter <= 0 {
		errs = append(errs, errors.New("laundry.overdue_after must be positive"))
	}
	if c.Laundry.ScanInterval <= 0 {
		errs = append(errs, errors.New("laundry.scan_interval must be positive"))
	}
	if c.Reminder.CheckInterval <= 0 {
		errs = append(errs, errors.New("reminder.check_interval must be positive"))
	}
	if c.Import.MaxArchiveSize <= 0 {
		errs = append(errs, errors.New("import.max_archive_size must be positive"))
	}

	return errors.Join(errs...)
}
