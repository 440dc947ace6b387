package credits

import (
	"strings"

	"github.com/agentstation/credits/pkg/constants"
	"github.com/agentstation/credits/pkg/errors"
	"github.com/agentstation/credits/pkg/release"
	"github.com/agentstation/credits/pkg/render"
)

// Config enumerates every option of a generation run. Paths are relative
// to the workspace root unless absolute.
type Config struct {
	// RegistryPath is the identity registry file.
	RegistryPath string `mapstructure:"registry" yaml:"registry"`

	// LedgerPath is the rendered contributor listing.
	LedgerPath string `mapstructure:"ledger" yaml:"ledger"`

	// HeaderTemplate is the ledger body. It must contain {authors} and may
	// contain {sorting_text}.
	HeaderTemplate string `mapstructure:"header" yaml:"header"`

	// ItemFormat renders one person. Placeholders are person fields.
	ItemFormat string `mapstructure:"item" yaml:"item"`

	// MailmapPath is the git mailmap. Empty disables it.
	MailmapPath string `mapstructure:"mailmap" yaml:"mailmap"`

	// SnapshotPath is the release snapshot. It may use {version},
	// {major} and {major_minor}.
	SnapshotPath string `mapstructure:"snapshot" yaml:"snapshot"`

	// Sort is the ledger sort policy.
	Sort string `mapstructure:"sort" yaml:"sort"`

	// Since is the reference that starts the snapshot window. The
	// snapshot is only written when it is set.
	Since string `mapstructure:"since" yaml:"since"`

	// Version fills the snapshot path placeholders.
	Version string `mapstructure:"version" yaml:"version"`

	// MinCommits is how many commits an unknown email needs to be added.
	MinCommits int `mapstructure:"min_commits" yaml:"min_commits"`

	// DryRun renders and reports without writing anything.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RegistryPath:   constants.DefaultRegistryPath,
		LedgerPath:     constants.DefaultLedgerPath,
		HeaderTemplate: constants.DefaultHeaderTemplate,
		ItemFormat:     constants.DefaultItemFormat,
		MailmapPath:    constants.DefaultMailmapPath,
		SnapshotPath:   constants.DefaultSnapshotPath,
		Sort:           constants.DefaultSortPolicy,
		MinCommits:     1,
	}
}

// SortPolicy returns the parsed sort policy.
func (c *Config) SortPolicy() (render.SortPolicy, error) {
	return render.ParseSortPolicy(c.Sort)
}

// Validate checks the whole configuration once, before any work starts.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.RegistryPath) == "" {
		return invalid("registry", errors.NewValidationError("registry", c.RegistryPath, "path is required"))
	}
	if strings.TrimSpace(c.LedgerPath) == "" {
		return invalid("ledger", errors.NewValidationError("ledger", c.LedgerPath, "path is required"))
	}
	if err := render.CheckHeader(c.HeaderTemplate); err != nil {
		return invalid("header", err)
	}
	if err := render.CheckItem(c.ItemFormat); err != nil {
		return invalid("item", err)
	}
	if _, err := c.SortPolicy(); err != nil {
		return invalid("sort", err)
	}
	if c.MinCommits < 1 {
		return invalid("min_commits", errors.NewValidationError("min_commits", c.MinCommits, "must be at least 1"))
	}
	if c.Since != "" {
		if strings.TrimSpace(c.SnapshotPath) == "" {
			return invalid("snapshot", errors.NewValidationError("snapshot", c.SnapshotPath, "path is required when since is set"))
		}
		if _, err := release.ResolvePath(c.SnapshotPath, c.Version); err != nil {
			return invalid("snapshot", err)
		}
	}
	return nil
}

func invalid(option string, err error) error {
	return errors.NewConfigError("config", "invalid "+option+": "+err.Error(), err)
}
