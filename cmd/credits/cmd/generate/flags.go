package generate

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/agentstation/credits"
)

// Flags holds the generation flags shared by init and update.
type Flags struct {
	Registry   string
	Ledger     string
	Mailmap    string
	NoMailmap  bool
	Snapshot   string
	Sort       string
	Since      string
	Release    string
	MinCommits int
	DryRun     bool
}

// addFlags registers the generation flags. Defaults come from base so
// config file and environment values show up in --help; only flags set on
// the command line override the configuration at run time.
func addFlags(cmd *cobra.Command, base credits.Config) *Flags {
	f := &Flags{}
	flags := cmd.Flags()
	flags.StringVar(&f.Registry, "registry", base.RegistryPath, "identity registry file")
	flags.StringVar(&f.Ledger, "ledger", base.LedgerPath, "contributor ledger file")
	flags.StringVar(&f.Mailmap, "mailmap", base.MailmapPath, "mailmap file")
	flags.BoolVar(&f.NoMailmap, "no-mailmap", false, "do not write a mailmap")
	flags.StringVar(&f.Snapshot, "snapshot", base.SnapshotPath, "release snapshot file; may use {version}, {major}, {major_minor}")
	flags.StringVarP(&f.Sort, "sort", "s", base.Sort, "ledger order: num_commits, first_commit, alphabetical")
	flags.StringVar(&f.Since, "since", base.Since, "write a release snapshot of contributors after this tag, branch or commit")
	flags.StringVar(&f.Release, "release", base.Version, "release version for the snapshot path")
	flags.IntVar(&f.MinCommits, "min-commits", base.MinCommits, "commits an unknown email needs to be added")
	flags.BoolVar(&f.DryRun, "dry-run", base.DryRun, "show what would change without writing")
	return f
}

// apply layers the flags that were set on the command line over base.
func (f *Flags) apply(flags *pflag.FlagSet, base credits.Config) credits.Config {
	cfg := base
	set := func(name string, dst *string, val string) {
		if flags.Changed(name) {
			*dst = val
		}
	}
	set("registry", &cfg.RegistryPath, f.Registry)
	set("ledger", &cfg.LedgerPath, f.Ledger)
	set("mailmap", &cfg.MailmapPath, f.Mailmap)
	set("snapshot", &cfg.SnapshotPath, f.Snapshot)
	set("sort", &cfg.Sort, f.Sort)
	set("since", &cfg.Since, f.Since)
	set("release", &cfg.Version, f.Release)
	if flags.Changed("min-commits") {
		cfg.MinCommits = f.MinCommits
	}
	if flags.Changed("dry-run") {
		cfg.DryRun = f.DryRun
	}
	if f.NoMailmap {
		cfg.MailmapPath = ""
	}
	return cfg
}
