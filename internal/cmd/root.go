package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd   `cmd:"" help:"Print version."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Recommend RecommendCmd `cmd:"" help:"Search and rank job recommendations for a profile."`
	Seen      SeenCmd      `cmd:"" help:"Seen postings utilities."`
	Proxies   ProxiesCmd   `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}
