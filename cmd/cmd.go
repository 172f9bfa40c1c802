// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/tunelyf/internal/filter"
	"github.com/urfave/cli/v3"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: table, json, csv or text",
		Value:   formatTable,
	}
}

func windowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "offset",
			Usage: "Number of filtered results to skip",
		},
		&cli.IntFlag{
			Name:  "limit",
			Usage: "Maximum number of results (defaults to the policy's page size)",
		},
	}
}

// serveCommand runs the HTTP proxy
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP proxy until interrupted",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides config and PORT)",
			},
		},
		Action: r.Serve,
	}
}

// searchCommand runs a filtered catalog search
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog through a filter policy",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "policy",
				Usage: "Filter policy: search, search-new or hindi",
				Value: filter.PolicySearch,
			},
			formatFlag(),
		}, windowFlags()...),
		Action: r.Search,
	}
}

// trendingCommand lists streamable trending tracks
func trendingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "trending",
		Usage:  "List streamable trending tracks",
		Flags:  append([]cli.Flag{formatFlag()}, windowFlags()...),
		Action: r.Trending,
	}
}

// streamCommand resolves a track's stream URL
func streamCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: "Resolve the stream URL of a track",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "trackId",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON",
			},
		},
		Action: r.Stream,
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "config.toml",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration after file and environment overrides",
				Action: r.ConfigShow,
			},
		},
	}
}
