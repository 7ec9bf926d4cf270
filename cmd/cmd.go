// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes configuration and the song cache database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize configuration and song cache database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// resolveCommand resolves URLs into songs or collections
func resolveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "Resolve a YouTube Music URL into songs",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "prefetch",
				Usage: "Also fetch stream URLs for every resolved song",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent stream fetches during prefetch",
				Value: 4,
			},
		},
		Action: r.Resolve,
	}
}

// searchCommand runs typed searches against the music catalog
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search YouTube Music",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Search index: song, album, playlist, or artist",
				Value:   "song",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 3,
			},
			&cli.BoolFlag{
				Name:  "first",
				Usage: "Return only the best song match",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Search,
	}
}

// streamCommand resolves playable stream URLs
func streamCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stream",
		Usage: "Resolve the playable stream URL for a video",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Action: r.Stream,
	}
}

// relatedCommand lists autoplay candidates for a video
func relatedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "related",
		Usage: "List related songs for a video",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.Related,
	}
}

// exportCommand writes resolved collections to disk
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a resolved playlist, album, or artist catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "url"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown, or text",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path or directory",
			},
		},
		Action: r.Export,
	}
}

// cookiesCommand manages the credential lifecycle
func cookiesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cookies",
		Usage: "Manage YouTube Music credentials",
		Commands: []*cli.Command{
			{
				Name:   "validate",
				Usage:  "Check stored cookies for expiry",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CookiesValidate,
			},
			{
				Name:  "refresh",
				Usage: "Re-acquire cookies through an automated browser session",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "headful",
						Usage: "Show the browser window for interactive login",
					},
				},
				Action: r.CookiesRefresh,
			},
			{
				Name:  "import",
				Usage: "Import cookies from a copied cURL command",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command copied from browser dev tools",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "File containing the cURL command",
					},
				},
				Action: r.CookiesImport,
			},
			{
				Name:   "watch",
				Usage:  "Run the periodic refresh scheduler in the foreground",
				Flags:  []cli.Flag{configFlag()},
				Action: r.CookiesWatch,
			},
		},
	}
}

// cacheCommand inspects and maintains the song cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect the local song cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recently cached songs",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs to list",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "prune",
				Usage: "Delete cache entries older than a cutoff",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "older-than",
						Usage: "Age cutoff, e.g. 720h",
						Value: "720h",
					},
				},
				Action: r.CachePrune,
			},
		},
	}
}

// tuiCommand launches the interactive search picker
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive search and stream picker",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Search index: song, album, playlist, or artist",
				Value:   "song",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
		},
		Action: r.TUI,
	}
}
