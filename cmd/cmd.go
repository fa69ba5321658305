// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func contactFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Full name", Required: required},
		&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address", Required: required},
		&cli.StringFlag{Name: "phone", Aliases: []string{"p"}, Usage: "Phone number", Required: required},
		&cli.StringFlag{Name: "website", Usage: "Website, with or without scheme"},
		&cli.StringFlag{Name: "company", Usage: "Company name"},
		&cli.StringFlag{Name: "address", Usage: "Address as \"street, suite, city, zipcode\""},
	}
}

func idArgument() []cli.Argument {
	return []cli.Argument{&cli.StringArg{Name: "id"}}
}

// listCommand prints contacts
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List contacts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Case-insensitive name filter",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (table, json, csv, markdown, text, yaml)",
				Value:   "table",
			},
		},
		Action: r.ContactsList,
	}
}

func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a contact",
		Arguments: idArgument(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.ContactsShow,
	}
}

func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "add",
		Usage:  "Create a contact",
		Flags:  contactFlags(true),
		Action: r.ContactsAdd,
	}
}

// updateCommand patches only the flags that are set
func updateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Aliases:   []string{"edit"},
		Usage:     "Update a contact's fields",
		Arguments: idArgument(),
		Flags:     contactFlags(false),
		Action:    r.ContactsUpdate,
	}
}

func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a contact",
		Arguments: idArgument(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.ContactsDelete,
	}
}

func openCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a contact's website in the browser",
		Arguments: idArgument(),
		Action:    r.ContactsOpen,
	}
}

// importCommand bulk-creates contacts from CSV
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Create contacts from a CSV file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Concurrent create requests",
				Value:   4,
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Creates per second (0 for no limit)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Validate rows without creating contacts",
			},
		},
		Action: r.ContactsImport,
	}
}

func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export contacts to files in several formats",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Format to write, repeatable (default: csv, json)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: contacts_export_{timestamp})",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Base file name",
				Value: "contacts",
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Only export contacts whose name matches",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the manifest as JSON",
			},
		},
		Action: r.ContactsExport,
	}
}

func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show the activity journal of contact changes",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "contact",
				Usage: "Only show entries for this contact ID",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of entries",
				Value:   50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.DurationFlag{
				Name:  "prune",
				Usage: "Delete entries older than this duration instead of listing (e.g. 720h)",
			},
		},
		Action: r.History,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct calls to the contacts API",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET, prints the response",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "compact",
						Usage: "Print JSON on one line",
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run a local mock of the /users API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default from config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (default from config)",
			},
			&cli.DurationFlag{
				Name:  "latency",
				Usage: "Artificial delay added to every response",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles first-run setup
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the activity journal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// tuiCommand returns the top-level TUI command for interactive contact management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive contact manager",
		Action:  r.TUI,
	}
}
