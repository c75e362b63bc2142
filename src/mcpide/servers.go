package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ideconnect/mcp-ide/src/mcpide/internal/fs"
	"github.com/ideconnect/mcp-ide/src/mcpide/internal/lockfile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	_formatTable = "table"
	_formatJSON  = "json"
	_formatYAML  = "yaml"
)

// serverRow is one lock file as printed by the servers command. Auth tokens are never printed.
type serverRow struct {
	Port             int      `json:"port" yaml:"port"`
	PID              int      `json:"pid" yaml:"pid"`
	IDEName          string   `json:"ideName" yaml:"ideName"`
	Version          string   `json:"version" yaml:"version"`
	WorkspaceFolders []string `json:"workspaceFolders" yaml:"workspaceFolders"`
	Running          bool     `json:"running" yaml:"running"`
	Path             string   `json:"path" yaml:"path"`
	Error            string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func newServersCmd() *cobra.Command {
	var (
		dir    string
		clean  bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "servers",
		Short: "List the servers advertised by lock files",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileSystem := fs.New()
			if dir == "" {
				var err error
				if dir, err = lockfile.DefaultDir(fileSystem); err != nil {
					return err
				}
			}
			store := lockfile.NewStore(dir, fileSystem, zap.NewNop().Sugar())
			return listServers(cmd.OutOrStdout(), store, clean, output)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Lock file directory (defaults to ~/.claude/ide)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Remove lock files whose process is gone")
	cmd.Flags().StringVarP(&output, "output", "o", _formatTable, "Output format: table, json or yaml")

	return cmd
}

func listServers(w io.Writer, store lockfile.Store, clean bool, format string) error {
	entries, err := store.List()
	if err != nil {
		return err
	}

	rows := make([]serverRow, 0, len(entries))
	for _, e := range entries {
		if clean && e.Err == nil && !e.Running {
			removed, err := store.CleanStale(e.Path)
			if err != nil {
				return err
			}
			if removed {
				continue
			}
		}
		rows = append(rows, toRow(e))
	}

	switch strings.ToLower(format) {
	case _formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case _formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case _formatTable:
		return writeTable(w, rows)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func toRow(e lockfile.Entry) serverRow {
	row := serverRow{Path: e.Path, Running: e.Running}
	if e.Err != nil {
		row.Error = e.Err.Error()
	}
	if e.Record != nil {
		row.Port = e.Record.Port
		row.PID = e.Record.PID
		row.IDEName = e.Record.IDEName
		row.Version = e.Record.Version
		row.WorkspaceFolders = e.Record.WorkspaceFolders
	}
	return row
}

func writeTable(w io.Writer, rows []serverRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PORT\tPID\tIDE\tVERSION\tSTATUS\tWORKSPACE")
	for _, r := range rows {
		status := "stale"
		if r.Running {
			status = "running"
		}
		if r.Error != "" {
			status = "unreadable"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", r.Port, r.PID, r.IDEName, r.Version, status, strings.Join(r.WorkspaceFolders, ","))
	}
	return tw.Flush()
}
