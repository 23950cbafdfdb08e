package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"daydream/cmd/daydream/ui"
	"daydream/internal/narrative"
)

var stateFormat string

// stateCmd prints the persisted narrative state.
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the saved intranet state",
	Long: `Prints what the intranet remembers about the current workspace: who is
signed in, which reveals were seen and the welfare mall progress.`,
	Args: cobra.NoArgs,
	RunE: runState,
}

// resetCmd clears the persisted state.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Sign out and forget everything",
	Long:  `Restores the narrative state and the shadow roster to their defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

// shadowsCmd lists the shadow roster.
var shadowsCmd = &cobra.Command{
	Use:   "shadows",
	Short: "List the managed shadows",
	Args:  cobra.NoArgs,
	RunE:  runShadows,
}

func runState(cmd *cobra.Command, args []string) error {
	env, err := boot()
	if err != nil {
		return err
	}
	defer env.close()

	return writeState(cmd.OutOrStdout(), env.narrative.Snapshot(), stateFormat)
}

func writeState(w io.Writer, st narrative.State, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func runReset(cmd *cobra.Command, args []string) error {
	env, err := boot()
	if err != nil {
		return err
	}
	defer env.close()

	env.narrative.AddDependent(env.shadows)
	env.narrative.Reset()
	logger.Info("Intranet state reset", zap.String("db", env.storage.Path()))
	fmt.Fprintln(cmd.OutOrStdout(), "state reset")
	return nil
}

func runShadows(cmd *cobra.Command, args []string) error {
	env, err := boot()
	if err != nil {
		return err
	}
	defer env.close()

	t := ui.NewSimpleTable("그림자 관리 현황", "코드", "이름", "등급", "위치", "담당")
	for _, e := range env.shadows.All() {
		owner := "-"
		if e.IsAssigned {
			owner = e.AssigneeName + " (" + e.AssigneeTeam + ")"
		}
		t.AddRow(e.Code, e.Name, string(e.Grade), e.LocationText, owner)
	}
	logger.Debug("Listed shadows", zap.Int("count", len(t.Rows)))
	fmt.Fprintln(cmd.OutOrStdout(), t.View(ui.NewStyles(ui.LightTheme())))
	return nil
}
