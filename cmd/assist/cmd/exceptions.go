package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/streetlab/assist/pkg/exceptions"
	"github.com/streetlab/assist/pkg/logging"
	"github.com/streetlab/assist/pkg/persist"
)

// exceptionsCmd represents the exceptions command.
var exceptionsCmd = &cobra.Command{
	Use:   "exceptions",
	Short: "Manage accepted street names",
	Long: `Exceptions are original street names the operator accepted as
correct. Excepted names are never reported as problems again.

The list persists under the data directory and is shared by every
analyze and fix run.`,
	RunE: runExceptionsList,
}

var exceptionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accepted names",
	RunE:  runExceptionsList,
}

var exceptionsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Accept a street name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cleanup := openExceptions()
		defer cleanup()

		store.Add(args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "accepted %q\n", args[0])
		return nil
	},
}

var exceptionsRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove an accepted name by list position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number: %w", err)
		}

		store, cleanup := openExceptions()
		defer cleanup()

		if index < 0 || index >= store.Len() {
			return fmt.Errorf("index %d out of range (0..%d)", index, store.Len()-1)
		}
		store.Remove(index)
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", index)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exceptionsCmd)
	exceptionsCmd.AddCommand(exceptionsListCmd)
	exceptionsCmd.AddCommand(exceptionsAddCmd)
	exceptionsCmd.AddCommand(exceptionsRemoveCmd)
}

func runExceptionsList(cmd *cobra.Command, _ []string) error {
	store, cleanup := openExceptions()
	defer cleanup()

	names := store.List()
	if len(names) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No accepted names")
		return nil
	}
	for i, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%3d. %s\n", i, name)
	}
	return nil
}

// openExceptions opens the persisted exception store.
func openExceptions() (*exceptions.Store, func()) {
	kv := persist.Open(stateDir(), logging.Default())
	store := exceptions.New(kv, nil, logging.Default())
	store.Load()
	return store, func() { _ = kv.Close() }
}
