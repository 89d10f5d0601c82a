// Command goar creates, lists and extracts ar archives.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/please-build/ar/v2"
)

func newRootCommand() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:          "goar",
		Short:        "Create, inspect and extract ar archives",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetOutput(cmd.ErrOrStderr())
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "Logging level (debug, info, warning, error)")
	cmd.AddCommand(
		newListCommand(),
		newPrintCommand(),
		newExtractCommand(),
		newCreateCommand(),
		newAppendCommand(),
	)
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// openArchive opens the archive at path and checks its global header.
func openArchive(path string) (*os.File, *ar.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	rd, err := ar.NewReader(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, rd, nil
}

// memberSet records which of the members named on the command line have been seen. An empty set
// selects every member.
type memberSet map[string]bool

func newMemberSet(names []string) memberSet {
	s := make(memberSet, len(names))
	for _, name := range names {
		s[name] = false
	}
	return s
}

func (s memberSet) selects(name string) bool {
	if len(s) == 0 {
		return true
	}
	if _, ok := s[name]; !ok {
		return false
	}
	s[name] = true
	return true
}

// missing returns an error naming the first requested member that was never seen.
func (s memberSet) missing() error {
	var names []string
	for name, seen := range s {
		if !seen {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	return fmt.Errorf("%s: not found in archive", names[0])
}
