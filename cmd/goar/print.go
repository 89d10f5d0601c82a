package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newPrintCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "print ARCHIVE [MEMBER...]",
		Short:   "Write the contents of archive members to standard output",
		Aliases: []string{"p"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd.OutOrStdout(), args[0], args[1:])
		},
	}
}

func runPrint(out io.Writer, path string, names []string) error {
	f, rd, err := openArchive(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sel := newMemberSet(names)
	for {
		hdr, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !sel.selects(hdr.Name) {
			continue
		}
		logrus.WithField("member", hdr.Name).Debug("Printing member")
		if _, err := io.Copy(out, rd); err != nil {
			return fmt.Errorf("%s: %s: %w", path, hdr.Name, err)
		}
	}
	return sel.missing()
}
