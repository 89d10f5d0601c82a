package main

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:     "list ARCHIVE [MEMBER...]",
		Short:   "List the members of an archive",
		Aliases: []string{"t"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), args[0], args[1:], verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show mode, owner, size and modification time")
	return cmd
}

func runList(out io.Writer, path string, names []string, verbose bool) error {
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
		if verbose {
			fmt.Fprintf(out, "%s %d/%d %8s %s %s\n",
				fs.FileMode(hdr.Mode).Perm(), hdr.Uid, hdr.Gid, humanize.IBytes(uint64(hdr.Size)),
				hdr.ModTime.Format("Jan _2 15:04 2006"), hdr.Name)
		} else {
			fmt.Fprintln(out, hdr.Name)
		}
	}
	return sel.missing()
}
