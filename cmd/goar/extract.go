package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/please-build/ar/v2"
)

func newExtractCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:     "extract ARCHIVE [MEMBER...]",
		Short:   "Extract members of an archive into a directory",
		Aliases: []string{"x"},
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], dir, args[1:])
		},
	}
	cmd.Flags().StringVarP(&dir, "directory", "C", ".", "Directory to extract into")
	return cmd
}

func runExtract(path, dir string, names []string) error {
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
		if err := extractMember(rd, hdr, dir); err != nil {
			return err
		}
	}
	return sel.missing()
}

// fileName returns the name a member is extracted as, or "" if it cannot be extracted safely.
// GNU ar terminates short names with "/".
func fileName(name string) string {
	name = strings.TrimSuffix(name, "/")
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return ""
	}
	return name
}

func extractMember(r io.Reader, hdr *ar.Header, dir string) error {
	log := logrus.WithField("member", hdr.Name)
	name := fileName(hdr.Name)
	if name == "" {
		log.Warn("Skipping member that cannot be extracted safely")
		return nil
	}
	mode := hdr.FileInfo().Mode()
	if mode == 0 {
		mode = 0644
	}
	target := filepath.Join(dir, name)
	log.WithField("path", target).Debug("Extracting member")

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", hdr.Name, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chtimes(target, hdr.ModTime, hdr.ModTime); err != nil {
		log.WithError(err).Warn("Failed to set modification time")
	}
	return nil
}
