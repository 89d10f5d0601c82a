package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/please-build/ar/v2"
)

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "create ARCHIVE FILE...",
		Short:   "Create an archive from a list of files",
		Aliases: []string{"c"},
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeArchive(args[0], nil, args[1:], archiveMode(args[0]))
		},
	}
}

func newAppendCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "append ARCHIVE FILE...",
		Short:   "Add files to the end of an existing archive",
		Aliases: []string{"q"},
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppend(args[0], args[1:])
		},
	}
}

func runAppend(path string, files []string) error {
	log := logrus.WithField("archive", path)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("Creating archive")
		return writeArchive(path, nil, files, defaultMode)
	} else if err != nil {
		return err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	existing, err := ar.ReadAll(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Read %d existing members", len(existing))
	return writeArchive(path, existing, files, fi.Mode().Perm())
}

const defaultMode fs.FileMode = 0644

// archiveMode returns the permissions of the file at path, or defaultMode if it does not exist.
func archiveMode(path string) fs.FileMode {
	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		return fi.Mode().Perm()
	}
	return defaultMode
}

// writeArchive writes the given members followed by the named files to a temporary file, then moves
// it into place at path with the given permissions.
func writeArchive(path string, members []*ar.Member, files []string, mode fs.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := ar.NewWriter(bufio.NewWriter(tmp))
	for _, m := range members {
		if err = w.Append(m); err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
	}
	for _, file := range files {
		if err = addFile(w, file); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	if err = w.Close(); err != nil {
		return err
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func addFile(w *ar.Writer, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return err
	}
	hdr, err := ar.FileInfoHeader(fi)
	if err != nil {
		return err
	}
	logrus.WithField("member", hdr.Name).Debug("Adding file")
	if err := w.WriteHeader(hdr); err != nil {
		return err
	}
	if _, err := io.CopyN(w, f, hdr.Size); err != nil {
		return err
	}
	return nil
}
