// Package scan collects image entries from directories, plain files and
// zip/rar/7z archives, and orders them with pluggable sort strategies.
package scan

import (
	"archive/zip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
	"github.com/spf13/afero"
)

// Entry identifies one viewable image: either a plain file or a member of
// an archive.
type Entry struct {
	Path        string // file path, or archive:entry for archive members
	ArchivePath string // empty for plain files
	EntryPath   string // path inside the archive, empty for plain files
}

// IsArchiveEntry reports whether the entry lives inside an archive.
func (e Entry) IsArchiveEntry() bool { return e.ArchivePath != "" }

// IsSupportedExt reports whether the path has a decodable image extension.
func IsSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

// IsArchiveExt reports whether the path looks like a supported archive.
func IsArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

// Collect walks the given paths and returns the image entries found, with
// each directory and archive sorted by the given method. Directories are
// walked recursively; archives expand into their image members. The
// filesystem is abstracted so directory scanning is testable; archives are
// always read from the OS filesystem since their readers need real files.
func Collect(fs afero.Fs, args []string, method int) ([]Entry, error) {
	var list []Entry
	for _, p := range args {
		info, err := fs.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dirEntries, err := collectDir(fs, p, method)
			if err != nil {
				return nil, err
			}
			list = append(list, dirEntries...)
			continue
		}
		switch {
		case IsSupportedExt(p):
			list = append(list, Entry{Path: p})
		case IsArchiveExt(p):
			members, err := expandArchive(p)
			if err != nil {
				log.Printf("Warning: Skipping problematic archive %s: %v", p, err)
				continue
			}
			list = append(list, Strategy(method).Sort(members)...)
		}
	}
	return list, nil
}

func collectDir(fs afero.Fs, dir string, method int) ([]Entry, error) {
	var entries []Entry
	err := afero.Walk(fs, dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return nil
		}
		switch {
		case IsSupportedExt(path):
			entries = append(entries, Entry{Path: path})
		case IsArchiveExt(path):
			members, err := expandArchive(path)
			if err != nil {
				log.Printf("Warning: Skipping problematic archive %s: %v", path, err)
				return nil
			}
			entries = append(entries, Strategy(method).Sort(members)...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Strategy(method).Sort(entries), nil
}

// SameDirectory returns the image files that are siblings of path, sorted.
// Archives and subdirectories are not expanded; this backs the "expand a
// single file to its directory" operation.
func SameDirectory(fs afero.Fs, path string, method int) ([]Entry, error) {
	dir := filepath.Dir(path)
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %v", dir, err)
	}

	var entries []Entry
	for _, fi := range infos {
		if fi.IsDir() {
			continue
		}
		full := filepath.Join(dir, fi.Name())
		if IsSupportedExt(full) {
			entries = append(entries, Entry{Path: full})
		}
	}
	return Strategy(method).Sort(entries), nil
}

// expandArchive lists the image members of a zip/rar/7z archive.
func expandArchive(path string) ([]Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return expandZip(path)
	case ".rar":
		return expandRar(path)
	case ".7z":
		return expand7z(path)
	default:
		return nil, fmt.Errorf("unsupported archive format: %s", path)
	}
}

func expandZip(path string) ([]Entry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []Entry
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && IsSupportedExt(f.Name) {
			entries = append(entries, archiveEntry(path, f.Name))
		}
	}
	return entries, nil
}

func expandRar(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir && IsSupportedExt(header.Name) {
			entries = append(entries, archiveEntry(path, header.Name))
		}
	}
	return entries, nil
}

func expand7z(path string) ([]Entry, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var entries []Entry
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && IsSupportedExt(f.Name) {
			entries = append(entries, archiveEntry(path, f.Name))
		}
	}
	return entries, nil
}

func archiveEntry(archivePath, entryPath string) Entry {
	return Entry{
		Path:        archivePath + ":" + entryPath,
		ArchivePath: archivePath,
		EntryPath:   entryPath,
	}
}
