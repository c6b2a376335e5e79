// Package instaexport acquires raw documents from a personal-data export,
// either an unpacked directory tree or the original zip archive. It hands
// back (name, raw) pairs already filtered to JSON documents worth parsing;
// classification and normalization happen downstream
package instaexport

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	perr "instalens/internal/platform/errors"
	"instalens/internal/platform/logger"
)

// maxDocBytes caps a single document read; exports occasionally contain
// multi-gigabyte media manifests that no schema here wants
const maxDocBytes = 64 * 1024 * 1024

// Document is one raw export file, not yet parsed
type Document struct {
	Name string
	Raw  []byte
}

// skipFiles is the fixed list of export files whose content must never be
// processed regardless of shape
var skipFiles = map[string]struct{}{
	"ai_conversations.json":       {},
	"secret_conversations.json":   {},
	"reported_conversations.json": {},
}

// Skipped reports whether the basename is on the permanent skip list
func Skipped(name string) bool {
	_, ok := skipFiles[strings.ToLower(filepath.Base(name))]
	return ok
}

func wanted(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json") && !Skipped(name)
}

// ReadDir walks an unpacked export tree and collects every JSON document
func ReadDir(ctx context.Context, root string) ([]Document, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, perr.NotFoundf("export directory %q", root)
	}
	if !info.IsDir() {
		return nil, perr.InvalidArgf("%q is not a directory", root)
	}

	var docs []Document
	skipped := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if Skipped(path) {
			skipped++
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if fi.Size() > maxDocBytes {
			logger.Named("instaexport").Warn().
				Str("file", path).
				Int64("bytes", fi.Size()).
				Msg("document exceeds size cap, skipping")
			return nil
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			rel = path
		}
		docs = append(docs, Document{Name: filepath.ToSlash(rel), Raw: raw})
		return nil
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "walking export directory %q", root)
	}

	logger.Named("instaexport").Debug().
		Str("root", root).
		Int("documents", len(docs)).
		Int("skipped", skipped).
		Msg("export directory read")
	return docs, nil
}

// ReadZip collects every JSON document from an export archive on disk
func ReadZip(ctx context.Context, path string) ([]Document, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "opening export archive %q", path)
	}
	defer zr.Close()
	return readZip(ctx, &zr.Reader)
}

// ReadZipBytes collects every JSON document from an in-memory export archive,
// e.g. an HTTP upload
func ReadZipBytes(ctx context.Context, b []byte) ([]Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "reading export archive")
	}
	return readZip(ctx, zr)
}

func readZip(ctx context.Context, zr *zip.Reader) ([]Document, error) {
	var docs []Document
	skipped := 0
	for _, f := range zr.File {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if f.FileInfo().IsDir() || !wanted(f.Name) {
			if Skipped(f.Name) {
				skipped++
			}
			continue
		}
		if f.UncompressedSize64 > maxDocBytes {
			logger.Named("instaexport").Warn().
				Str("file", f.Name).
				Uint64("bytes", f.UncompressedSize64).
				Msg("document exceeds size cap, skipping")
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "opening %q in archive", f.Name)
		}
		raw, err := io.ReadAll(io.LimitReader(rc, maxDocBytes+1))
		cerr := rc.Close()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "reading %q in archive", f.Name)
		}
		if cerr != nil {
			return nil, cerr
		}
		if len(raw) > maxDocBytes {
			continue
		}
		docs = append(docs, Document{Name: filepath.ToSlash(f.Name), Raw: raw})
	}

	logger.Named("instaexport").Debug().
		Int("documents", len(docs)).
		Int("skipped", skipped).
		Msg("export archive read")
	return docs, nil
}
