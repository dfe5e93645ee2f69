package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/influxdata/fix-pkgconfig/internal/pcfile"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	// ErrNoPkgConfigDir is returned when the root has no lib/pkgconfig directory.
	ErrNoPkgConfigDir = errors.New("pkgconfig directory not found")

	// ErrNoPcFiles is returned when lib/pkgconfig holds no .pc files.
	ErrNoPcFiles = errors.New("no .pc files found")
)

// Library is a relocated installation whose pkg-config files
// should point at Root.
type Library struct {
	// Root is the installation root.
	Root string

	// Prefix is Root as it is written into the prefix= lines.
	Prefix string

	// PkgConfigDir is Root/lib/pkgconfig.
	PkgConfigDir string

	// Files holds the paths of the .pc files, sorted by name.
	Files []string
}

// Locate finds the pkg-config files of the installation at root.
func Locate(ctx context.Context, logger *zap.Logger, root string) (*Library, error) {
	dir := filepath.Join(root, "lib", "pkgconfig")
	logger.Info("Locating pkgconfig directory", zap.String("root", root), zap.String("dir", dir))
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return nil, errors.Wrapf(ErrNoPkgConfigDir, "%s", dir)
	}

	files, err := pcFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Wrapf(ErrNoPcFiles, "%s", dir)
	}
	logger.Info("Found pkgconfig files", zap.String("dir", dir), zap.Int("count", len(files)))

	return &Library{
		Root:         root,
		Prefix:       pcPath(root),
		PkgConfigDir: dir,
		Files:        files,
	}, nil
}

// pcFiles lists the .pc files directly inside dir. ReadDir sorts by name.
func pcFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", dir)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), pcfile.Ext) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// Fix rewrites every stale prefix in the library's .pc files to l.Prefix,
// printing progress to w. With dryRun set nothing is written. A failing
// file is recorded in the report and does not stop the others.
func (l *Library) Fix(ctx context.Context, logger *zap.Logger, w io.Writer, dryRun bool) *Report {
	_, _ = fmt.Fprintf(w, "FFmpeg root: %s\n", l.Root)
	_, _ = fmt.Fprintf(w, "Processing %d .pc files in %s\n\n", len(l.Files), l.PkgConfigDir)

	report := &Report{DryRun: dryRun}
	for _, path := range l.Files {
		res := l.fixFile(logger, w, path, dryRun)
		if res.Err != nil {
			_, _ = fmt.Fprintf(w, "  error processing %s: %v\n", res.Name, res.Err)
			logger.Error("Error processing pkgconfig file", zap.String("path", path), zap.Error(res.Err))
		}
		_, _ = io.WriteString(w, "\n")
		report.Files = append(report.Files, res)
	}

	report.WriteSummary(w)
	if err := report.Err(); err != nil {
		logger.Warn("Some pkgconfig files could not be processed", zap.Int("failed", report.Failed()), zap.Error(err))
	}
	return report
}

func (l *Library) fixFile(logger *zap.Logger, w io.Writer, path string, dryRun bool) FileResult {
	res := FileResult{Name: filepath.Base(path)}
	_, _ = fmt.Fprintf(w, "Processing: %s\n", res.Name)

	f, err := pcfile.Read(path)
	if err != nil {
		res.Status, res.Err = Failed, err
		return res
	}

	res.OldPrefixes = f.StalePrefixes(l.Prefix)
	if len(res.OldPrefixes) == 0 {
		_, _ = fmt.Fprintf(w, "  already correct (prefix=%s)\n", l.Prefix)
		res.Status = Correct
		return res
	}

	for _, old := range res.OldPrefixes {
		_, _ = fmt.Fprintf(w, "  replacing: %s\n         -> %s\n", old, l.Prefix)
	}
	if !f.ReplacePrefixes(res.OldPrefixes, l.Prefix) {
		res.Status = Correct
		return res
	}

	if dryRun {
		_, _ = fmt.Fprintf(w, "  [dry run] would modify %s\n", res.Name)
		res.Status = WouldModify
		return res
	}

	if err := f.Write(); err != nil {
		res.Status, res.Err = Failed, err
		return res
	}
	logger.Info("Rewrote pkgconfig prefix",
		zap.String("path", path),
		zap.Strings("old", res.OldPrefixes),
		zap.String("new", l.Prefix))
	_, _ = io.WriteString(w, "  modified successfully\n")
	res.Status = Modified
	return res
}

// Verify checks that the first prefix= line of every .pc file equals
// l.Prefix. The directory is listed again rather than trusting l.Files.
// Files without a prefix= line are skipped.
func (l *Library) Verify(ctx context.Context, logger *zap.Logger, w io.Writer) *Verification {
	_, _ = fmt.Fprintf(w, "\n%s\nVerification:\n%s\n", rule, rule)

	v := &Verification{}
	files, err := pcFiles(l.PkgConfigDir)
	if err != nil {
		v.Err = err
		_, _ = fmt.Fprintf(w, "FAIL %v\n", err)
		logger.Error("Could not list pkgconfig files", zap.String("dir", l.PkgConfigDir), zap.Error(err))
	}
	for _, path := range files {
		res := VerifyResult{Name: filepath.Base(path)}
		f, err := pcfile.Read(path)
		if err != nil {
			res.Err = err
			_, _ = fmt.Fprintf(w, "FAIL %s: %v\n", res.Name, err)
			logger.Error("Could not read pkgconfig file", zap.String("path", path), zap.Error(err))
			v.Files = append(v.Files, res)
			continue
		}

		prefix, ok := f.FirstPrefix()
		if !ok {
			continue
		}
		res.Prefix, res.Found = prefix, true
		res.Match = prefix == l.Prefix

		if ver, err := f.Version(); err == nil {
			res.Version = ver.String()
		} else if errors.Cause(err) != pcfile.ErrNoVersion {
			logger.Warn("Unparsable pkgconfig version", zap.String("path", path), zap.Error(err))
		}

		switch {
		case !res.Match:
			_, _ = fmt.Fprintf(w, "FAIL %s: %s (should be %s)\n", res.Name, prefix, l.Prefix)
		case res.Version != "":
			_, _ = fmt.Fprintf(w, "ok   %s: %s (version %s)\n", res.Name, prefix, res.Version)
		default:
			_, _ = fmt.Fprintf(w, "ok   %s: %s\n", res.Name, prefix)
		}
		v.Files = append(v.Files, res)
	}

	_, _ = io.WriteString(w, "\n")
	if v.OK() {
		_, _ = io.WriteString(w, "All pkgconfig files are correct!\n")
	} else {
		_, _ = io.WriteString(w, "Some pkgconfig files still have incorrect paths\n")
		logger.Warn("Verification failed", zap.String("root", l.Root))
	}
	return v
}
