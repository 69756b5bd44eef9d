package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dgallion1/docinspect/internal/pipeline"
	"github.com/dgallion1/docinspect/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch <files...>",
	Short: "Inspect documents again whenever they change",
	Long: `Inspects each file once, then watches the files and inspects a file
again after every change to its content. Runs until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// watchedFile is a file given on the command line.
type watchedFile struct {
	name string // as given, used in reports
	hash string // content hash of the last inspection
}

// watchSet tracks watched files by absolute path.
type watchSet struct {
	files map[string]*watchedFile
}

func newWatchSet(paths []string) (*watchSet, error) {
	ws := &watchSet{files: make(map[string]*watchedFile, len(paths))}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		ws.files[abs] = &watchedFile{name: p}
	}
	return ws, nil
}

// dirs returns the directories to watch. Editors often replace a file on
// save, which a watch on the file itself would lose.
func (ws *watchSet) dirs() []string {
	seen := make(map[string]bool)
	var out []string
	for abs := range ws.files {
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
		}
	}
	slices.Sort(out)
	return out
}

// relevant returns the watched file an event refers to. Only writes and
// creations of watched files count.
func (ws *watchSet) relevant(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	if _, ok := ws.files[abs]; !ok {
		return "", false
	}
	return abs, true
}

// changed records the content hash of data and reports whether it differs
// from the last inspected content.
func (ws *watchSet) changed(abs string, data []byte) bool {
	f := ws.files[abs]
	h := pipeline.ContentHashHex(data)
	if f.hash == h {
		return false
	}
	f.hash = h
	return true
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	in, err := loadInspector(cfg, flagLang, log)
	if err != nil {
		return fmt.Errorf("load validators: %w", err)
	}
	ws, err := newWatchSet(args)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()
	for _, dir := range ws.dirs() {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	for _, abs := range slices.Sorted(maps.Keys(ws.files)) {
		if err := ws.inspect(ctx, in, abs, out); err != nil {
			return err
		}
	}
	log.Info("watching for changes", "files", len(ws.files))

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			abs, ok := ws.relevant(ev)
			if !ok {
				continue
			}
			if err := ws.inspect(ctx, in, abs, out); err != nil {
				return err
			}
		}
	}
}

// inspect re-reads a watched file and reports its findings unless the
// content is unchanged since the last inspection.
func (ws *watchSet) inspect(ctx context.Context, in *inspector, abs string, out io.Writer) error {
	f := ws.files[abs]
	data, err := readInput(abs, in.cfg.MaxInputBytes)
	if err != nil {
		in.log.Warn("read failed", "filename", f.name, "error", err)
		return nil
	}
	if !ws.changed(abs, data) {
		in.log.Debug("content unchanged, skipping", "filename", f.name)
		return nil
	}
	sink, err := report.ForFormat(in.cfg.Format, out)
	if err != nil {
		return err
	}
	_, err = in.run(ctx, []*pipeline.Job{pipeline.NewJob(f.name, data)}, sink)
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
