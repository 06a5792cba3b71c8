// Package watcher reports changes to the dictionary files in one folder.
//
// DirWatcher uses fsnotify and falls back to polling where fsnotify cannot be
// initialized (some network mounts and containers). Only direct children of
// the folder accepted by Options.Match are reported. Events are debounced so
// that an editor save or a bulk copy produces a single batch.
//
// Usage:
//
//	w, err := watcher.New(watcher.Options{Match: src.Matches})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	go w.Start(ctx, dir)
//	for batch := range w.Events() {
//	    reload(batch)
//	}
package watcher
