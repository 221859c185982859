// Package watch reports changes to tree documents on disk.
//
// It wraps fsnotify with recursive directory registration, glob-based
// ignore rules and a debounce window, so an editor's save burst produces a
// single callback per file.
package watch
