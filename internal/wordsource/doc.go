// Package wordsource reads candidate words from a directory of delimited
// text files.
//
// A Directory selects the regular files directly inside one folder whose
// extension equals the configured suffix, decodes each with encoding/csv and
// yields the first field of every row. Files are read concurrently but words
// are always emitted in sorted file order, so two builds over the same folder
// produce identical indexes.
//
// Rows the decoder rejects are skipped and reported as warnings. Failing to
// list the folder or read a file aborts the walk.
package wordsource
