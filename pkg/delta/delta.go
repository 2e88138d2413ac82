// Package delta compares the file identifiers referenced by a document with
// the entries present in a directory.
package delta

// Delta holds the two one-way differences between a document and a directory.
type Delta struct {
	// New lists on-disk names the document does not reference, in listing order.
	New []string `json:"new" yaml:"new"`
	// Stale lists referenced names missing from disk, in document order.
	Stale []string `json:"stale" yaml:"stale"`
}

// Compute returns onDisk minus referenced as New and referenced minus onDisk
// as Stale. Names are compared by exact string equality. Duplicates in either
// input are carried through to the output.
func Compute(referenced, onDisk []string) Delta {
	return Delta{
		New:   difference(onDisk, referenced),
		Stale: difference(referenced, onDisk),
	}
}

// Empty reports whether there is nothing to add and nothing to prune.
func (d Delta) Empty() bool {
	return len(d.New) == 0 && len(d.Stale) == 0
}

func difference(from, exclude []string) []string {
	excluded := make(map[string]struct{}, len(exclude))
	for _, name := range exclude {
		excluded[name] = struct{}{}
	}

	var out []string
	for _, name := range from {
		if _, ok := excluded[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
