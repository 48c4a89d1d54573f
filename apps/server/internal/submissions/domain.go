package submissions

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// archivePrefix is the directory inside the target repository under which all
// submissions land. The downstream aggregation pipeline watches this prefix.
const archivePrefix = "submissions"

// timestampLayout is a compact UTC timestamp safe for use in file names.
const timestampLayout = "20060102T150405Z"

// defaultName is used when the client supplies no usable filename.
const defaultName = "submission.csv"

// Descriptor is the single-use value handed to the Archiver: where the
// submission lands, its raw bytes, and the commit message recorded with it.
// It is built per request and never retained.
type Descriptor struct {
	Path    string
	Content []byte
	Message string
}

// Receipt acknowledges an archived submission back to the uploader.
type Receipt struct {
	Path string
}

// ArchivePath returns the repository path for a submission received at the
// given instant. A short random suffix keeps two uploads distinct even when
// they share a timestamp down to the second.
func ArchivePath(now time.Time, clientName string) string {
	ts := now.UTC().Format(timestampLayout)
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s/%s-%s-%s", archivePrefix, ts, suffix, SafeName(clientName))
}

// CommitMessage embeds the receipt timestamp so repository history alone is
// enough to trace when a report arrived.
func CommitMessage(now time.Time, clientName string) string {
	return fmt.Sprintf("Add submission %s on %s", SafeName(clientName), now.UTC().Format(timestampLayout))
}

// SafeName reduces a client-supplied filename to a bare, traversal-free name.
// Empty names fall back to a fixed default; names without an extension get
// ".csv" since submissions are CSV reports.
func SafeName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	name = strings.ReplaceAll(name, "..", "_")
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		return defaultName
	}
	if path.Ext(name) == "" {
		name += ".csv"
	}
	return name
}
