package capacity

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stratalab/fscap/internal/domain"
	"github.com/stratalab/fscap/internal/domain/vo"
)

// TagPair identifies the two diagnostic-report lines carrying the
// block size and the block count for one filesystem kind. The tag
// strings match each introspection tool's report vocabulary verbatim
// and must not be changed.
type TagPair struct {
	Size  string
	Count string
}

// tagPairs maps every kind with an introspection tool to its tags.
var tagPairs = map[domain.Kind]TagPair{
	domain.KindExt2:     {Size: "Block size:", Count: "Block count:"},
	domain.KindExt3:     {Size: "Block size:", Count: "Block count:"},
	domain.KindExt4:     {Size: "Block size:", Count: "Block count:"},
	domain.KindJFS:      {Size: "Physical block size:", Count: "Aggregate size:"},
	domain.KindNTFS:     {Size: "Cluster Size:", Count: "Volume Size in Clusters:"},
	domain.KindReiserFS: {Size: "Blocksize:", Count: "Count of blocks on the device:"},
	domain.KindXFS:      {Size: "blocksize =", Count: "dblocks ="},
}

// TagsFor returns the tag pair for a filesystem kind, or false when
// the kind has no structured diagnostic report.
func TagsFor(kind domain.Kind) (TagPair, bool) {
	tags, ok := tagPairs[kind]
	return tags, ok
}

// Keys naming the two extracted values in parse errors.
const (
	keyCount = "count"
	keySize  = "size"
)

// ReportSize extracts a filesystem's capacity from its captured
// diagnostic report. One parser serves every kind; only the tag pair
// differs.
type ReportSize struct {
	fs   *domain.Filesystem
	tags TagPair
}

// Ensure ReportSize implements SizeTask
var _ SizeTask = (*ReportSize)(nil)

// NewReportSize creates a ReportSize task bound to one filesystem.
func NewReportSize(fs *domain.Filesystem) (*ReportSize, error) {
	tags, ok := TagsFor(fs.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no diagnostic report format", domain.ErrInvalidInput, fs.Kind)
	}
	return &ReportSize{fs: fs, tags: tags}, nil
}

// Available reports whether the mechanism exists; the parser always does.
func (t *ReportSize) Available() bool {
	return true
}

// Unavailable is always clear for the report parser.
func (t *ReportSize) Unavailable() string {
	return ""
}

// Unready is always clear: the report is already captured or Unable.
func (t *ReportSize) Unready() string {
	return ""
}

// Unable reports when no diagnostic report was ever captured.
func (t *ReportSize) Unable() string {
	if _, ok := t.fs.DiagnosticReport(); !ok {
		return "no diagnostic report available to extract current size from"
	}
	return ""
}

// Measure parses the diagnostic report and returns count * size bytes.
func (t *ReportSize) Measure(_ context.Context) (vo.Size, error) {
	if msg := Impossible(t); msg != "" {
		return vo.Size{}, domain.NewExtractionError(msg, nil)
	}

	report, _ := t.fs.DiagnosticReport()

	// Each key resolves to at most one integer; a second matching
	// line for an already-resolved key is an unrecoverable error.
	values := map[string]*int64{keyCount: nil, keySize: nil}

	for _, line := range splitLines(report) {
		line = strings.TrimSpace(line)

		var key string
		switch {
		case strings.HasPrefix(line, t.tags.Count):
			key = keyCount
		case strings.HasPrefix(line, t.tags.Size):
			key = keySize
		default:
			continue
		}

		if values[key] != nil {
			return vo.Size{}, domain.NewExtractionError(
				fmt.Sprintf("found two matches for key %s", key), nil)
		}

		// The value is the last whitespace-delimited field that
		// parses as an integer; trailing units and punctuation are
		// skipped.
		fields := strings.Fields(line)
		for i := len(fields) - 1; i >= 0; i-- {
			if n, err := strconv.ParseInt(fields[i], 10, 64); err == nil {
				v := n
				values[key] = &v
				break
			}
		}
	}

	for _, key := range []string{keyCount, keySize} {
		if values[key] == nil {
			return vo.Size{}, domain.NewExtractionError(
				fmt.Sprintf("failed to parse %s from diagnostic report", key), nil)
		}
	}

	count, size := *values[keyCount], *values[keySize]
	if count < 0 {
		return vo.Size{}, domain.NewExtractionError(
			fmt.Sprintf("negative %s in diagnostic report", keyCount), nil)
	}
	blockSize, err := vo.NewSize(size)
	if err != nil {
		return vo.Size{}, domain.NewExtractionError(
			fmt.Sprintf("invalid %s in diagnostic report", keySize), err)
	}

	return blockSize.Mul(count), nil
}

// splitLines splits text into lines without yielding a trailing empty
// line for text that ends in a newline.
func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
