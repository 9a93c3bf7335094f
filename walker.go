package biweekly

import "log/slog"

// walkState tracks where the walker is inside a document. The three states
// make the mode switching between group detection, header detection and
// continuation handling explicit instead of inferring it from which of the
// carried fields happen to be set.
type walkState int

const (
	// stateSeekingGroup: no group seen yet; tables are ignored until a
	// group-title cell appears. Only district reports start here.
	stateSeekingGroup walkState = iota
	// stateSeekingHeader: a group is active but no column mapping is; the
	// next parseable table supplies the header row.
	stateSeekingHeader
	// stateAccumulating: a mapping is active; header-less tables are
	// buffered as continuations until the next boundary.
	stateAccumulating
)

// Walker traverses the tables of one document in page order and accumulates
// normalized records. Group key, column mapping and the continuation buffer
// carry across page and table boundaries; nothing carries across documents.
type Walker struct {
	proc Processor
	log  *slog.Logger

	state   walkState
	group   string
	mapping ColumnMapping
	// buffer holds header-less continuation tables that have not been
	// processed yet. Whole tables are kept, not concatenated rows, so the
	// per-table trailing-row exclusion still applies to each piece.
	buffer  []RawTable
	records []Record
}

// NewWalker returns a walker for one document. sourceURL is stamped onto
// every record as provenance; it may be empty for local files.
func NewWalker(kind ReportKind, sourceURL string, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Walker{
		proc: Processor{Kind: kind, SourceURL: sourceURL},
		log:  logger,
	}
	if kind == KindDistrict {
		w.state = stateSeekingGroup
	} else {
		w.state = stateSeekingHeader
	}
	return w
}

// WalkPage feeds the walker the extracted tables of the next page.
func (w *Walker) WalkPage(tables []RawTable) {
	for _, table := range tables {
		w.walkTable(table)
	}
}

// Records flushes any buffered continuation tables and returns everything
// accumulated so far, in encounter order.
func (w *Walker) Records() []Record {
	w.flush()
	return w.records
}

func (w *Walker) walkTable(table RawTable) {
	if len(table) < 2 {
		return
	}

	// A group title in the first cell is a boundary: the previous group's
	// buffered continuations are flushed before the switch, and the mapping
	// is dropped so the new group starts with a fresh header search.
	if len(table[0]) > 0 && isGroupTitle(table[0][0], w.proc.Kind) {
		w.flush()
		w.group = extractGroupKey(table[0][0], w.proc.Kind)
		w.mapping = nil
		w.state = stateSeekingHeader
		w.log.Debug("entering group", "group", w.group)
	}

	if w.state == stateSeekingGroup {
		// Front matter before the first group title is not case data.
		return
	}

	// Header-less table while a mapping is live: defer as a continuation.
	if w.state == stateAccumulating && !hasHeaderRow(table) {
		w.buffer = append(w.buffer, table)
		return
	}

	// A header-bearing table is a boundary too.
	w.flush()

	records, used := w.proc.Process(table, w.mapping, w.group)
	if len(w.mapping) == 0 {
		if len(used) == 0 {
			w.log.Debug("table with no resolvable header skipped", "rows", len(table))
			return
		}
		w.mapping = used
		w.state = stateAccumulating
	}
	w.records = append(w.records, records...)
	w.log.Debug("table processed", "group", w.group, "records", len(records))
}

// flush pushes all buffered continuation tables through the processor with
// the mapping and group that were live when they were buffered. Called at
// every boundary: group change, header-bearing table, end of document.
func (w *Walker) flush() {
	if len(w.buffer) == 0 {
		return
	}
	if len(w.mapping) > 0 {
		flushed := 0
		for _, table := range w.buffer {
			records, _ := w.proc.Process(table, w.mapping, w.group)
			w.records = append(w.records, records...)
			flushed += len(records)
		}
		w.log.Debug("flushed continuation tables", "group", w.group, "tables", len(w.buffer), "records", flushed)
	}
	w.buffer = nil
}
