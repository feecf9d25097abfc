package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/timalander/cuebox-takehome/internal/csvio"
)

var (
	// ErrMalformedTable marks an input buffer that could not be parsed as
	// tabular text. The whole run fails; no partial output is produced.
	ErrMalformedTable = errors.New("malformed input table")

	// ErrVocabularyUnavailable marks a failed tag vocabulary fetch. There is
	// no default vocabulary to fall back to, so the run is fatal.
	ErrVocabularyUnavailable = errors.New("tag vocabulary unavailable")
)

// TagSource supplies the tag vocabulary. It is consulted exactly once per
// run, before any resolution begins.
type TagSource interface {
	TagMappings(ctx context.Context) ([]TagMapping, error)
}

// Engine orchestrates one reconciliation run: parse the three input tables,
// fetch the vocabulary, resolve every constituent row, derive the tag
// summary, and serialize both output tables.
type Engine struct {
	tags    TagSource
	workers int
}

// NewEngine creates an engine resolving rows with up to workers concurrent
// goroutines. workers <= 1 means sequential resolution, which is semantically
// identical since resolutions share no mutable state.
func NewEngine(tags TagSource, workers int) *Engine {
	if workers <= 0 {
		workers = 1
	}
	return &Engine{tags: tags, workers: workers}
}

// Input is the three raw tabular buffers for one run.
type Input struct {
	Constituents []byte
	Donations    []byte
	Emails       []byte
}

// Result is the outcome of one run. The serialized tables are always
// populated; Profiles and TagCounts are the raw collections behind them,
// exposed to callers that asked for debug output.
type Result struct {
	RunID           string
	ConstituentsCSV []byte
	TagsCSV         []byte
	Profiles        []ProcessedProfile
	TagCounts       []TagCount
	Duration        time.Duration
}

// Run executes one reconciliation pass over the input buffers. Input order
// is preserved: profile i always corresponds to constituent row i, and no
// profile is synthesized for donation or email rows without a matching
// constituent.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	constTable, err := csvio.Parse(in.Constituents)
	if err != nil {
		return nil, fmt.Errorf("%w: constituents: %v", ErrMalformedTable, err)
	}
	donTable, err := csvio.Parse(in.Donations)
	if err != nil {
		return nil, fmt.Errorf("%w: donations: %v", ErrMalformedTable, err)
	}
	emailTable, err := csvio.Parse(in.Emails)
	if err != nil {
		return nil, fmt.Errorf("%w: emails: %v", ErrMalformedTable, err)
	}

	mappings, err := e.tags.TagMappings(ctx)
	if err != nil {
		log.Printf("[reconcile] run %s: vocabulary fetch failed: %v", runID, err)
		return nil, fmt.Errorf("%w: %v", ErrVocabularyUnavailable, err)
	}
	vocab := make(map[string]string, len(mappings))
	for _, m := range mappings {
		vocab[m.SourceName] = m.MappedName
	}

	constituents := parseConstituents(constTable)
	donationsByPatron := groupDonations(donTable)
	emailsByPatron := groupEmails(emailTable)

	log.Printf("[reconcile] run %s: %d constituents, %d donation rows, %d email rows, %d vocabulary entries",
		runID, len(constituents), len(donTable.Rows), len(emailTable.Rows), len(vocab))

	profiles := e.resolveAll(constituents, emailsByPatron, donationsByPatron, vocab)
	tagCounts := summarizeTags(profiles)

	constCSV, err := csvio.Serialize(ProfileColumns, profileRows(profiles))
	if err != nil {
		return nil, fmt.Errorf("serialize profiles: %w", err)
	}
	tagCSV, err := csvio.Serialize(TagSummaryColumns, tagRows(tagCounts))
	if err != nil {
		return nil, fmt.Errorf("serialize tag summary: %w", err)
	}

	res := &Result{
		RunID:           runID,
		ConstituentsCSV: constCSV,
		TagsCSV:         tagCSV,
		Profiles:        profiles,
		TagCounts:       tagCounts,
		Duration:        time.Since(start),
	}
	log.Printf("[reconcile] run %s: completed in %s (%d profiles, %d distinct tags)",
		runID, res.Duration, len(profiles), len(tagCounts))
	return res, nil
}

// resolveAll fans ResolveProfile over every constituent with a bounded
// worker pool, writing each result into its own slot so input order
// survives. Resolutions read only the shared immutable groupings.
func (e *Engine) resolveAll(constituents []ConstituentRecord, emails map[string][]EmailRecord, donations map[string][]DonationRecord, vocab map[string]string) []ProcessedProfile {
	profiles := make([]ProcessedProfile, len(constituents))

	if e.workers <= 1 {
		for i, c := range constituents {
			profiles[i] = ResolveProfile(c, emails[c.PatronID], donations[c.PatronID], vocab)
		}
		return profiles
	}

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i, c := range constituents {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, c ConstituentRecord) {
			defer wg.Done()
			defer func() { <-sem }()
			profiles[i] = ResolveProfile(c, emails[c.PatronID], donations[c.PatronID], vocab)
		}(i, c)
	}
	wg.Wait()
	return profiles
}

// summarizeTags counts every trimmed tag token across all profiles, in
// first-seen order. Tokens that trim to the empty string are counted too;
// that matches how a profile with a blank tag list has always been tallied.
func summarizeTags(profiles []ProcessedProfile) []TagCount {
	counts := make(map[string]int)
	var order []string
	for _, p := range profiles {
		for _, part := range strings.Split(p.Tags, ",") {
			token := strings.TrimSpace(part)
			if _, seen := counts[token]; !seen {
				order = append(order, token)
			}
			counts[token]++
		}
	}

	out := make([]TagCount, 0, len(order))
	for _, name := range order {
		out = append(out, TagCount{Name: name, Count: counts[name]})
	}
	return out
}

func profileRows(profiles []ProcessedProfile) []map[string]string {
	rows := make([]map[string]string, len(profiles))
	for i, p := range profiles {
		rows[i] = p.Row()
	}
	return rows
}

func tagRows(counts []TagCount) []map[string]string {
	rows := make([]map[string]string, len(counts))
	for i, c := range counts {
		rows[i] = map[string]string{
			ColTagName:  c.Name,
			ColTagCount: fmt.Sprintf("%d", c.Count),
		}
	}
	return rows
}
