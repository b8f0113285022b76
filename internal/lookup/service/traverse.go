package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"deeplink/internal/lookup/models"
	"deeplink/pkg/phone"
)

// maxConcurrentFetches bounds parallel store queries within one hop.
const maxConcurrentFetches = 8

// traverse walks the alternate-identifier graph breadth-first from seed and
// returns the deduplicated records discovered, together with the hop depth
// reached.
//
// The visited set guarantees termination on cyclic, self-referential, and
// dangling graphs. Identifiers within one hop are fetched concurrently, but
// results are merged back in frontier order, so the accumulated record
// order is identical to a sequential walk. Any store error aborts the whole
// traversal; partial results are never returned.
func (s *Service) traverse(ctx context.Context, seed string) ([]models.Record, int, error) {
	visited := make(map[string]struct{})
	frontier := []string{seed}
	seen := make(map[string]struct{})
	var records []models.Record

	depth := 0
	for depth < s.caps.MaxDepth && len(frontier) > 0 && len(records) < s.caps.MaxResults {
		batches := make([][]models.Record, len(frontier))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentFetches)
		for i, id := range frontier {
			if _, ok := visited[id]; ok {
				continue
			}
			visited[id] = struct{}{}

			g.Go(func() error {
				direct, err := s.store.FindByPhone(gctx, id)
				if err != nil {
					return err
				}
				linked, err := s.store.FindByAltPhone(gctx, id)
				if err != nil {
					return err
				}
				batches[i] = append(direct, linked...)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}

		var next []string
		queued := make(map[string]struct{})
		for _, batch := range batches {
			// Result cap: stop before the next identifier's records, but
			// never truncate mid-identifier.
			if len(records) >= s.caps.MaxResults {
				break
			}
			for _, record := range batch {
				key := record.ContentKey()
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					records = append(records, record)
				}

				for _, candidate := range frontierCandidates(record) {
					if _, done := visited[candidate]; done {
						continue
					}
					if _, dup := queued[candidate]; dup {
						continue
					}
					queued[candidate] = struct{}{}
					next = append(next, candidate)
				}
			}
		}

		frontier = next
		depth++
	}

	return records, depth, nil
}

// frontierCandidates extracts the identifiers a record links to: its own
// primary (surfacing sibling rows that share a duplicated primary) and its
// alternate, trimmed of any stale prefix. Dangling values simply fetch
// nothing next hop and fall out of the frontier.
func frontierCandidates(record models.Record) []string {
	var out []string
	if len(record.Phone) == 10 {
		out = append(out, record.Phone)
	}
	if alt := record.AltPhone; len(alt) >= 10 {
		out = append(out, phone.Tail10(alt))
	}
	return out
}
